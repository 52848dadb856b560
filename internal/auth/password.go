package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// demoCredential is the shared demo password, held only as a bcrypt hash
// so the plaintext from config does not stay in memory.
type demoCredential struct {
	hash []byte
}

func newDemoCredential(password string) (demoCredential, error) {
	if password == "" {
		return demoCredential{}, fmt.Errorf("demo password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return demoCredential{}, fmt.Errorf("hash demo password: %w", err)
	}
	return demoCredential{hash: hash}, nil
}

// matches reports whether password is the demo password.
func (d demoCredential) matches(password string) bool {
	return bcrypt.CompareHashAndPassword(d.hash, []byte(password)) == nil
}
