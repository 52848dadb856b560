package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/schoolportal/portal/internal/models"
	"github.com/schoolportal/portal/internal/store"
)

var (
	// ErrInvalidCredentials is returned when email/password don't match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingCredentials is returned when email or password is blank.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrRoleMismatch is returned when the requested role is not the account's role.
	ErrRoleMismatch = errors.New("account does not have the requested role")
)

// Service authenticates demo accounts. Every known user shares one demo
// password, held only as a bcrypt hash.
type Service struct {
	store     store.UserStore
	jwtConfig *JWTConfig
	demo      demoCredential
}

// NewService hashes demoPassword and returns the authentication service.
func NewService(userStore store.UserStore, jwtConfig *JWTConfig, demoPassword string) (*Service, error) {
	demo, err := newDemoCredential(demoPassword)
	if err != nil {
		return nil, err
	}
	return &Service{
		store:     userStore,
		jwtConfig: jwtConfig,
		demo:      demo,
	}, nil
}

// Login validates credentials and returns a token and the signed-in user.
// A non-empty role must match the account's role.
func (s *Service) Login(ctx context.Context, email, password string, role models.Role) (string, *models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.demo.matches(password) {
		return "", nil, ErrInvalidCredentials
	}
	if role != "" && role != user.Role {
		return "", nil, ErrRoleMismatch
	}

	token, err := GenerateToken(s.jwtConfig, Session{UserID: user.ID, Role: user.Role})
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// ValidateToken validates a token and returns the session it carries.
func (s *Service) ValidateToken(tokenString string) (Session, error) {
	return ValidateToken(s.jwtConfig, tokenString)
}
