package messaging

import "errors"

// Error codes for domain errors.
const (
	ErrCodeNotFound   = "not_found"
	ErrCodeBadRequest = "bad_request"
)

var (
	// ErrUserNotFound is returned when the current user is not in the user set.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmptyMessage is returned when message content is blank.
	ErrEmptyMessage = errors.New("message content is empty")
	// ErrSelfMessage is returned when a message is addressed to its sender.
	ErrSelfMessage  = errors.New("sender and recipient are the same user")
)

// Error wraps a code and human-readable message around a sentinel error.
type Error struct {
	Code    string
	Message string
	err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel so callers can use errors.Is.
func (e *Error) Unwrap() error {
	return e.err
}

func domainError(code, msg string, err error) *Error {
	return &Error{Code: code, Message: msg, err: err}
}

// CodeOf returns the domain code carried by err, or "" if none.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
