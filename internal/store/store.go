package store

import (
	"context"
	"errors"

	"github.com/schoolportal/portal/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
)

// UserStore reads user accounts.
type UserStore interface {
	// ListUsers returns every user.
	ListUsers(ctx context.Context) ([]models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email, ignoring case.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// ConversationStore reads conversation summaries.
type ConversationStore interface {
	// ListConversations returns every conversation.
	ListConversations(ctx context.Context) ([]models.Conversation, error)

	// GetConversation retrieves a conversation by ID.
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)
}

// MessageStore reads messages.
type MessageStore interface {
	// ListMessages returns every message.
	ListMessages(ctx context.Context) ([]models.Message, error)
}

// Store aggregates all read interfaces. Implementations hand out copies;
// callers may not observe each other's modifications.
type Store interface {
	UserStore
	ConversationStore
	MessageStore

	// Snapshot returns all collections read at one point in time.
	Snapshot(ctx context.Context) (models.Dataset, error)

	// Close releases the underlying resources.
	Close() error
}
