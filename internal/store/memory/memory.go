// Package memory serves a fixed dataset from process memory.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/schoolportal/portal/internal/fixtures"
	"github.com/schoolportal/portal/internal/models"
	"github.com/schoolportal/portal/internal/store"
)

// Store is a read-only store.Store. It is never written after New, so
// concurrent readers need no locking.
type Store struct {
	data          models.Dataset
	users         map[string]int
	conversations map[string]int
}

var _ store.Store = (*Store)(nil)

// New validates ds and returns a store holding a private copy of it.
func New(ds models.Dataset) (*Store, error) {
	if err := fixtures.Validate(ds); err != nil {
		return nil, err
	}

	s := &Store{
		data: models.Dataset{
			Users:         slices.Clone(ds.Users),
			Conversations: slices.Clone(ds.Conversations),
			Messages:      slices.Clone(ds.Messages),
		},
		users:         make(map[string]int, len(ds.Users)),
		conversations: make(map[string]int, len(ds.Conversations)),
	}
	for i, u := range s.data.Users {
		s.users[u.ID] = i
	}
	for i, c := range s.data.Conversations {
		s.conversations[c.ID] = i
	}
	return s, nil
}

// ListUsers returns every user.
func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	return slices.Clone(s.data.Users), nil
}

// GetUserByID retrieves a user by ID.
func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	i, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, store.ErrNotFound)
	}
	u := s.data.Users[i]
	return &u, nil
}

// GetUserByEmail retrieves a user by email, ignoring case.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.data.Users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, store.ErrNotFound)
}

// ListConversations returns every conversation.
func (s *Store) ListConversations(_ context.Context) ([]models.Conversation, error) {
	return slices.Clone(s.data.Conversations), nil
}

// GetConversation retrieves a conversation by ID.
func (s *Store) GetConversation(_ context.Context, id string) (*models.Conversation, error) {
	i, ok := s.conversations[id]
	if !ok {
		return nil, fmt.Errorf("conversation %s: %w", id, store.ErrNotFound)
	}
	c := s.data.Conversations[i]
	return &c, nil
}

// ListMessages returns every message.
func (s *Store) ListMessages(_ context.Context) ([]models.Message, error) {
	return slices.Clone(s.data.Messages), nil
}

// Snapshot returns copies of all collections.
func (s *Store) Snapshot(_ context.Context) (models.Dataset, error) {
	return models.Dataset{
		Users:         slices.Clone(s.data.Users),
		Conversations: slices.Clone(s.data.Conversations),
		Messages:      slices.Clone(s.data.Messages),
	}, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
