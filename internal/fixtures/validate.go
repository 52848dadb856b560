package fixtures

import (
	"fmt"

	"github.com/schoolportal/portal/internal/models"
)

// Validate rejects datasets the messaging core must never see: duplicate
// ids, unknown roles, malformed participant pairs, self-addressed messages
// and negative unread counts.
//
// References to unknown users are not rejected here. The core tolerates
// them and reports them as integrity issues.
func Validate(ds models.Dataset) error {
	users := make(map[string]struct{}, len(ds.Users))
	for _, u := range ds.Users {
		if u.ID == "" {
			return fmt.Errorf("%w: user with empty id", ErrInvalidDataset)
		}
		if _, dup := users[u.ID]; dup {
			return fmt.Errorf("%w: duplicate user id %s", ErrInvalidDataset, u.ID)
		}
		if !u.Role.Valid() {
			return fmt.Errorf("%w: user %s has unknown role %q", ErrInvalidDataset, u.ID, u.Role)
		}
		users[u.ID] = struct{}{}
	}

	msgs := make(map[string]struct{}, len(ds.Messages))
	for _, m := range ds.Messages {
		if m.ID == "" {
			return fmt.Errorf("%w: message with empty id", ErrInvalidDataset)
		}
		if _, dup := msgs[m.ID]; dup {
			return fmt.Errorf("%w: duplicate message id %s", ErrInvalidDataset, m.ID)
		}
		if m.SenderID == m.RecipientID {
			return fmt.Errorf("%w: message %s is addressed to its sender", ErrInvalidDataset, m.ID)
		}
		msgs[m.ID] = struct{}{}
	}

	convs := make(map[string]struct{}, len(ds.Conversations))
	for _, c := range ds.Conversations {
		if c.ID == "" {
			return fmt.Errorf("%w: conversation with empty id", ErrInvalidDataset)
		}
		if _, dup := convs[c.ID]; dup {
			return fmt.Errorf("%w: duplicate conversation id %s", ErrInvalidDataset, c.ID)
		}
		if c.Participants[0] == "" || c.Participants[1] == "" {
			return fmt.Errorf("%w: conversation %s has an empty participant", ErrInvalidDataset, c.ID)
		}
		if c.Participants[0] == c.Participants[1] {
			return fmt.Errorf("%w: conversation %s lists the same participant twice", ErrInvalidDataset, c.ID)
		}
		if c.UnreadCount < 0 {
			return fmt.Errorf("%w: conversation %s has negative unread count", ErrInvalidDataset, c.ID)
		}
		convs[c.ID] = struct{}{}
	}
	return nil
}
