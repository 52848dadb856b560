package messaging

import (
	"slices"
	"strings"

	"github.com/schoolportal/portal/internal/models"
)

// ThreadItem is one message of a thread with its display grouping.
type ThreadItem struct {
	Message models.Message
	// GroupStart is true for the first message and for every message whose
	// sender differs from the previous one.
	GroupStart bool
}

// MessagesFor returns the messages exchanged by the conversation's
// participant pair, in either direction, preserving input order.
func MessagesFor(conv models.Conversation, messages []models.Message) []models.Message {
	var out []models.Message
	for _, m := range messages {
		if conv.Includes(m) {
			out = append(out, m)
		}
	}
	return out
}

// AssembleThread returns the conversation's messages oldest first, each
// flagged with whether it starts a new same-sender group. Equal timestamps
// are ordered by message id.
func AssembleThread(conv models.Conversation, messages []models.Message) []ThreadItem {
	thread := MessagesFor(conv, messages)
	slices.SortFunc(thread, func(a, b models.Message) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	items := make([]ThreadItem, 0, len(thread))
	for i, m := range thread {
		items = append(items, ThreadItem{
			Message:    m,
			GroupStart: i == 0 || thread[i-1].SenderID != m.SenderID,
		})
	}
	return items
}
