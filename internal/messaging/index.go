package messaging

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/schoolportal/portal/internal/models"
)

// ListState tells the rendering boundary which view to show for a listing.
type ListState string

const (
	// StateEntries means at least one conversation is listed.
	StateEntries ListState = "entries"
	// StateNoConversations means the user takes part in no displayable conversation.
	StateNoConversations ListState = "no_conversations"
	// StateNoMatch means the user has conversations but none matched the search.
	StateNoMatch ListState = "no_match"
)

// Entry is one inbox row.
type Entry struct {
	Conversation models.Conversation
	OtherUser    models.User
	LastMessage  models.Message
	// UnreadCount is the number of unread messages addressed to the current user.
	UnreadCount int
}

// Listing is the result of ListConversations.
type Listing struct {
	Entries []Entry
	// Participating counts conversations that include the current user,
	// before the search filter is applied.
	Participating int
	// Query is the effective search text; empty when no search was applied.
	Query  string
	Issues []Issue
}

// State reports which empty-state, if any, applies.
func (l *Listing) State() ListState {
	switch {
	case len(l.Entries) > 0:
		return StateEntries
	case l.Query != "" && l.Participating > 0:
		return StateNoMatch
	default:
		return StateNoConversations
	}
}

func (l *Listing) report(issue Issue) {
	l.Issues = append(l.Issues, issue)
}

// ListConversations returns the conversations visible to currentUserID,
// most recent first. A non-blank search keeps only conversations whose
// other participant's name contains the text, ignoring case.
//
// The only error is ErrUserNotFound for an unknown current user; every
// other inconsistency is reported in Listing.Issues.
func ListConversations(
	currentUserID string,
	conversations []models.Conversation,
	users []models.User,
	messages []models.Message,
	search string,
) (*Listing, error) {
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	if _, ok := byID[currentUserID]; !ok {
		return nil, domainError(ErrCodeNotFound, fmt.Sprintf("current user %q not found", currentUserID), ErrUserNotFound)
	}

	listing := &Listing{Query: strings.TrimSpace(search)}
	match := nameMatcher(listing.Query)

	for _, conv := range conversations {
		if !conv.Has(currentUserID) {
			continue
		}
		listing.Participating++

		otherID, _ := conv.Other(currentUserID)
		other, ok := byID[otherID]
		if !ok {
			listing.report(Issue{
				Kind:           IssueMissingUser,
				ConversationID: conv.ID,
				UserID:         otherID,
				Detail:         "other participant is not a known user",
			})
			continue
		}
		if !match(other.Name) {
			continue
		}

		thread := MessagesFor(conv, messages)
		if len(thread) == 0 {
			listing.report(Issue{
				Kind:           IssueNoMessages,
				ConversationID: conv.ID,
				Detail:         "conversation has no messages",
			})
			continue
		}

		last := latest(thread)
		if issue, stale := checkSummary(conv, last, thread); stale {
			listing.report(issue)
		}

		listing.Entries = append(listing.Entries, Entry{
			Conversation: conv,
			OtherUser:    other,
			LastMessage:  last,
			UnreadCount:  unreadFor(thread, currentUserID),
		})
	}

	slices.SortFunc(listing.Entries, func(a, b Entry) int {
		if c := b.LastMessage.Date.Compare(a.LastMessage.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Conversation.ID, b.Conversation.ID)
	})

	return listing, nil
}

// nameMatcher returns a case-insensitive substring predicate. An empty
// query matches everything.
func nameMatcher(query string) func(string) bool {
	if query == "" {
		return func(string) bool { return true }
	}
	folded := cases.Fold().String(query)
	return func(name string) bool {
		return strings.Contains(cases.Fold().String(name), folded)
	}
}

// latest returns the newest message; equal timestamps resolve to the
// largest id, matching the tail of AssembleThread. thread must be non-empty.
func latest(thread []models.Message) models.Message {
	best := thread[0]
	for _, m := range thread[1:] {
		switch c := m.Date.Compare(best.Date); {
		case c > 0:
			best = m
		case c == 0 && m.ID > best.ID:
			best = m
		}
	}
	return best
}

func unreadFor(thread []models.Message, userID string) int {
	n := 0
	for _, m := range thread {
		if !m.Read && m.RecipientID == userID {
			n++
		}
	}
	return n
}

// checkSummary compares the stored conversation summary with the derived
// one. The stored unread count is conversation-wide, so it is compared
// with the unread total over both directions.
func checkSummary(conv models.Conversation, last models.Message, thread []models.Message) (Issue, bool) {
	unread := 0
	for _, m := range thread {
		if !m.Read {
			unread++
		}
	}

	var problems []string
	if !conv.LastMessageDate.Equal(last.Date) {
		problems = append(problems, fmt.Sprintf("stored last message date %s, derived %s",
			conv.LastMessageDate.Format(time.RFC3339), last.Date.Format(time.RFC3339)))
	}
	if conv.UnreadCount != unread {
		problems = append(problems, fmt.Sprintf("stored unread count %d, derived %d", conv.UnreadCount, unread))
	}
	if len(problems) == 0 {
		return Issue{}, false
	}
	return Issue{
		Kind:           IssueStaleSummary,
		ConversationID: conv.ID,
		Detail:         strings.Join(problems, "; "),
	}, true
}
