package messaging

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/schoolportal/portal/internal/fixtures"
	"github.com/schoolportal/portal/internal/models"
)

func at(s string) time.Time {
	t, err := time.Parse(fixtures.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func entryIDs(l *Listing) []string {
	ids := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		ids = append(ids, e.Conversation.ID)
	}
	return ids
}

func TestListConversationsForParent(t *testing.T) {
	ds := fixtures.Default()

	listing, err := ListConversations("user2", ds.Conversations, ds.Users, ds.Messages, "")
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}

	if got, want := entryIDs(listing), []string{"conv1", "conv2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	first := listing.Entries[0]
	if first.OtherUser.ID != "user3" {
		t.Fatalf("expected other user user3, got %s", first.OtherUser.ID)
	}
	if first.LastMessage.ID != "msg4" {
		t.Fatalf("expected last message msg4, got %s", first.LastMessage.ID)
	}
	if first.UnreadCount != 1 {
		t.Fatalf("expected 1 unread, got %d", first.UnreadCount)
	}
	if listing.State() != StateEntries {
		t.Fatalf("expected state %s, got %s", StateEntries, listing.State())
	}
	if len(listing.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", listing.Issues)
	}
}

func TestListConversationsUnreadIsPerViewer(t *testing.T) {
	ds := fixtures.Default()

	listing, err := ListConversations("user3", ds.Conversations, ds.Users, ds.Messages, "")
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if got, want := entryIDs(listing), []string{"conv1", "conv3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	// msg4 is unread but addressed to user2, not user3.
	if listing.Entries[0].UnreadCount != 0 {
		t.Fatalf("expected 0 unread for sender side, got %d", listing.Entries[0].UnreadCount)
	}
}

func TestListConversationsSearch(t *testing.T) {
	ds := fixtures.Default()

	tests := []struct {
		name   string
		search string
		want   []string
		state  ListState
	}{
		{name: "empty search keeps all", search: "", want: []string{"conv1", "conv2"}, state: StateEntries},
		{name: "whitespace is empty", search: "   ", want: []string{"conv1", "conv2"}, state: StateEntries},
		{name: "case insensitive", search: "tEaChEr", want: []string{"conv1"}, state: StateEntries},
		{name: "substring", search: "fici", want: []string{"conv2"}, state: StateEntries},
		{name: "no match", search: "zzz", want: []string{}, state: StateNoMatch},
		{name: "own name does not match", search: "Parent", want: []string{}, state: StateNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, err := ListConversations("user2", ds.Conversations, ds.Users, ds.Messages, tt.search)
			if err != nil {
				t.Fatalf("ListConversations: %v", err)
			}
			if got := entryIDs(listing); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if listing.State() != tt.state {
				t.Fatalf("expected state %s, got %s", tt.state, listing.State())
			}
		})
	}
}

func TestListConversationsNoConversations(t *testing.T) {
	ds := fixtures.Default()

	listing, err := ListConversations("user1", ds.Conversations, ds.Users, ds.Messages, "teacher")
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(listing.Entries) != 0 {
		t.Fatalf("expected no entries, got %v", entryIDs(listing))
	}
	if listing.State() != StateNoConversations {
		t.Fatalf("expected state %s, got %s", StateNoConversations, listing.State())
	}
}

func TestListConversationsUnknownCurrentUser(t *testing.T) {
	ds := fixtures.Default()

	_, err := ListConversations("ghost", ds.Conversations, ds.Users, ds.Messages, "")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if CodeOf(err) != ErrCodeNotFound {
		t.Fatalf("expected code %s, got %q", ErrCodeNotFound, CodeOf(err))
	}
}

func TestListConversationsReportsIntegrityIssues(t *testing.T) {
	users := []models.User{
		{ID: "a", Name: "Alice", Role: models.RoleParent},
		{ID: "b", Name: "Bob", Role: models.RoleTeacher},
		{ID: "c", Name: "Carol", Role: models.RoleTeacher},
	}
	messages := []models.Message{
		{ID: "m1", SenderID: "a", RecipientID: "b", Date: at("2024-01-01T10:00:00"), Read: false},
	}
	conversations := []models.Conversation{
		{ID: "ab", Participants: [2]string{"a", "b"}, LastMessageDate: at("2023-12-31T10:00:00"), UnreadCount: 3},
		{ID: "ac", Participants: [2]string{"a", "c"}},
		{ID: "ax", Participants: [2]string{"a", "x"}},
	}

	listing, err := ListConversations("a", conversations, users, messages, "")
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}

	if got, want := entryIDs(listing), []string{"ab"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if listing.Participating != 3 {
		t.Fatalf("expected 3 participating, got %d", listing.Participating)
	}

	kinds := map[string]IssueKind{}
	for _, issue := range listing.Issues {
		kinds[issue.ConversationID] = issue.Kind
	}
	want := map[string]IssueKind{
		"ab": IssueStaleSummary,
		"ac": IssueNoMessages,
		"ax": IssueMissingUser,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("expected issues %v, got %v", want, kinds)
	}
}

func TestListConversationsSearchExcludesUnresolvedUser(t *testing.T) {
	users := []models.User{{ID: "a", Name: "Alice", Role: models.RoleParent}}
	messages := []models.Message{{ID: "m1", SenderID: "a", RecipientID: "x", Date: at("2024-01-01T10:00:00")}}
	conversations := []models.Conversation{{ID: "ax", Participants: [2]string{"a", "x"}}}

	listing, err := ListConversations("a", conversations, users, messages, "x")
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(listing.Entries) != 0 {
		t.Fatalf("expected no entries, got %v", entryIDs(listing))
	}
	if len(listing.Issues) != 1 || listing.Issues[0].Kind != IssueMissingUser {
		t.Fatalf("expected one missing_user issue, got %v", listing.Issues)
	}
}

func TestListConversationsOrdering(t *testing.T) {
	users := []models.User{
		{ID: "u", Name: "Me", Role: models.RoleParent},
		{ID: "p", Name: "P", Role: models.RoleTeacher},
		{ID: "q", Name: "Q", Role: models.RoleTeacher},
		{ID: "r", Name: "R", Role: models.RoleTeacher},
	}
	same := at("2024-02-01T08:00:00")
	messages := []models.Message{
		{ID: "1", SenderID: "p", RecipientID: "u", Date: same},
		{ID: "2", SenderID: "u", RecipientID: "q", Date: same},
		{ID: "3", SenderID: "r", RecipientID: "u", Date: at("2024-03-01T08:00:00")},
	}
	// Stored summaries are deliberately misleading: ordering must follow
	// the derived last message.
	conversations := []models.Conversation{
		{ID: "zq", Participants: [2]string{"u", "q"}, LastMessageDate: at("2030-01-01T00:00:00")},
		{ID: "ap", Participants: [2]string{"p", "u"}},
		{ID: "mr", Participants: [2]string{"u", "r"}},
	}

	listing, err := ListConversations("u", conversations, users, messages, "")
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if got, want := entryIDs(listing), []string{"mr", "ap", "zq"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := 1; i < len(listing.Entries); i++ {
		if listing.Entries[i-1].LastMessage.Date.Before(listing.Entries[i].LastMessage.Date) {
			t.Fatalf("entries not sorted descending at %d", i)
		}
	}
}

func TestListConversationsLastMessageTieBreak(t *testing.T) {
	users := []models.User{
		{ID: "a", Name: "A", Role: models.RoleParent},
		{ID: "b", Name: "B", Role: models.RoleTeacher},
	}
	ts := at("2024-01-01T12:00:00")
	messages := []models.Message{
		{ID: "m9", SenderID: "a", RecipientID: "b", Date: ts},
		{ID: "m2", SenderID: "b", RecipientID: "a", Date: ts},
	}
	conversations := []models.Conversation{{ID: "ab", Participants: [2]string{"a", "b"}, LastMessageDate: ts}}

	listing, err := ListConversations("a", conversations, users, messages, "")
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if listing.Entries[0].LastMessage.ID != "m9" {
		t.Fatalf("expected tie broken to m9, got %s", listing.Entries[0].LastMessage.ID)
	}

	thread := AssembleThread(conversations[0], messages)
	if tail := thread[len(thread)-1].Message.ID; tail != listing.Entries[0].LastMessage.ID {
		t.Fatalf("preview %s differs from thread tail %s", listing.Entries[0].LastMessage.ID, tail)
	}
}

func TestListConversationsIsIdempotent(t *testing.T) {
	ds := fixtures.Default()

	first, err := ListConversations("user2", ds.Conversations, ds.Users, ds.Messages, "user")
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	second, err := ListConversations("user2", ds.Conversations, ds.Users, ds.Messages, "user")
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical listings")
	}
}

func TestListConversationsDoesNotMutateInput(t *testing.T) {
	ds := fixtures.Default()
	before := fixtures.Default()

	if _, err := ListConversations("user2", ds.Conversations, ds.Users, ds.Messages, ""); err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if !reflect.DeepEqual(ds, before) {
		t.Fatalf("input dataset was modified")
	}
}
