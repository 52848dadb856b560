package inbox

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/schoolportal/portal/internal/auth"
	"github.com/schoolportal/portal/internal/fixtures"
	"github.com/schoolportal/portal/internal/messaging"
	"github.com/schoolportal/portal/internal/models"
	"github.com/schoolportal/portal/internal/store/memory"
)

func newTestService(t *testing.T, ds models.Dataset) *Service {
	t.Helper()

	st, err := memory.New(ds)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	logger := zerolog.New(nil)
	return New(st, &logger)
}

func parent() auth.Session  { return auth.Session{UserID: "user2", Role: models.RoleParent} }
func teacher() auth.Session { return auth.Session{UserID: "user3", Role: models.RoleTeacher} }

func TestInbox(t *testing.T) {
	svc := newTestService(t, fixtures.Default())

	listing, err := svc.Inbox(context.Background(), parent(), "")
	if err != nil {
		t.Fatalf("Inbox: %v", err)
	}
	if len(listing.Entries) != 2 || listing.Entries[0].Conversation.ID != "conv1" {
		t.Fatalf("unexpected listing: %+v", listing.Entries)
	}
}

func TestInboxRequiresSession(t *testing.T) {
	svc := newTestService(t, fixtures.Default())

	if _, err := svc.Inbox(context.Background(), auth.Session{}, ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestInboxUnknownSessionUser(t *testing.T) {
	svc := newTestService(t, fixtures.Default())

	_, err := svc.Inbox(context.Background(), auth.Session{UserID: "ghost"}, "")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestThread(t *testing.T) {
	svc := newTestService(t, fixtures.Default())

	thread, err := svc.Thread(context.Background(), parent(), "conv1")
	if err != nil {
		t.Fatalf("Thread: %v", err)
	}
	if thread.OtherUser.ID != "user3" {
		t.Fatalf("expected other user user3, got %s", thread.OtherUser.ID)
	}
	if len(thread.Items) != 3 || thread.Items[0].Message.ID != "msg1" || thread.Items[2].Message.ID != "msg4" {
		t.Fatalf("unexpected thread: %+v", thread.Items)
	}
}

func TestThreadErrors(t *testing.T) {
	ds := fixtures.Default()
	ds.Conversations = append(ds.Conversations, models.Conversation{
		ID:           "conv9",
		Participants: [2]string{"user2", "user99"},
	})
	svc := newTestService(t, ds)
	ctx := context.Background()

	tests := []struct {
		name string
		sess auth.Session
		conv string
		want error
	}{
		{name: "unknown conversation", sess: parent(), conv: "nope", want: ErrConversationNotFound},
		{name: "not a participant", sess: parent(), conv: "conv3", want: ErrNotParticipant},
		{name: "other user missing", sess: parent(), conv: "conv9", want: ErrUserNotFound},
		{name: "no session", sess: auth.Session{}, conv: "conv1", want: ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Thread(ctx, tt.sess, tt.conv); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPostPersistsNothing(t *testing.T) {
	svc := newTestService(t, fixtures.Default())
	ctx := context.Background()

	draft, err := svc.Post(ctx, teacher(), "conv1", "Thanks for the update!")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if draft.FromUserID != "user3" || draft.ToUserID != "user2" {
		t.Fatalf("unexpected draft: %+v", draft)
	}

	thread, err := svc.Thread(ctx, teacher(), "conv1")
	if err != nil {
		t.Fatalf("Thread: %v", err)
	}
	if len(thread.Items) != 3 {
		t.Fatalf("expected thread unchanged after post, got %d items", len(thread.Items))
	}
}

func TestPostRejectsEmpty(t *testing.T) {
	svc := newTestService(t, fixtures.Default())

	if _, err := svc.Post(context.Background(), parent(), "conv1", "   "); !errors.Is(err, messaging.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := svc.Post(context.Background(), parent(), "conv3", "hi"); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}
