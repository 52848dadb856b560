package inbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/schoolportal/portal/internal/auth"
	"github.com/schoolportal/portal/internal/messaging"
	"github.com/schoolportal/portal/internal/metrics"
	"github.com/schoolportal/portal/internal/models"
	"github.com/schoolportal/portal/internal/store"
)

// Common errors for inbox operations.
var (
	ErrUnauthenticated      = errors.New("session is not authenticated")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("user is not a participant of the conversation")
	ErrUserNotFound         = errors.New("user not found")
)

// Thread is an assembled conversation as seen by one participant.
type Thread struct {
	Conversation models.Conversation
	OtherUser    models.User
	Items        []messaging.ThreadItem
}

// Service provides the message center on top of a read-only store.
type Service struct {
	store store.Store
	log   *zerolog.Logger
}

// New creates a new inbox Service.
func New(st store.Store, logger *zerolog.Logger) *Service {
	return &Service{
		store: st,
		log:   logger,
	}
}

// Inbox lists the conversations visible to the session's user.
func (s *Service) Inbox(ctx context.Context, sess auth.Session, search string) (*messaging.Listing, error) {
	if !sess.Valid() {
		return nil, ErrUnauthenticated
	}

	ds, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	listing, err := messaging.ListConversations(sess.UserID, ds.Conversations, ds.Users, ds.Messages, search)
	if err != nil {
		if errors.Is(err, messaging.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, sess.UserID)
		}
		return nil, err
	}

	s.reportIssues(sess, listing.Issues)
	metrics.InboxQueries.WithLabelValues(string(listing.State())).Inc()

	s.log.Debug().
		Str("user_id", sess.UserID).
		Str("query", listing.Query).
		Int("entries", len(listing.Entries)).
		Int("participating", listing.Participating).
		Msg("inbox listed")

	return listing, nil
}

// Thread assembles one conversation for the session's user.
func (s *Service) Thread(ctx context.Context, sess auth.Session, conversationID string) (*Thread, error) {
	if !sess.Valid() {
		return nil, ErrUnauthenticated
	}

	ds, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	conv, other, err := s.resolve(sess, ds, conversationID)
	if err != nil {
		return nil, err
	}

	metrics.ThreadViews.Inc()
	return &Thread{
		Conversation: conv,
		OtherUser:    other,
		Items:        messaging.AssembleThread(conv, ds.Messages),
	}, nil
}

// Post validates a reply in the conversation and logs it. Nothing is
// persisted: the returned draft is the whole effect.
func (s *Service) Post(ctx context.Context, sess auth.Session, conversationID, content string) (messaging.Draft, error) {
	if !sess.Valid() {
		return messaging.Draft{}, ErrUnauthenticated
	}

	ds, err := s.store.Snapshot(ctx)
	if err != nil {
		return messaging.Draft{}, fmt.Errorf("load snapshot: %w", err)
	}

	_, other, err := s.resolve(sess, ds, conversationID)
	if err != nil {
		return messaging.Draft{}, err
	}

	draft, err := messaging.PostMessage(content, sess.UserID, other.ID)
	if err != nil {
		return messaging.Draft{}, err
	}

	metrics.DraftsPosted.Inc()
	s.log.Info().
		Str("conversation_id", conversationID).
		Str("from", draft.FromUserID).
		Str("to", draft.ToUserID).
		Int("content_length", len(draft.Content)).
		Msg("message composed; not persisted")

	return draft, nil
}

func (s *Service) resolve(sess auth.Session, ds models.Dataset, conversationID string) (models.Conversation, models.User, error) {
	var conv *models.Conversation
	for i := range ds.Conversations {
		if ds.Conversations[i].ID == conversationID {
			conv = &ds.Conversations[i]
			break
		}
	}
	if conv == nil {
		return models.Conversation{}, models.User{}, fmt.Errorf("%w: %s", ErrConversationNotFound, conversationID)
	}

	otherID, ok := conv.Other(sess.UserID)
	if !ok {
		return models.Conversation{}, models.User{}, ErrNotParticipant
	}

	for _, u := range ds.Users {
		if u.ID == otherID {
			return *conv, u, nil
		}
	}

	s.reportIssues(sess, []messaging.Issue{{
		Kind:           messaging.IssueMissingUser,
		ConversationID: conv.ID,
		UserID:         otherID,
		Detail:         "other participant is not a known user",
	}})
	return models.Conversation{}, models.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, otherID)
}

func (s *Service) reportIssues(sess auth.Session, issues []messaging.Issue) {
	for _, issue := range issues {
		metrics.IntegrityIssues.WithLabelValues(string(issue.Kind)).Inc()
		s.log.Warn().
			Str("user_id", sess.UserID).
			Str("kind", string(issue.Kind)).
			Str("conversation_id", issue.ConversationID).
			Str("detail", issue.Detail).
			Msg("data integrity issue")
	}
}
