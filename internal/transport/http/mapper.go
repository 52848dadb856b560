package http

import (
	"time"

	"github.com/schoolportal/portal/internal/messaging"
	"github.com/schoolportal/portal/internal/models"
	"github.com/schoolportal/portal/internal/service/inbox"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	RoleTitle string `json:"role_title"`
	Avatar    string `json:"avatar,omitempty"`
}

// MessagePreview is the last message shown in an inbox row.
type MessagePreview struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Content     string `json:"content"`
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`
}

// ConversationResponse is one inbox row.
type ConversationResponse struct {
	ID          string         `json:"id"`
	OtherUser   UserResponse   `json:"other_user"`
	LastMessage MessagePreview `json:"last_message"`
	UnreadCount int            `json:"unread_count"`
	Unread      bool           `json:"unread"`
}

// ListResponse is the inbox listing.
type ListResponse struct {
	State         string                 `json:"state"`
	Query         string                 `json:"query,omitempty"`
	Conversations []ConversationResponse `json:"conversations"`
}

// ThreadMessageResponse is one message in a thread.
type ThreadMessageResponse struct {
	ID          string `json:"id"`
	SenderID    string `json:"sender_id"`
	Subject     string `json:"subject"`
	Content     string `json:"content"`
	Date        string `json:"date"`
	DisplayTime string `json:"display_time"`
	GroupStart  bool   `json:"group_start"`
	FromMe      bool   `json:"from_me"`
}

// ThreadResponse is an assembled conversation.
type ThreadResponse struct {
	ConversationID string                  `json:"conversation_id"`
	OtherUser      UserResponse            `json:"other_user"`
	Messages       []ThreadMessageResponse `json:"messages"`
}

// PostMessageResponse acknowledges a composed message.
type PostMessageResponse struct {
	ConversationID string `json:"conversation_id"`
	FromUserID     string `json:"from_user_id"`
	ToUserID       string `json:"to_user_id"`
	Persisted      bool   `json:"persisted"`
}

func userResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		RoleTitle: u.Role.Title(),
		Avatar:    u.Avatar,
	}
}

func listResponse(l *messaging.Listing, now time.Time) ListResponse {
	resp := ListResponse{
		State:         string(l.State()),
		Query:         l.Query,
		Conversations: make([]ConversationResponse, 0, len(l.Entries)),
	}
	for _, e := range l.Entries {
		resp.Conversations = append(resp.Conversations, ConversationResponse{
			ID:        e.Conversation.ID,
			OtherUser: userResponse(e.OtherUser),
			LastMessage: MessagePreview{
				ID:          e.LastMessage.ID,
				Subject:     e.LastMessage.Subject,
				Content:     e.LastMessage.Content,
				Date:        e.LastMessage.Date.UTC().Format(time.RFC3339),
				DisplayDate: formatListDate(e.LastMessage.Date, now),
			},
			UnreadCount: e.UnreadCount,
			Unread:      e.UnreadCount > 0,
		})
	}
	return resp
}

func threadResponse(t *inbox.Thread, currentUserID string) ThreadResponse {
	resp := ThreadResponse{
		ConversationID: t.Conversation.ID,
		OtherUser:      userResponse(t.OtherUser),
		Messages:       make([]ThreadMessageResponse, 0, len(t.Items)),
	}
	for _, it := range t.Items {
		m := it.Message
		resp.Messages = append(resp.Messages, ThreadMessageResponse{
			ID:          m.ID,
			SenderID:    m.SenderID,
			Subject:     m.Subject,
			Content:     m.Content,
			Date:        m.Date.UTC().Format(time.RFC3339),
			DisplayTime: formatThreadDate(m.Date),
			GroupStart:  it.GroupStart,
			FromMe:      m.SenderID == currentUserID,
		})
	}
	return resp
}

// formatListDate renders an inbox date: the time for today, month and day
// within the current year, the full date otherwise. Both times are
// compared in UTC.
func formatListDate(t, now time.Time) string {
	t, now = t.UTC(), now.UTC()
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	switch {
	case ty == ny && tm == nm && td == nd:
		return t.Format("15:04")
	case ty == ny:
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// formatThreadDate renders a message timestamp as "15:04 • Jan 2".
func formatThreadDate(t time.Time) string {
	return t.UTC().Format("15:04") + " • " + t.UTC().Format("Jan 2")
}
