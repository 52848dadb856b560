package messaging

import "strings"

// Draft is a message a user intends to send. Drafts are validated but never
// stored: the portal has no write path for messages.
type Draft struct {
	FromUserID string
	ToUserID   string
	Content    string
}

// PostMessage validates a new message. It persists nothing; callers log
// the returned draft as the user's intent.
func PostMessage(content, fromUserID, toUserID string) (Draft, error) {
	if strings.TrimSpace(content) == "" {
		return Draft{}, domainError(ErrCodeBadRequest, "message content is empty", ErrEmptyMessage)
	}
	if fromUserID == toUserID {
		return Draft{}, domainError(ErrCodeBadRequest, "cannot send a message to yourself", ErrSelfMessage)
	}
	return Draft{FromUserID: fromUserID, ToUserID: toUserID, Content: content}, nil
}
