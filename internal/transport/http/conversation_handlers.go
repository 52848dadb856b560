package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/schoolportal/portal/internal/messaging"
	"github.com/schoolportal/portal/internal/service/inbox"
)

// ConversationHandlers provides HTTP handlers for the message center.
type ConversationHandlers struct {
	svc *inbox.Service
	log *zerolog.Logger
	now func() time.Time
}

// NewConversationHandlers creates a new conversation handlers instance.
func NewConversationHandlers(svc *inbox.Service, logger *zerolog.Logger, now func() time.Time) *ConversationHandlers {
	return &ConversationHandlers{
		svc: svc,
		log: logger,
		now: now,
	}
}

// PostMessageRequest represents the compose request body.
type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// List handles the inbox listing.
// GET /api/conversations?q=search
func (h *ConversationHandlers) List(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	listing, err := h.svc.Inbox(c.Request.Context(), sess, c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(listing, h.now()))
}

// Thread handles a single conversation view.
// GET /api/conversations/:id/messages
func (h *ConversationHandlers) Thread(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	thread, err := h.svc.Thread(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, threadResponse(thread, sess.UserID))
}

// Post handles composing a message. The message is logged, not stored.
// POST /api/conversations/:id/messages
func (h *ConversationHandlers) Post(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid post message request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	draft, err := h.svc.Post(c.Request.Context(), sess, c.Param("id"), req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, PostMessageResponse{
		ConversationID: c.Param("id"),
		FromUserID:     draft.FromUserID,
		ToUserID:       draft.ToUserID,
		Persisted:      false,
	})
}

func (h *ConversationHandlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inbox.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, inbox.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "conversation not found"})
	case errors.Is(err, inbox.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
	case errors.Is(err, inbox.ErrNotParticipant):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not a participant of this conversation"})
	case messaging.CodeOf(err) == messaging.ErrCodeBadRequest:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("message center request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
