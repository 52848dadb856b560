package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/schoolportal/portal/internal/auth"
	"github.com/schoolportal/portal/internal/dashboard"
	"github.com/schoolportal/portal/internal/metrics"
	"github.com/schoolportal/portal/internal/models"
	"github.com/schoolportal/portal/internal/store"
)

// APIHandlers provides HTTP handlers for login and profile endpoints.
type APIHandlers struct {
	authService *auth.Service
	users       store.UserStore
	log         *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(authService *auth.Service, users store.UserStore, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		authService: authService,
		users:       users,
		log:         logger,
	}
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role,omitempty"`
}

// LoginResponse represents the login response body.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MeResponse describes the signed-in user and their dashboard.
type MeResponse struct {
	User        UserResponse        `json:"user"`
	Variant     dashboard.Variant   `json:"variant"`
	PortalTitle string              `json:"portal_title"`
	Navigation  []dashboard.NavItem `json:"navigation"`
	CanMessage  bool                `json:"can_message"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Login handles demo login.
// POST /api/login
func (h *APIHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid login request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	role := models.Role(req.Role)
	if role != "" && !role.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown role"})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, role)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "please fill in all fields"})
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrRoleMismatch):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		default:
			h.log.Error().Err(err).Str("email", req.Email).Msg("failed to login user")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	h.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in successfully")
	c.JSON(http.StatusOK, LoginResponse{Token: token, User: userResponse(*user)})
}

// Me returns the signed-in user with their dashboard variant and navigation.
// GET /api/me
func (h *APIHandlers) Me(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		h.log.Error().Msg("session not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.users.GetUserByID(c.Request.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		h.log.Error().Err(err).Str("user_id", sess.UserID).Msg("failed to load user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:        userResponse(*user),
		Variant:     dashboard.VariantFor(user.Role),
		PortalTitle: dashboard.PortalTitle(user.Role),
		Navigation:  dashboard.NavigationFor(user.Role),
		CanMessage:  dashboard.CanMessage(user.Role),
	})
}
