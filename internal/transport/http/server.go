package http

import (
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/schoolportal/portal/internal/auth"
	"github.com/schoolportal/portal/internal/config"
	"github.com/schoolportal/portal/internal/service/inbox"
	"github.com/schoolportal/portal/internal/store"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// NewServer builds the HTTP server with all portal routes.
func NewServer(svc *inbox.Service, authService *auth.Service, st store.UserStore, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(svc, authService, st, logger, time.Now),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter builds the gin engine. now supplies the reference time for
// relative date formatting.
func NewRouter(svc *inbox.Service, authService *auth.Service, st store.UserStore, logger *zerolog.Logger, now func() time.Time) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), MetricsMiddleware(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiHandlers := NewAPIHandlers(authService, st, logger)
	conversationHandlers := NewConversationHandlers(svc, logger, now)

	api := router.Group("/api")
	api.POST("/login", apiHandlers.Login)

	protected := api.Group("")
	protected.Use(AuthMiddleware(authService, logger))
	protected.GET("/me", apiHandlers.Me)
	protected.GET("/conversations", conversationHandlers.List)
	protected.GET("/conversations/:id/messages", conversationHandlers.Thread)
	protected.POST("/conversations/:id/messages", conversationHandlers.Post)

	return router
}

func healthHandler(c *gin.Context) {
	_, _ = fmt.Fprint(c.Writer, "ok")
}
