package app

import (
	"context"
	"fmt"
	stdhttp "net/http"

	"github.com/rs/zerolog"

	"github.com/schoolportal/portal/internal/auth"
	"github.com/schoolportal/portal/internal/config"
	"github.com/schoolportal/portal/internal/fixtures"
	"github.com/schoolportal/portal/internal/service/inbox"
	"github.com/schoolportal/portal/internal/store"
	"github.com/schoolportal/portal/internal/store/memory"
	"github.com/schoolportal/portal/internal/store/sqlite"
	transporthttp "github.com/schoolportal/portal/internal/transport/http"
)

// App wires together store, services and transport layers.
type App struct {
	server *stdhttp.Server
	cfg    *config.Config
	store  store.Store
	log    *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := OpenStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.TokenTTL,
	}

	authService, err := auth.NewService(st, jwtConfig, cfg.DemoPassword)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("init auth: %w", err)
	}

	svc := inbox.New(st, logger)
	server := transporthttp.NewServer(svc, authService, st, cfg, logger)

	return &App{
		server: server,
		cfg:    cfg,
		store:  st,
		log:    logger,
	}, nil
}

// OpenStore opens the store selected by cfg.DataSource.
func OpenStore(cfg *config.Config, logger *zerolog.Logger) (store.Store, error) {
	switch cfg.DataSource {
	case config.DataSourceMemory:
		st, err := memory.New(fixtures.Default())
		if err != nil {
			return nil, fmt.Errorf("init memory store: %w", err)
		}
		logger.Info().Str("data_source", cfg.DataSource).Msg("demo dataset loaded")
		return st, nil

	case config.DataSourceFixtures:
		ds, err := fixtures.LoadFile(cfg.FixturesPath)
		if err != nil {
			return nil, fmt.Errorf("load fixtures: %w", err)
		}
		st, err := memory.New(ds)
		if err != nil {
			return nil, fmt.Errorf("init memory store: %w", err)
		}
		logger.Info().
			Str("data_source", cfg.DataSource).
			Str("fixtures_path", cfg.FixturesPath).
			Int("users", len(ds.Users)).
			Int("conversations", len(ds.Conversations)).
			Msg("fixtures loaded")
		return st, nil

	case config.DataSourceSQLite:
		st, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("init store: %w", err)
		}
		logger.Info().Str("db_path", cfg.DatabasePath).Msg("database initialized")
		return st, nil

	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		a.log.Info().Str("addr", a.cfg.Addr).Msg("starting portal server")
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes database and other resources.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
