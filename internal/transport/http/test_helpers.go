package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/schoolportal/portal/internal/auth"
	"github.com/schoolportal/portal/internal/fixtures"
	"github.com/schoolportal/portal/internal/service/inbox"
	"github.com/schoolportal/portal/internal/store"
	"github.com/schoolportal/portal/internal/store/memory"
)

// testNow is the reference time for relative date formatting in tests.
var testNow = time.Date(2023, 9, 16, 18, 0, 0, 0, time.UTC)

type testEnv struct {
	router      *gin.Engine
	authService *auth.Service
}

// createTestStore creates an in-memory store loaded with the demo dataset.
func createTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := memory.New(fixtures.Default())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return st
}

// createTestAuthService creates an auth service for testing.
func createTestAuthService(t *testing.T, st store.UserStore, jwtSecret string) *auth.Service {
	t.Helper()

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte(jwtSecret),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
	}

	svc, err := auth.NewService(st, jwtConfig, fixtures.DemoPassword)
	if err != nil {
		t.Fatalf("failed to create auth service: %v", err)
	}
	return svc
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testStore := createTestStore(t)
	t.Cleanup(func() { _ = testStore.Close() })

	disabledLogger := zerolog.New(nil)
	authService := createTestAuthService(t, testStore, "test-secret")
	svc := inbox.New(testStore, &disabledLogger)

	return &testEnv{
		router:      NewRouter(svc, authService, testStore, &disabledLogger, func() time.Time { return testNow }),
		authService: authService,
	}
}

// tokenFor logs in with the demo password and returns the bearer token.
func (e *testEnv) tokenFor(t *testing.T, email string) string {
	t.Helper()

	token, _, err := e.authService.Login(context.Background(), email, fixtures.DemoPassword, "")
	if err != nil {
		t.Fatalf("failed to login %s: %v", email, err)
	}
	return token
}

func (e *testEnv) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}
