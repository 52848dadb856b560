package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/schoolportal/portal/internal/dashboard"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid", `{"email":"teacher@example.com","password":"password"}`, http.StatusOK},
		{"valid with role", `{"email":"teacher@example.com","password":"password","role":"teacher"}`, http.StatusOK},
		{"email is case-insensitive", `{"email":"Teacher@Example.com","password":"password"}`, http.StatusOK},
		{"wrong password", `{"email":"teacher@example.com","password":"nope"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"nobody@example.com","password":"password"}`, http.StatusUnauthorized},
		{"role mismatch", `{"email":"teacher@example.com","password":"password","role":"parent"}`, http.StatusUnauthorized},
		{"unknown role", `{"email":"teacher@example.com","password":"password","role":"janitor"}`, http.StatusBadRequest},
		{"missing password", `{"email":"teacher@example.com"}`, http.StatusBadRequest},
		{"malformed email", `{"email":"teacher","password":"password"}`, http.StatusBadRequest},
		{"not json", `email=teacher`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(tt.body))
			resp := env.do(req, "")
			if resp.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, resp.Code, resp.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var loginResp LoginResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &loginResp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if loginResp.Token == "" {
				t.Error("expected non-empty token")
			}
			if loginResp.User.ID != "user3" || loginResp.User.RoleTitle != "Teacher" {
				t.Errorf("unexpected user: %+v", loginResp.User)
			}
		})
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	resp := env.do(req, env.tokenFor(t, "parent@example.com"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var me MeResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &me); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if me.User.ID != "user2" {
		t.Errorf("expected user2, got %s", me.User.ID)
	}
	if me.Variant != dashboard.VariantParent {
		t.Errorf("expected parent variant, got %s", me.Variant)
	}
	if me.PortalTitle != "Parent Portal" {
		t.Errorf("expected 'Parent Portal', got %q", me.PortalTitle)
	}
	if !me.CanMessage {
		t.Error("expected parent to be able to message")
	}
	if len(me.Navigation) == 0 {
		t.Error("expected navigation items")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/conversations", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp := env.do(req, "")
			if resp.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", resp.Code)
			}
		})
	}
}

func TestHealthAndRequestID(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := env.do(req, "")
	if resp.Code != http.StatusOK || resp.Body.String() != "ok" {
		t.Fatalf("unexpected health response: %d %q", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("X-Request-ID") == "" {
		t.Error("expected generated X-Request-ID header")
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp = env.do(req, "")
	if got := resp.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected propagated request id, got %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	env.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")

	resp := env.do(httptest.NewRequest(http.MethodGet, "/metrics", nil), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("portal_http_requests_total")) {
		t.Error("expected portal_http_requests_total in metrics output")
	}
}
