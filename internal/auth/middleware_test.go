package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestGuard(t *testing.T, cfg Config) *Guard {
	t.Helper()
	return NewGuard(NewVerifier(cfg), zap.NewNop().Sugar())
}

func accessTokenFor(t *testing.T, cfg Config, c Claims) string {
	t.Helper()
	token, err := Sign(c, cfg.AccessSecret, cfg.AccessTTL)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestGuardMissingHeader(t *testing.T) {
	guard := newTestGuard(t, testConfig())
	called := false
	h := guard.Require(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
	if called {
		t.Fatal("handler ran for unauthenticated request")
	}
}

func TestGuardMalformedHeader(t *testing.T) {
	guard := newTestGuard(t, testConfig())
	h := guard.Require(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	for _, header := range []string{"Token abc", "Bearer", "Bearer   ", "bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status %d, want 401", header, rec.Code)
		}
	}
}

func TestGuardInvalidToken(t *testing.T) {
	guard := newTestGuard(t, testConfig())
	h := guard.Require(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}

func TestGuardAttachesClaims(t *testing.T) {
	cfg := testConfig()
	guard := newTestGuard(t, cfg)
	want := Claims{ID: "u1", Email: "a@b.com", Role: RoleUser}

	var got Claims
	var ok bool
	h := guard.Require(func(w http.ResponseWriter, r *http.Request) {
		got, ok = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, cfg, want))
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if !ok || got != want {
		t.Fatalf("claims not attached: ok=%v got=%+v", ok, got)
	}
}

func TestGuardBearerPrefixIsCaseInsensitive(t *testing.T) {
	cfg := testConfig()
	guard := newTestGuard(t, cfg)
	h := guard.Require(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "bearer "+accessTokenFor(t, cfg, Claims{ID: "u1", Role: RoleUser}))
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
}

func TestGuardRoleMismatchIsForbidden(t *testing.T) {
	cfg := testConfig()
	guard := newTestGuard(t, cfg)
	h := guard.Require(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}, RoleAdmin)

	req := httptest.NewRequest(http.MethodPost, "/api/tech-stack", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, cfg, Claims{ID: "u1", Email: "a@b.com", Role: RoleUser}))
	rec := httptest.NewRecorder()
	h(rec, req)

	// valid identity with the wrong role is 403, not 401
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestGuardRoleMatchProceeds(t *testing.T) {
	cfg := testConfig()
	guard := newTestGuard(t, cfg)
	h := guard.Require(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, RoleAdmin)

	req := httptest.NewRequest(http.MethodPost, "/api/tech-stack", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, cfg, Claims{ID: "u1", Email: "a@b.com", Role: RoleAdmin}))
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
}
