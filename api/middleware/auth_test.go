package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pariney/saree-storefront/pkg/auth"
	"github.com/pariney/saree-storefront/pkg/auth/session"
	"github.com/pariney/saree-storefront/pkg/config"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, now time.Time, userID uuid.UUID, email string) (string, string) {
	t.Helper()
	accessID := session.NewAccessID()
	token, err := auth.MintAccessToken(cfg, now, auth.AccessTokenPayload{
		UserID: userID,
		Email:  email,
		JTI:    accessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token, accessID
}

func assertUnauthorized(t *testing.T, resp *httptest.ResponseRecorder) {
	t.Helper()
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Error != pkgerrors.MsgAuthenticationRequired {
		t.Fatalf("expected %q got %q", pkgerrors.MsgAuthenticationRequired, payload.Error)
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWTConfig(), stubSessionVerifier{ok: true}, nil)(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	assertUnauthorized(t, resp)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWTConfig(), stubSessionVerifier{ok: true}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assertUnauthorized(t, resp)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token, _ := mintTestToken(t, cfg, time.Now().Add(-2*time.Hour), uuid.New(), "asha@example.com")
	handler := Auth(cfg, stubSessionVerifier{ok: true}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assertUnauthorized(t, resp)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	cfg := testJWTConfig()
	token, _ := mintTestToken(t, cfg, time.Now(), uuid.New(), "asha@example.com")
	handler := Auth(cfg, stubSessionVerifier{ok: false}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assertUnauthorized(t, resp)
}

func TestAuthSessionStoreFailureIsUnauthorized(t *testing.T) {
	cfg := testJWTConfig()
	token, _ := mintTestToken(t, cfg, time.Now(), uuid.New(), "asha@example.com")
	handler := Auth(cfg, stubSessionVerifier{err: errors.New("redis down")}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assertUnauthorized(t, resp)
}

func TestAuthAllowsValidToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, accessID := mintTestToken(t, cfg, time.Now(), userID, "asha@example.com")

	var captured struct {
		user     string
		email    string
		accessID string
	}
	handler := Auth(cfg, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.user = UserIDFromContext(r.Context())
		captured.email = EmailFromContext(r.Context())
		captured.accessID = AccessIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.user != userID.String() {
		t.Fatalf("expected user %s got %s", userID, captured.user)
	}
	if captured.email != "asha@example.com" {
		t.Fatalf("unexpected email %q", captured.email)
	}
	if captured.accessID != accessID {
		t.Fatalf("expected access id %s got %s", accessID, captured.accessID)
	}
}

func TestAuthAllowExpiredAcceptsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, accessID := mintTestToken(t, cfg, time.Now().Add(-2*time.Hour), userID, "asha@example.com")

	var gotAccessID string
	handler := AuthAllowExpired(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccessID = AccessIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotAccessID != accessID {
		t.Fatalf("expected access id %s got %s", accessID, gotAccessID)
	}
}

func TestAuthAllowExpiredRejectsForeignSignature(t *testing.T) {
	cfg := testJWTConfig()
	other := cfg
	other.Secret = "another-secret"
	token, _ := mintTestToken(t, other, time.Now(), uuid.New(), "asha@example.com")

	handler := AuthAllowExpired(cfg, nil)(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assertUnauthorized(t, resp)
}

func TestContextHelpersOnEmptyContext(t *testing.T) {
	ctx := context.Background()
	if UserIDFromContext(ctx) != "" || EmailFromContext(ctx) != "" || AccessIDFromContext(ctx) != "" {
		t.Fatalf("expected empty identity")
	}
	ctx = WithIdentity(ctx, "u-1", "asha@example.com", "a-1")
	if UserIDFromContext(ctx) != "u-1" || EmailFromContext(ctx) != "asha@example.com" || AccessIDFromContext(ctx) != "a-1" {
		t.Fatalf("identity not stored")
	}
}

type stubSessionVerifier struct {
	ok  bool
	err error
}

func (s stubSessionVerifier) HasSession(ctx context.Context, accessID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.ok, nil
}
