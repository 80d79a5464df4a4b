package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndExtractUserID(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	// Round-trip the token through the verifier middleware the way a
	// real request would.
	var gotID uuid.UUID
	var gotErr error
	handler := svc.Verifier()(svc.Authenticator(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotErr = UserID(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if gotErr != nil {
		t.Fatalf("UserID: %v", gotErr)
	}
	if gotID != userID {
		t.Errorf("user id: got %s, want %s", gotID, userID)
	}
}

func TestAuthenticatorRejectsMissingToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	handler := svc.Verifier()(svc.Authenticator(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a token")
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestAuthenticatorRejectsForgedToken(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	handler := verifier.Verifier()(verifier.Authenticator(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with a token signed by another key")
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}
