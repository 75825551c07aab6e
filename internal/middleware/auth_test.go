package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ghevaa/kodingin/internal/session"
)

func withSession(r *http.Request, data *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), SessionKey, data))
}

func TestRequireAuthRedirectsWithRedirectTo(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a session")
	}))

	req := httptest.NewRequest("GET", "/admin/posts/new", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	loc := w.Header().Get("Location")
	if loc != "/login?redirectTo=%2Fadmin%2Fposts%2Fnew" {
		t.Errorf("Location = %q", loc)
	}
}

func TestRequireAuthPassesWithSession(t *testing.T) {
	called := false
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := withSession(httptest.NewRequest("GET", "/admin", nil), &session.Data{
		UserID: uuid.New(), Email: "a@b.c",
	})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("handler was not called for authenticated request")
	}
}

func TestRequire2FARedirectsPendingSession(t *testing.T) {
	handler := Require2FA(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run before 2FA verification")
	}))

	req := withSession(httptest.NewRequest("GET", "/admin", nil), &session.Data{
		UserID: uuid.New(), TwoFARequired: true, TwoFADone: false,
	})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/2fa/verify" {
		t.Errorf("Location = %q", loc)
	}
}

func TestRequire2FAPassesWithoutEnrollment(t *testing.T) {
	called := false
	handler := Require2FA(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := withSession(httptest.NewRequest("GET", "/admin", nil), &session.Data{
		UserID: uuid.New(), TwoFARequired: false,
	})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("handler was not called for user without TOTP")
	}
}

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"", "/admin"},
		{"/admin/posts", "/admin/posts"},
		{"https://evil.example", "/admin"},
		{"//evil.example", "/admin"},
		{"/admin/posts/new?draft=1", "/admin/posts/new?draft=1"},
	}
	for _, tt := range tests {
		if got := SafeRedirect(tt.target, "/admin"); got != tt.want {
			t.Errorf("SafeRedirect(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestSessionFromCtxNil(t *testing.T) {
	if SessionFromCtx(context.Background()) != nil {
		t.Error("expected nil session from empty context")
	}
}
