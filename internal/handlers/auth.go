package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"

	"github.com/ghevaa/kodingin/internal/middleware"
	"github.com/ghevaa/kodingin/internal/render"
	"github.com/ghevaa/kodingin/internal/session"
	"github.com/ghevaa/kodingin/internal/store"
)

// Auth groups the login, logout, and 2FA verification handlers.
type Auth struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
	}
}

// LoginPage renders the login form. The redirectTo query parameter is
// carried into a hidden field so a successful login can return the user
// to the page they originally asked for.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.Authenticated() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign in",
		Data: map[string]any{
			"RedirectTo": r.URL.Query().Get("redirectTo"),
			"Email":      "",
		},
	})
}

// LoginSubmit processes the login form. Failures re-render the form with
// an inline error; the submitted email and redirectTo survive the retry.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")
	redirectTo := r.FormValue("redirectTo")

	loginError := func(msg string) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Sign in",
			Error: msg,
			Data: map[string]any{
				"RedirectTo": redirectTo,
				"Email":      email,
			},
		})
	}

	user, err := a.userStore.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		loginError("An unexpected error occurred. Please try again.")
		return
	}

	if user == nil || !a.userStore.CheckPassword(user, password) {
		loginError("Invalid email or password.")
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:        user.ID,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		TwoFARequired: user.Has2FA(),
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("user logged in", "email", user.Email, "2fa", user.Has2FA())

	// Users with TOTP enrolled verify a code first; the 2FA middleware
	// keeps them out of /admin until they do.
	if user.Has2FA() {
		http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, middleware.SafeRedirect(redirectTo, "/admin"), http.StatusSeeOther)
}

// TwoFAVerifyPage renders the 2FA code entry form.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if sess.Authenticated() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "2fa_verify", &render.PageData{
		Title: "Two-factor verification",
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes authentication.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.TOTPSecret == nil || !user.TOTPEnabled {
		// Enrollment was removed since login; nothing left to verify.
		sess.TwoFARequired = false
		a.sessions.Update(r.Context(), r, sess)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if !totp.Validate(r.FormValue("code"), *user.TOTPSecret) {
		a.renderer.Page(w, r, "2fa_verify", &render.PageData{
			Title: "Two-factor verification",
			Error: "Invalid code. Please try again.",
		})
		return
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
