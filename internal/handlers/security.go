// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ghevaa/kodingin/internal/middleware"
	"github.com/ghevaa/kodingin/internal/render"
	"github.com/ghevaa/kodingin/internal/session"
	"github.com/ghevaa/kodingin/internal/store"
)

// totpIssuer is the issuer name shown in authenticator apps.
const totpIssuer = "Kodingin"

// Security groups the account security handlers: the settings page and
// the TOTP enrollment lifecycle.
type Security struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
}

// NewSecurity creates a new Security handler group.
func NewSecurity(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore) *Security {
	return &Security{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
	}
}

// SettingsPage renders the security settings with the current 2FA state.
func (s *Security) SettingsPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := s.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.renderer.Page(w, r, "security", &render.PageData{
		Title:   "Security",
		Section: "security",
		Data:    map[string]any{"TwoFAEnabled": user.Has2FA()},
	})
}

// TwoFASetupStart generates a fresh TOTP secret, stores it against the
// user, and shows the QR code. The secret only takes effect once a valid
// code confirms the enrollment.
func (s *Security) TwoFASetupStart(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := s.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.renderSetupPage(w, r, key.URL(), key.Secret(), "")
}

// TwoFAEnable confirms enrollment by validating the first code against the
// stored secret, then flips the account to 2FA-required.
func (s *Security) TwoFAEnable(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := s.userStore.FindByID(sess.UserID)
	if err != nil || user == nil || user.TOTPSecret == nil {
		slog.Error("user lookup for 2fa enable failed", "error", err)
		http.Redirect(w, r, "/admin/security", http.StatusSeeOther)
		return
	}

	if !totp.Validate(r.FormValue("code"), *user.TOTPSecret) {
		url := totpKeyURL(user.Email, *user.TOTPSecret)
		s.renderSetupPage(w, r, url, *user.TOTPSecret, "Invalid code. Please try again.")
		return
	}

	if err := s.userStore.EnableTOTP(user.ID); err != nil {
		slog.Error("enable totp failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// The current session already proved possession of the new secret.
	sess.TwoFARequired = true
	sess.TwoFADone = true
	if err := s.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
	}

	slog.Info("2fa enabled", "user", user.Email)
	http.Redirect(w, r, "/admin/security", http.StatusSeeOther)
}

// TwoFADisable turns off TOTP for the account and clears the stored secret.
func (s *Security) TwoFADisable(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	if err := s.userStore.DisableTOTP(sess.UserID); err != nil {
		slog.Error("disable totp failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sess.TwoFARequired = false
	sess.TwoFADone = false
	if err := s.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
	}

	slog.Info("2fa disabled", "user", sess.Email)
	http.Redirect(w, r, "/admin/security", http.StatusSeeOther)
}

// renderSetupPage encodes the enrollment URL as a QR code and renders the
// setup page, optionally with an inline error.
func (s *Security) renderSetupPage(w http.ResponseWriter, r *http.Request, url, secret, errMsg string) {
	qrPNG, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title: "Two-factor setup",
		Error: errMsg,
		Data: map[string]any{
			"QRCode": base64.StdEncoding.EncodeToString(qrPNG),
			"Secret": secret,
		},
	})
}

// totpKeyURL rebuilds the otpauth enrollment URL for an existing secret.
func totpKeyURL(email, secret string) string {
	return "otpauth://totp/" + totpIssuer + ":" + email + "?secret=" + secret + "&issuer=" + totpIssuer
}
