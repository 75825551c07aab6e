// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains. Routes are
// organized into the public site, the login surface, and the session-gated
// admin area.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghevaa/kodingin/internal/handlers"
	"github.com/ghevaa/kodingin/internal/middleware"
	"github.com/ghevaa/kodingin/internal/session"
	"github.com/ghevaa/kodingin/web"
)

// loginRateLimit allows this many login attempts per IP per window.
const loginRateLimit = 10

// loginRateWindow is the sliding window for the login rate limiter.
const loginRateWindow = time.Minute

// Deps carries everything the router needs wired in.
type Deps struct {
	Sessions      *session.Store
	Admin         *handlers.Admin
	Auth          *handlers.Auth
	Security      *handlers.Security
	Public        *handlers.Public
	SecureCookies bool
}

// New creates the configured chi router with all middleware and route
// groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(d.Sessions))

	csrf := middleware.CSRF(d.SecureCookies)

	// Health check, no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Login surface, CSRF-protected and rate-limited.
	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)
	r.Group(func(r chi.Router) {
		r.Use(csrf)
		r.With(loginLimiter.Middleware).Get("/login", d.Auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", d.Auth.LoginSubmit)
		r.Post("/logout", d.Auth.Logout)
	})

	// Admin area.
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrf)
		r.Use(middleware.RequireAuth)

		// 2FA verification needs a session but not a completed check.
		r.Get("/2fa/verify", d.Auth.TwoFAVerifyPage)
		r.Post("/2fa/verify", d.Auth.TwoFAVerifySubmit)

		// Everything else requires the full login, code included.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Require2FA)

			r.Get("/", d.Admin.Dashboard)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", d.Admin.PostsList)
				r.Get("/new", d.Admin.PostNew)
				r.Post("/", d.Admin.PostCreate)
				r.Get("/{id}/edit", d.Admin.PostEdit)
				r.Post("/{id}", d.Admin.PostUpdate)
				r.Post("/{id}/delete", d.Admin.PostDelete)
				r.Post("/{id}/publish", d.Admin.PostTogglePublish)
			})

			r.Route("/security", func(r chi.Router) {
				r.Get("/", d.Security.SettingsPage)
				r.Post("/2fa/setup", d.Security.TwoFASetupStart)
				r.Post("/2fa/enable", d.Security.TwoFAEnable)
				r.Post("/2fa/disable", d.Security.TwoFADisable)
			})
		})
	})

	// Public site.
	r.Get("/", d.Public.Home)
	r.Get("/blog", d.Public.BlogIndex)
	r.Get("/blog/{slug}", d.Public.BlogPost)
	r.NotFound(d.Public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
