// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Kodingin site server.
// It loads configuration, connects to services, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghevaa/kodingin/internal/action"
	"github.com/ghevaa/kodingin/internal/cache"
	"github.com/ghevaa/kodingin/internal/config"
	"github.com/ghevaa/kodingin/internal/database"
	"github.com/ghevaa/kodingin/internal/handlers"
	"github.com/ghevaa/kodingin/internal/render"
	"github.com/ghevaa/kodingin/internal/router"
	"github.com/ghevaa/kodingin/internal/session"
	"github.com/ghevaa/kodingin/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	// Connect to PostgreSQL and bring the schema up to date.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the default admin account (no-op if users already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for sessions and the rendered-view cache.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session cookies are Secure everywhere except local development.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Data stores.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	cacheLogStore := store.NewCacheLogStore(db)

	// View cache and the invalidation dispatcher behind the actions.
	viewCache := cache.NewViewCache(valkeyClient, cache.DefaultViewTTL)
	dispatcher := cache.NewDispatcher(viewCache, cacheLogStore)
	postActions := action.NewPosts(postStore, dispatcher)

	// Handler groups.
	adminHandlers := handlers.NewAdmin(renderer, postStore, cacheLogStore, postActions)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore)
	securityHandlers := handlers.NewSecurity(renderer, sessionStore, userStore)
	publicHandlers := handlers.NewPublic(renderer, postStore, viewCache)

	r := router.New(router.Deps{
		Sessions:      sessionStore,
		Admin:         adminHandlers,
		Auth:          authHandlers,
		Security:      securityHandlers,
		Public:        publicHandlers,
		SecureCookies: secureCookies,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
