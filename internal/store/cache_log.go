// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

// cache_log.go records cache invalidation events in the database for
// audit and debugging purposes. Each entry captures which post changed,
// the action (create/update/delete/toggle-publish), and the view keys
// that were invalidated.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// CacheLogStore handles cache invalidation log operations.
type CacheLogStore struct {
	db *sql.DB
}

// NewCacheLogStore creates a new CacheLogStore.
func NewCacheLogStore(db *sql.DB) *CacheLogStore {
	return &CacheLogStore{db: db}
}

// CacheLogEntry is one recorded invalidation event.
type CacheLogEntry struct {
	ID            uuid.UUID
	EntityID      uuid.UUID
	Action        string
	Views         string
	InvalidatedAt time.Time
}

// Log records a cache invalidation event. Logging is best-effort: a
// failure is logged and swallowed so it never affects the mutation path.
func (s *CacheLogStore) Log(entityID uuid.UUID, action, views string) {
	_, err := s.db.Exec(`
		INSERT INTO cache_invalidation_log (entity_id, action, views)
		VALUES ($1, $2, $3)
	`, entityID, action, views)
	if err != nil {
		slog.Warn("failed to log cache invalidation",
			"entity_id", entityID,
			"action", action,
			"error", err,
		)
		return
	}
	slog.Debug("cache invalidation logged",
		"entity_id", entityID,
		"action", action,
		"views", views,
	)
}

// RecentEntries returns the most recent cache invalidation events for
// debugging. Limited to the specified count.
func (s *CacheLogStore) RecentEntries(limit int) ([]CacheLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, entity_id, action, views, invalidated_at
		FROM cache_invalidation_log
		ORDER BY invalidated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list cache log entries: %w", err)
	}
	defer rows.Close()

	var entries []CacheLogEntry
	for rows.Next() {
		var e CacheLogEntry
		if err := rows.Scan(&e.ID, &e.EntityID, &e.Action, &e.Views, &e.InvalidatedAt); err != nil {
			return nil, fmt.Errorf("scan cache log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
