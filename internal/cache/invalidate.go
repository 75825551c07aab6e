// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ghevaa/kodingin/internal/action"
)

// AuditLog records invalidation events for the admin audit trail.
// Implemented by store.CacheLogStore.
type AuditLog interface {
	Log(entityID uuid.UUID, action, views string)
}

// Dispatcher translates the affected-view sets declared by the actions into
// Valkey key deletions. It implements action.Invalidator.
type Dispatcher struct {
	views *ViewCache
	audit AuditLog
}

// NewDispatcher creates a dispatcher over the given view cache. The audit
// log may be nil, in which case events are only logged.
func NewDispatcher(views *ViewCache, audit AuditLog) *Dispatcher {
	return &Dispatcher{views: views, audit: audit}
}

// Invalidate deletes the cached entries for each affected view. The blog
// index is paginated, so every cached page is cleared along with the
// homepage, which embeds the latest posts. Failures are logged and
// swallowed: a stale cache entry expires on its TTL, it must not fail the
// mutation that already committed.
func (d *Dispatcher) Invalidate(ctx context.Context, entityID uuid.UUID, act string, views ...action.View) {
	for _, v := range views {
		switch v.Kind {
		case action.KindBlogIndex:
			d.views.DeletePrefix(ctx, blogIndexPrefix)
			d.views.Delete(ctx, HomeKey())
		case action.KindPostDetail:
			d.views.Delete(ctx, PostDetailKey(v.Key))
		case action.KindAdminList:
			d.views.Delete(ctx, AdminListKey())
		case action.KindAdminEdit:
			d.views.Delete(ctx, AdminEditKey(v.Key))
		default:
			slog.Warn("unknown view kind in invalidation", "kind", v.Kind)
		}
	}

	if d.audit != nil {
		names := make([]string, len(views))
		for i, v := range views {
			names[i] = v.String()
		}
		d.audit.Log(entityID, act, strings.Join(names, ","))
	}

	slog.Info("views invalidated", "action", act, "entity", entityID, "count", len(views))
}
