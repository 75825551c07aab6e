// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

package action

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ghevaa/kodingin/internal/models"
	"github.com/ghevaa/kodingin/internal/slug"
	"github.com/ghevaa/kodingin/internal/store"
)

// PostStore is the subset of the post store the actions need. Declared
// here so the actions can be tested against a fake without a database.
type PostStore interface {
	Create(p *models.Post) (*models.Post, error)
	Update(p *models.Post) (*models.Post, error)
	Delete(id uuid.UUID) error
	SetPublished(id uuid.UUID, published bool) (*models.Post, error)
}

// Invalidator removes cached views after a successful mutation.
type Invalidator interface {
	Invalidate(ctx context.Context, entityID uuid.UUID, action string, views ...View)
}

// msgDuplicateSlug is the user-facing form of store.ErrDuplicateSlug.
const msgDuplicateSlug = "A post with this slug already exists"

// Posts wraps the mutating post operations. Each operation validates its
// input, calls the store, converts any error into a failure Result, and on
// success hands its affected-view set to the invalidator.
type Posts struct {
	store       PostStore
	invalidator Invalidator
}

// NewPosts creates the post actions with the given store and invalidator.
func NewPosts(s PostStore, inv Invalidator) *Posts {
	return &Posts{store: s, invalidator: inv}
}

// PostInput carries the string form fields of the create/update forms.
// Published is already coerced from the literal "true" by the handler.
type PostInput struct {
	Title      string
	Slug       string
	Excerpt    string
	Content    string
	CoverImage string
	Published  bool
	AuthorID   *uuid.UUID
}

// toModel converts the input into a post, mapping empty optional fields to NULL.
func (in PostInput) toModel() *models.Post {
	p := &models.Post{
		Title:     in.Title,
		Slug:      in.Slug,
		Content:   in.Content,
		Published: in.Published,
		AuthorID:  in.AuthorID,
	}
	if in.Excerpt != "" {
		p.Excerpt = &in.Excerpt
	}
	if in.CoverImage != "" {
		p.CoverImage = &in.CoverImage
	}
	return p
}

// Create validates and persists a new post. The slug is derived from the
// title when the form left it blank. Affected views: blog index, admin list.
func (a *Posts) Create(ctx context.Context, in PostInput) Result[*models.Post] {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return Fail[*models.Post]("Title and content are required")
	}

	if in.Slug == "" {
		in.Slug = slug.Generate(in.Title)
	}

	created, err := a.store.Create(in.toModel())
	if err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			return Fail[*models.Post](msgDuplicateSlug)
		}
		slog.Error("create post failed", "slug", in.Slug, "error", err)
		return Fail[*models.Post]("Failed to create post")
	}

	a.invalidator.Invalidate(ctx, created.ID, "create",
		BlogIndexView(), AdminListView())

	return OK(created)
}

// Update validates and persists changes to an existing post. Unlike Create,
// the slug is required: the edit form always submits one, and deriving it
// here would silently rename a published URL. Affected views: blog index,
// post detail under the new slug, admin list, admin edit form.
func (a *Posts) Update(ctx context.Context, id uuid.UUID, in PostInput) Result[*models.Post] {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Slug) == "" || strings.TrimSpace(in.Content) == "" {
		return Fail[*models.Post]("Title, slug, and content are required")
	}

	p := in.toModel()
	p.ID = id

	updated, err := a.store.Update(p)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			return Fail[*models.Post](msgDuplicateSlug)
		}
		slog.Error("update post failed", "id", id, "error", err)
		return Fail[*models.Post]("Failed to update post")
	}

	a.invalidator.Invalidate(ctx, updated.ID, "update",
		BlogIndexView(), PostDetailView(updated.Slug), AdminListView(), AdminEditView(updated.ID))

	return OK(updated)
}

// Delete removes a post permanently. A missing id is a failure, not a
// silent success. Affected views: blog index, admin list.
func (a *Posts) Delete(ctx context.Context, id uuid.UUID) Result[struct{}] {
	if err := a.store.Delete(id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("delete post failed", "id", id, "error", err)
		}
		return Fail[struct{}]("Failed to delete post")
	}

	a.invalidator.Invalidate(ctx, id, "delete",
		BlogIndexView(), AdminListView())

	return OK(struct{}{})
}

// TogglePublish sets the publish flag to the requested state. Repeating the
// call with the same state is idempotent. Affected views: blog index, post
// detail by slug, admin list.
func (a *Posts) TogglePublish(ctx context.Context, id uuid.UUID, publish bool) Result[*models.Post] {
	updated, err := a.store.SetPublished(id, publish)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("toggle publish failed", "id", id, "error", err)
		}
		return Fail[*models.Post]("Failed to update post status")
	}

	a.invalidator.Invalidate(ctx, updated.ID, "toggle-publish",
		BlogIndexView(), PostDetailView(updated.Slug), AdminListView())

	return OK(updated)
}
