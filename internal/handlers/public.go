// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghevaa/kodingin/internal/cache"
	"github.com/ghevaa/kodingin/internal/markdown"
	"github.com/ghevaa/kodingin/internal/render"
	"github.com/ghevaa/kodingin/internal/store"
)

// blogPageSize is how many published posts appear per blog index page.
const blogPageSize = 12

// homeRecentPosts is how many latest posts the homepage shows.
const homeRecentPosts = 3

// Public groups handlers for the marketing site and blog. Rendered pages
// are checked against the Valkey view cache first and stored there on miss.
type Public struct {
	renderer  *render.Renderer
	postStore *store.PostStore
	viewCache *cache.ViewCache
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, postStore *store.PostStore, viewCache *cache.ViewCache) *Public {
	return &Public{
		renderer:  renderer,
		postStore: postStore,
		viewCache: viewCache,
	}
}

// Home renders the marketing homepage with the latest published posts.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.viewCache.Get(ctx, cache.HomeKey()); ok {
		writeHTML(w, cached)
		return
	}

	recent, _, err := p.postStore.ListPublished(homeRecentPosts, 0)
	if err != nil {
		slog.Error("list recent posts failed", "error", err)
		// The homepage still works without the post strip.
	}

	html, err := p.renderer.Render("home", &render.PageData{
		Title:   "",
		Section: "home",
		Data:    map[string]any{"RecentPosts": recent},
	})
	if err != nil {
		slog.Error("render home failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.viewCache.Set(ctx, cache.HomeKey(), html)
	writeHTML(w, html)
}

// BlogIndex renders one page of the published-posts listing. The page
// number comes from the ?page query parameter, defaulting to 1.
func (p *Public) BlogIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := pageParam(r)

	if cached, ok := p.viewCache.Get(ctx, cache.BlogIndexKey(page)); ok {
		writeHTML(w, cached)
		return
	}

	posts, total, err := p.postStore.ListPublished(blogPageSize, (page-1)*blogPageSize)
	if err != nil {
		slog.Error("list published posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(blogPageSize)))
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		p.renderer.NotFound(w, r)
		return
	}

	html, err := p.renderer.Render("blog_index", &render.PageData{
		Title:   "Blog",
		Section: "blog",
		Data: map[string]any{
			"Posts":      posts,
			"Page":       page,
			"PrevPage":   page - 1,
			"NextPage":   page + 1,
			"TotalPages": totalPages,
		},
	})
	if err != nil {
		slog.Error("render blog index failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.viewCache.Set(ctx, cache.BlogIndexKey(page), html)
	writeHTML(w, html)
}

// BlogPost renders a published post by slug. Drafts and unknown slugs both
// produce the same 404 so draft URLs leak nothing.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	if cached, ok := p.viewCache.Get(ctx, cache.PostDetailKey(slugParam)); ok {
		writeHTML(w, cached)
		return
	}

	post, err := p.postStore.FindBySlug(slugParam, true)
	if err != nil {
		slog.Error("find post by slug failed", "slug", slugParam, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		p.renderer.NotFound(w, r)
		return
	}

	contentHTML, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Error("markdown render failed", "slug", slugParam, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	html, err := p.renderer.Render("blog_post", &render.PageData{
		Title:   post.Title,
		Section: "blog",
		Data: map[string]any{
			"Post":        post,
			"ContentHTML": contentHTML,
		},
	})
	if err != nil {
		slog.Error("render blog post failed", "slug", slugParam, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.viewCache.Set(ctx, cache.PostDetailKey(slugParam), html)
	writeHTML(w, html)
}

// NotFound is the catch-all handler for unknown public routes.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.renderer.NotFound(w, r)
}

// pageParam parses the ?page query parameter, clamping to 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// writeHTML sends rendered HTML with the right content type.
func writeHTML(w http.ResponseWriter, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}
