// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghevaa/kodingin/internal/action"
	"github.com/ghevaa/kodingin/internal/middleware"
	"github.com/ghevaa/kodingin/internal/render"
	"github.com/ghevaa/kodingin/internal/store"
)

// adminPageSize is how many posts appear per admin listing page.
const adminPageSize = 50

// recentActivityLimit caps the invalidation log shown on the dashboard.
const recentActivityLimit = 10

// Admin groups the dashboard and post management handlers. All mutations
// go through the action layer, which owns validation, error mapping, and
// cache invalidation. Admin pages are never cached: they embed per-user
// session details and CSRF tokens.
type Admin struct {
	renderer  *render.Renderer
	postStore *store.PostStore
	cacheLog  *store.CacheLogStore
	posts     *action.Posts
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(renderer *render.Renderer, postStore *store.PostStore, cacheLog *store.CacheLogStore, posts *action.Posts) *Admin {
	return &Admin{
		renderer:  renderer,
		postStore: postStore,
		cacheLog:  cacheLog,
		posts:     posts,
	}
}

// Dashboard renders post counts and recent cache activity.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := a.postStore.Stats()
	if err != nil {
		slog.Error("load post stats failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	recent, err := a.cacheLog.RecentEntries(recentActivityLimit)
	if err != nil {
		slog.Warn("load cache log failed", "error", err)
		// Dashboard still renders without the activity table.
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"Stats":               stats,
			"RecentInvalidations": recent,
		},
	})
}

// PostsList renders the paginated posts table, drafts included.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	a.renderPostsList(w, r, "")
}

func (a *Admin) renderPostsList(w http.ResponseWriter, r *http.Request, errMsg string) {
	page := pageParam(r)

	posts, total, err := a.postStore.ListAll(adminPageSize, (page-1)*adminPageSize)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(adminPageSize)))
	if totalPages == 0 {
		totalPages = 1
	}

	a.renderer.Page(w, r, "posts_list", &render.PageData{
		Title:   "Posts",
		Section: "posts",
		Error:   errMsg,
		Data: map[string]any{
			"Posts":      posts,
			"Page":       page,
			"PrevPage":   page - 1,
			"NextPage":   page + 1,
			"TotalPages": totalPages,
		},
	})
}

// PostNew renders an empty post form.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	a.renderPostForm(w, r, "/admin/posts", false, map[string]any{
		"Title": "", "Slug": "", "Excerpt": "",
		"Content": "", "CoverImage": "", "Published": false,
	}, "")
}

// PostCreate handles the new-post form submission.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	in, form := a.readPostForm(r)

	if errMsg := validatePostLengths(in.Title, in.Slug, in.Excerpt, in.Content, in.CoverImage); errMsg != "" {
		a.renderPostForm(w, r, "/admin/posts", false, form, errMsg)
		return
	}

	res := a.posts.Create(r.Context(), in)
	if !res.Success {
		a.renderPostForm(w, r, "/admin/posts", false, form, res.Error)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostEdit renders the edit form for an existing post.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := a.postStore.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	form := map[string]any{
		"Title":      post.Title,
		"Slug":       post.Slug,
		"Excerpt":    strDeref(post.Excerpt),
		"Content":    post.Content,
		"CoverImage": strDeref(post.CoverImage),
		"Published":  post.Published,
	}
	a.renderPostForm(w, r, "/admin/posts/"+id.String(), true, form, "")
}

// PostUpdate handles the edit form submission.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	in, form := a.readPostForm(r)
	formAction := "/admin/posts/" + id.String()

	if errMsg := validatePostLengths(in.Title, in.Slug, in.Excerpt, in.Content, in.CoverImage); errMsg != "" {
		a.renderPostForm(w, r, formAction, true, form, errMsg)
		return
	}

	res := a.posts.Update(r.Context(), id, in)
	if !res.Success {
		a.renderPostForm(w, r, formAction, true, form, res.Error)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostDelete handles the delete button on the posts table.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	res := a.posts.Delete(r.Context(), id)
	if !res.Success {
		a.renderPostsList(w, r, res.Error)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostTogglePublish flips a post between draft and published. The form
// submits the target state, so repeating a stale submission is harmless.
func (a *Admin) PostTogglePublish(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	publish := r.FormValue("published") == "true"

	res := a.posts.TogglePublish(r.Context(), id, publish)
	if !res.Success {
		a.renderPostsList(w, r, res.Error)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// readPostForm extracts the post fields from the request. It returns both
// the action input and a map for re-rendering the form on failure.
func (a *Admin) readPostForm(r *http.Request) (action.PostInput, map[string]any) {
	sess := middleware.SessionFromCtx(r.Context())

	in := action.PostInput{
		Title:      r.FormValue("title"),
		Slug:       r.FormValue("slug"),
		Excerpt:    r.FormValue("excerpt"),
		Content:    r.FormValue("content"),
		CoverImage: r.FormValue("cover_image"),
		Published:  r.FormValue("published") == "true",
	}
	if sess != nil {
		in.AuthorID = &sess.UserID
	}

	form := map[string]any{
		"Title":      in.Title,
		"Slug":       in.Slug,
		"Excerpt":    in.Excerpt,
		"Content":    in.Content,
		"CoverImage": in.CoverImage,
		"Published":  in.Published,
	}
	return in, form
}

func (a *Admin) renderPostForm(w http.ResponseWriter, r *http.Request, formAction string, isEdit bool, form map[string]any, errMsg string) {
	title := "New post"
	if isEdit {
		title = "Edit post"
	}

	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   title,
		Section: "posts",
		Error:   errMsg,
		Data: map[string]any{
			"IsEdit":     isEdit,
			"FormAction": formAction,
			"Form":       form,
		},
	})
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
