package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghevaa/kodingin/internal/models"
)

func createTestPost(t *testing.T, env *testEnv, title, slug, content string, published bool) *models.Post {
	t.Helper()
	cleanPosts(t, env.DB, slug)
	t.Cleanup(func() { cleanPosts(t, env.DB, slug) })

	post, err := env.PostStore.Create(&models.Post{
		Title:     title,
		Slug:      slug,
		Content:   content,
		Published: published,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func TestPublicHome(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.Public.Home(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Kodingin") {
		t.Error("homepage missing brand")
	}
}

func TestPublicBlogPostVisibility(t *testing.T) {
	env := newTestEnv(t)

	createTestPost(t, env, "Public Post", "public-visibility-pub", "# Heading\n\nbody text", true)
	createTestPost(t, env, "Draft Post", "public-visibility-draft", "hidden", false)

	// Published post renders with markdown converted.
	req := withChiURLParam(httptest.NewRequest("GET", "/blog/public-visibility-pub", nil), "slug", "public-visibility-pub")
	w := httptest.NewRecorder()
	env.Public.BlogPost(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("published post: status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Public Post") {
		t.Error("missing post title")
	}
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "body text") {
		t.Error("markdown content not rendered")
	}

	// Draft is a 404 on the public site.
	draftReq := withChiURLParam(httptest.NewRequest("GET", "/blog/public-visibility-draft", nil), "slug", "public-visibility-draft")
	draftW := httptest.NewRecorder()
	env.Public.BlogPost(draftW, draftReq)

	if draftW.Code != http.StatusNotFound {
		t.Errorf("draft post: status = %d, want 404", draftW.Code)
	}

	// Unknown slug is indistinguishable from a draft.
	missingReq := withChiURLParam(httptest.NewRequest("GET", "/blog/no-such-slug", nil), "slug", "no-such-slug")
	missingW := httptest.NewRecorder()
	env.Public.BlogPost(missingW, missingReq)

	if missingW.Code != http.StatusNotFound {
		t.Errorf("missing post: status = %d, want 404", missingW.Code)
	}
}

func TestPublicBlogIndexListsPublishedOnly(t *testing.T) {
	env := newTestEnv(t)

	createTestPost(t, env, "Index Published", "index-test-pub", "body", true)
	createTestPost(t, env, "Index Draft", "index-test-draft", "body", false)

	w := httptest.NewRecorder()
	env.Public.BlogIndex(w, httptest.NewRequest("GET", "/blog", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Index Published") {
		t.Error("published post missing from index")
	}
	if strings.Contains(body, "Index Draft") {
		t.Error("draft leaked into public index")
	}
}

func TestPublicBlogPostServedFromCache(t *testing.T) {
	env := newTestEnv(t)

	post := createTestPost(t, env, "Cached Post", "cache-serve-test", "original body", true)

	req := withChiURLParam(httptest.NewRequest("GET", "/blog/cache-serve-test", nil), "slug", "cache-serve-test")
	env.Public.BlogPost(httptest.NewRecorder(), req)

	// Change the row behind the cache's back; the cached render wins.
	post.Title = "Changed Behind Cache"
	if _, err := env.PostStore.Update(post); err != nil {
		t.Fatalf("update: %v", err)
	}

	w := httptest.NewRecorder()
	env.Public.BlogPost(w, withChiURLParam(httptest.NewRequest("GET", "/blog/cache-serve-test", nil), "slug", "cache-serve-test"))

	if !strings.Contains(w.Body.String(), "Cached Post") {
		t.Error("expected cached render of the original title")
	}
}

func TestPublishToggleInvalidatesPublicCache(t *testing.T) {
	env := newTestEnv(t)

	post := createTestPost(t, env, "Invalidation Test", "invalidate-flow-test", "body", true)

	// Warm the detail cache.
	req := withChiURLParam(httptest.NewRequest("GET", "/blog/invalidate-flow-test", nil), "slug", "invalidate-flow-test")
	env.Public.BlogPost(httptest.NewRecorder(), req)

	// Unpublish through the action layer, which invalidates the views.
	res := env.Posts.TogglePublish(req.Context(), post.ID, false)
	if !res.Success {
		t.Fatalf("toggle: %s", res.Error)
	}

	w := httptest.NewRecorder()
	env.Public.BlogPost(w, withChiURLParam(httptest.NewRequest("GET", "/blog/invalidate-flow-test", nil), "slug", "invalidate-flow-test"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 after unpublish", w.Code)
	}
}

func TestPageParam(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"/blog", 1},
		{"/blog?page=3", 3},
		{"/blog?page=0", 1},
		{"/blog?page=-2", 1},
		{"/blog?page=notanumber", 1},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", tt.url, nil)
		if got := pageParam(req); got != tt.want {
			t.Errorf("pageParam(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}
