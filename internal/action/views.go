// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

package action

import "github.com/google/uuid"

// ViewKind identifies a class of cached downstream view.
type ViewKind string

const (
	// KindBlogIndex is the public paginated list of published posts.
	KindBlogIndex ViewKind = "blog_index"
	// KindPostDetail is the public post detail page, keyed by slug.
	KindPostDetail ViewKind = "post_detail"
	// KindAdminList is the admin posts table.
	KindAdminList ViewKind = "admin_list"
	// KindAdminEdit is the admin edit form, keyed by post id.
	KindAdminEdit ViewKind = "admin_edit"
)

// View names one cached view affected by a mutation. Key is empty for the
// list views and carries the slug or id for the detail views.
type View struct {
	Kind ViewKind
	Key  string
}

// BlogIndexView returns the affected-view entry for the public blog index.
func BlogIndexView() View { return View{Kind: KindBlogIndex} }

// PostDetailView returns the affected-view entry for a post detail page.
func PostDetailView(slug string) View { return View{Kind: KindPostDetail, Key: slug} }

// AdminListView returns the affected-view entry for the admin posts table.
func AdminListView() View { return View{Kind: KindAdminList} }

// AdminEditView returns the affected-view entry for an admin edit form.
func AdminEditView(id uuid.UUID) View { return View{Kind: KindAdminEdit, Key: id.String()} }

// String renders the view as "kind" or "kind:key" for logs and the
// invalidation audit trail.
func (v View) String() string {
	if v.Key == "" {
		return string(v.Kind)
	}
	return string(v.Kind) + ":" + v.Key
}
