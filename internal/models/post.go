// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a blog post. A post is either a draft (Published=false)
// or live (Published=true); no other visibility states exist.
type Post struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Excerpt    *string    `json:"excerpt,omitempty"`
	Content    string     `json:"content"`
	CoverImage *string    `json:"cover_image,omitempty"`
	Published  bool       `json:"published"`
	AuthorID   *uuid.UUID `json:"author_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// StatusLabel returns the human-readable publish state, used by the admin
// posts table and the dashboard.
func (p *Post) StatusLabel() string {
	if p.Published {
		return "Published"
	}
	return "Draft"
}

// PostStats holds the aggregate counts shown on the admin dashboard.
type PostStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
}
