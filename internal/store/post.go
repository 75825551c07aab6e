// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghevaa/kodingin/internal/models"
)

// postColumns is the column list every post query selects, kept in one
// place so Scan calls stay in sync.
const postColumns = `id, title, slug, excerpt, content, cover_image, published, author_id, created_at, updated_at`

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// scanPost reads one post row into a models.Post.
func scanPost(row interface{ Scan(...any) error }, p *models.Post) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImage,
		&p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
}

// ListPublished returns a page of published posts ordered by creation date
// descending, together with the total published count for pagination.
func (s *PostStore) ListPublished(limit, offset int) ([]models.Post, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE published = TRUE`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count published posts: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts
		WHERE published = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

// ListAll returns a page of all posts (drafts included) ordered by creation
// date descending, together with the total count. Admin use only; callers
// are gated by the auth middleware.
func (s *PostStore) ListAll(limit, offset int) ([]models.Post, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

// FindBySlug retrieves a post by its slug. When publishedOnly is true (the
// public path), drafts are treated as absent. Returns nil if not found.
func (s *PostStore) FindBySlug(slug string, publishedOnly bool) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`
	if publishedOnly {
		query += ` AND published = TRUE`
	}

	p := &models.Post{}
	err := scanPost(s.db.QueryRow(query, slug), p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// FindByID retrieves a post by its UUID regardless of publish state.
// Returns nil if not found. Admin use only.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p := &models.Post{}
	err := scanPost(s.db.QueryRow(`
		SELECT `+postColumns+` FROM posts WHERE id = $1
	`, id), p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated ID and
// timestamps. A slug collision surfaces as ErrDuplicateSlug.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	result := &models.Post{}
	err := scanPost(s.db.QueryRow(`
		INSERT INTO posts (title, slug, excerpt, content, cover_image, published, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+postColumns+`
	`, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.Published, p.AuthorID), result)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update modifies an existing post and returns the stored row. Returns
// ErrNotFound when the id matches nothing and ErrDuplicateSlug when the new
// slug collides with another post.
func (s *PostStore) Update(p *models.Post) (*models.Post, error) {
	result := &models.Post{}
	err := scanPost(s.db.QueryRow(`
		UPDATE posts SET
			title = $1, slug = $2, excerpt = $3, content = $4,
			cover_image = $5, published = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+postColumns+`
	`, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.Published, p.ID), result)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return result, nil
}

// Delete removes a post permanently. Returns ErrNotFound when nothing was
// deleted, so callers can distinguish a missing id from success.
func (s *PostStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPublished sets the publish flag to the requested state and returns the
// stored row. The operation is a pure function of the requested state, so
// repeating it with the same value is a no-op. Returns ErrNotFound when the
// id matches nothing.
func (s *PostStore) SetPublished(id uuid.UUID, published bool) (*models.Post, error) {
	result := &models.Post{}
	err := scanPost(s.db.QueryRow(`
		UPDATE posts SET published = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+postColumns+`
	`, published, id), result)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set post published: %w", err)
	}
	return result, nil
}

// Stats returns the aggregate post counts for the admin dashboard.
func (s *PostStore) Stats() (models.PostStats, error) {
	var stats models.PostStats
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE published = TRUE)
		FROM posts
	`).Scan(&stats.Total, &stats.Published)
	if err != nil {
		return models.PostStats{}, fmt.Errorf("post stats: %w", err)
	}
	stats.Drafts = stats.Total - stats.Published
	return stats, nil
}
