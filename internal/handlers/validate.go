package handlers

import "unicode/utf8"

// Validation limits for post form fields. Required-field checks live in the
// action layer; these only guard against absurdly large submissions.
const (
	maxTitleLen      = 300
	maxSlugLen       = 300
	maxContentLen    = 100_000
	maxExcerptLen    = 1_000
	maxCoverImageLen = 2_000
)

// validatePostLengths checks post form inputs against the size limits and
// returns the first error found, or "" when everything fits.
func validatePostLengths(title, slug, excerpt, content, coverImage string) string {
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "Excerpt is too long (max 1,000 characters)."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	if utf8.RuneCountInString(coverImage) > maxCoverImageLen {
		return "Cover image URL is too long (max 2,000 characters)."
	}
	return ""
}
