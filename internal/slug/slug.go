// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from post titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonSlugChars matches anything that isn't a word character, whitespace, or hyphen.
	nonSlugChars = regexp.MustCompile(`[^a-z0-9_\s-]`)
	// separators collapses runs of whitespace, underscores, and hyphens into one hyphen.
	separators = regexp.MustCompile(`[\s_-]+`)
)

// Generate creates a URL-friendly slug from the given title.
// Example: "Hello, World! 2" → "hello-world-2"
//
// The result contains only lowercase letters, digits, and single hyphens,
// with no leading or trailing hyphen. Generate is idempotent: applying it
// to its own output yields the same output.
func Generate(title string) string {
	result := strings.ToLower(strings.TrimSpace(title))
	result = nonSlugChars.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}
