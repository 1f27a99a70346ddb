// Package derive holds the pure derivation rules for blog posts: URL slugs
// from titles, read-time estimates from content, and default excerpts.
// These run on every save of the source field, not only at creation.
package derive

import "strings"

// wordsPerMinute is the reading speed assumed by ReadTime.
const wordsPerMinute = 200

// excerptRunes is the length of a default excerpt taken from the content.
const excerptRunes = 200

// Slug converts a title into a URL-safe identifier: lowercased, characters
// outside [a-z0-9 -] stripped, whitespace runs collapsed to single hyphens,
// repeated hyphens collapsed, leading and trailing hyphens removed.
func Slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '-':
			b.WriteRune(r)
		}
	}

	s = strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// ReadTime estimates reading time in whole minutes: word count divided by
// 200 words per minute, rounded up, never less than 1.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Excerpt produces the default excerpt for a post without one: the first
// 200 runes of the content followed by an ellipsis.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptRunes {
		runes = runes[:excerptRunes]
	}
	return string(runes) + "..."
}
