package repositorycache

import (
	"strings"
	"unicode"
)

// toSnake converts a namespace such as "BlogPosts" or "draft-posts" to snake_case.
// Punctuation collapses into single underscores so a namespace can never contain
// the key separator and break prefix invalidation.
func toSnake(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	lastUnderscore := false
	underscore := func() {
		if !lastUnderscore && b.Len() > 0 {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if b.Len() > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || nextLower {
					underscore()
				}
			}
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false

		case unicode.IsLower(r):
			b.WriteRune(r)
			lastUnderscore = false

		case unicode.IsDigit(r):
			if b.Len() > 0 && !unicode.IsDigit(runes[i-1]) {
				underscore()
			}
			b.WriteRune(r)
			lastUnderscore = false

		default:
			underscore()
		}
	}

	return strings.Trim(b.String(), "_")
}
