package blog

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxSlugLength is the longest slug accepted by NewSlug.
const MaxSlugLength = 200

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slug is the URL-safe identity of a post and the stem of its file name.
type Slug struct {
	value string
}

// NewSlug trims and lowercases raw and validates the result.
func NewSlug(raw string) (Slug, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	checks := []struct {
		rule Rule
		r    validation.Rule
	}{
		{RuleRequired, validation.Required},
		{RuleMaxLength, validation.Length(0, MaxSlugLength)},
		{RulePattern, validation.Match(slugPattern)},
	}
	for _, c := range checks {
		if err := validation.Validate(normalized, c.r); err != nil {
			return Slug{}, &InvalidSlugError{Value: raw, Rule: c.rule, cause: err}
		}
	}

	return Slug{value: normalized}, nil
}

// MustSlug is like NewSlug but panics on invalid input. Intended for literals.
func MustSlug(raw string) Slug {
	s, err := NewSlug(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// SlugFromPersistence wraps a value loaded from a trusted store without validating it.
func SlugFromPersistence(value string) Slug {
	return Slug{value: value}
}

// IsValidSlug reports whether value is already a normalized, valid slug.
func IsValidSlug(value string) bool {
	return value != "" && len(value) <= MaxSlugLength && slugPattern.MatchString(value)
}

func (s Slug) String() string {
	return s.value
}

// IsZero reports whether s was never set.
func (s Slug) IsZero() bool {
	return s.value == ""
}

// Equals compares two slugs exactly.
func (s Slug) Equals(other Slug) bool {
	return s.value == other.value
}
