package blog

import (
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxTagLength is the longest tag, in characters, accepted by NewTag.
const MaxTagLength = 50

// Tag labels a post. Tags compare case-insensitively but keep the case they were
// written with for display.
type Tag struct {
	value string
}

// NewTag trims raw and validates it.
func NewTag(raw string) (Tag, error) {
	trimmed := strings.TrimSpace(raw)

	if err := validation.Validate(trimmed, validation.Required); err != nil {
		return Tag{}, &InvalidTagError{Value: trimmed, Rule: RuleRequired, cause: err}
	}
	if err := validation.Validate(trimmed, validation.RuneLength(0, MaxTagLength)); err != nil {
		return Tag{}, &InvalidTagError{Value: trimmed, Rule: RuleMaxLength, cause: err}
	}

	return Tag{value: trimmed}, nil
}

// TagFromPersistence wraps a value loaded from a trusted store without validating it.
func TagFromPersistence(value string) Tag {
	return Tag{value: value}
}

// Value returns the tag as written.
func (t Tag) Value() string {
	return t.value
}

func (t Tag) String() string {
	return t.value
}

// Key is the case-insensitive grouping key of the tag.
func (t Tag) Key() string {
	return strings.ToLower(t.value)
}

// Equals compares two tags ignoring case.
func (t Tag) Equals(other Tag) bool {
	return t.Key() == other.Key()
}

// URLSafe returns the lowercase, percent-encoded form used in tag URLs. Only
// letters, digits and -_.!~*'() are left as is, like encodeURIComponent.
func (t Tag) URLSafe() string {
	return uriComponentFixups.Replace(url.QueryEscape(t.Key()))
}

// uriComponentFixups turns url.QueryEscape output into the component encoding.
var uriComponentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func tagsFromPersistence(values []string) []Tag {
	tags := make([]Tag, 0, len(values))
	for _, v := range values {
		tags = append(tags, TagFromPersistence(v))
	}
	return tags
}
