package blog

import (
	"errors"
	"fmt"
)

// Rule names the validation rule a raw value violated.
type Rule string

const (
	RuleRequired  Rule = "required"
	RuleMaxLength Rule = "max_length"
	RulePattern   Rule = "pattern"
	RuleMinimum   Rule = "minimum"
)

// Sentinel errors for use with errors.Is.
var (
	ErrInvalidSlug        = errors.New("invalid slug")
	ErrInvalidTag         = errors.New("invalid tag")
	ErrInvalidReadingTime = errors.New("invalid reading time")
)

// InvalidSlugError is returned by NewSlug when the raw input is not a valid slug.
type InvalidSlugError struct {
	Value string
	Rule  Rule
	cause error
}

func (e *InvalidSlugError) Error() string {
	return fmt.Sprintf("invalid slug %q (%s): slugs must be lowercase alphanumeric with hyphens", e.Value, e.Rule)
}

// Unwrap returns the underlying validation error.
func (e *InvalidSlugError) Unwrap() error {
	return e.cause
}

// Is matches ErrInvalidSlug and any other *InvalidSlugError.
func (e *InvalidSlugError) Is(target error) bool {
	if target == ErrInvalidSlug {
		return true
	}
	_, ok := target.(*InvalidSlugError)
	return ok
}

// InvalidTagError is returned by NewTag when the raw input is not a valid tag.
type InvalidTagError struct {
	Value string
	Rule  Rule
	cause error
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("invalid tag %q (%s): tags must be non-empty and at most %d characters", e.Value, e.Rule, MaxTagLength)
}

// Unwrap returns the underlying validation error.
func (e *InvalidTagError) Unwrap() error {
	return e.cause
}

// Is matches ErrInvalidTag and any other *InvalidTagError.
func (e *InvalidTagError) Is(target error) bool {
	if target == ErrInvalidTag {
		return true
	}
	_, ok := target.(*InvalidTagError)
	return ok
}

// IsValidationError reports whether err came from a value-object factory.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidSlug) ||
		errors.Is(err, ErrInvalidTag) ||
		errors.Is(err, ErrInvalidReadingTime)
}
