package cache

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// DefaultMaxArgLength is the longest argument kept verbatim in a key.
const DefaultMaxArgLength = 64

// KeySerializer builds a cache key from a namespace, an operation and its arguments.
// It is responsible for producing stable keys across calls.
type KeySerializer interface {
	SerializeKey(namespace, operation string, args ...string) string
}

type defaultKeySerializer struct {
	maxArgLength int
}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{maxArgLength: DefaultMaxArgLength}
}

// NewKeySerializer creates a serializer that hashes arguments longer than maxArgLength.
// A non-positive maxArgLength disables hashing.
func NewKeySerializer(maxArgLength int) KeySerializer {
	return &defaultKeySerializer{maxArgLength: maxArgLength}
}

// SerializeKey joins the segments with KeySeparator. Empty namespaces are omitted.
// Long arguments are replaced by "h:" followed by their xxhash digest, and
// separators inside arguments are escaped so two different argument lists can
// never produce the same key.
func (s *defaultKeySerializer) SerializeKey(namespace, operation string, args ...string) string {
	parts := make([]string, 0, len(args)+2)
	if namespace != "" {
		parts = append(parts, namespace)
	}
	parts = append(parts, operation)

	for _, arg := range args {
		parts = append(parts, s.serializeArg(arg))
	}

	return strings.Join(parts, KeySeparator)
}

// Prefix returns the key prefix shared by every key of a namespace.
func Prefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + KeySeparator
}

func (s *defaultKeySerializer) serializeArg(arg string) string {
	if s.maxArgLength > 0 && len(arg) > s.maxArgLength {
		return "h:" + strconv.FormatUint(xxhash.Sum64String(arg), 16)
	}
	if strings.Contains(arg, ":") || strings.Contains(arg, "%") {
		arg = strings.ReplaceAll(arg, "%", "%25")
		arg = strings.ReplaceAll(arg, ":", "%3A")
	}
	return arg
}
