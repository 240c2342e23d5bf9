package repositorycache

import (
	"strings"

	"github.com/goliatone/go-blog-content/blog"
)

// Operation identifies which repository read a cache entry belongs to.
type Operation int

const (
	OpFindBySlug Operation = iota + 1
	OpFindAll
	OpFindByTag
	OpAllSlugs
	OpAllTags
	OpSearch
)

// allArg is the argument of operations that take none.
const allArg = "all"

// String returns the key segment of the operation.
func (o Operation) String() string {
	switch o {
	case OpFindBySlug:
		return "post"
	case OpFindAll:
		return "posts"
	case OpFindByTag:
		return "tag"
	case OpAllSlugs:
		return "slugs"
	case OpAllTags:
		return "tags"
	case OpSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Key is a cache key before serialization: one operation and its single argument.
type Key struct {
	Op  Operation
	Arg string
}

func SlugKey(slug blog.Slug) Key { return Key{Op: OpFindBySlug, Arg: slug.String()} }
func AllPostsKey() Key { return Key{Op: OpFindAll, Arg: allArg} }
func TagKey(tag blog.Tag) Key { return Key{Op: OpFindByTag, Arg: tag.Value()} }
func AllSlugsKey() Key { return Key{Op: OpAllSlugs, Arg: allArg} }
func AllTagsKey() Key { return Key{Op: OpAllTags, Arg: allArg} }

// SearchKey normalizes query so equivalent searches share an entry.
func SearchKey(query string) Key {
	return Key{Op: OpSearch, Arg: strings.ToLower(strings.TrimSpace(query))}
}
