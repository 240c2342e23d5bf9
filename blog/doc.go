// Package blog holds the content domain: the Slug, Tag and ReadingTime value
// objects, the BlogPost entity with its BlogPostMeta projection, and the
// repository contract implemented by every content store.
//
// Value objects come with two factories. NewSlug and NewTag validate untrusted
// input and fail with *InvalidSlugError or *InvalidTagError; the FromPersistence
// variants trust data that a repository has already checked.
//
//	slug, err := blog.NewSlug(r.PathValue("slug"))
//	if errors.Is(err, blog.ErrInvalidSlug) {
//		// reject the request
//	}
//
// Not-found is never an error at this level: FindBySlug returns nil and the
// listing operations return empty slices.
package blog
