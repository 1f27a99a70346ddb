package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// BlogRepository defines the persistence interface for blog posts.
type BlogRepository interface {
	// Insert persists a new post and populates post.ID.
	// Returns ErrConflict when the slug already exists.
	Insert(ctx context.Context, post *model.BlogPost) error

	// ListPublished returns one page of published posts sorted by
	// publishedAt descending, without the content field, plus the total
	// count of posts matching the filter.
	ListPublished(ctx context.Context, opts model.BlogListOptions) ([]model.BlogPost, int64, error)

	// FindPublishedBySlug returns the published post with the given slug
	// including its content, or ErrNotFound.
	FindPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error)

	// FindByID returns the post with the given id regardless of publication
	// state, or ErrNotFound. Malformed ids count as not found.
	FindByID(ctx context.Context, id string) (*model.BlogPost, error)

	// SlugExists reports whether any post already uses the slug.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// DistinctTags returns the sorted set of tags across published posts.
	DistinctTags(ctx context.Context) ([]string, error)

	// Replace overwrites the stored post identified by post.ID.
	// Returns ErrNotFound when absent, ErrConflict on a slug collision.
	Replace(ctx context.Context, post *model.BlogPost) error

	// DeleteByID removes a post and returns it, or ErrNotFound.
	DeleteByID(ctx context.Context, id string) (*model.BlogPost, error)

	// DeleteAll removes every post and returns the number deleted.
	DeleteAll(ctx context.Context) (int64, error)
}
