package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// CreatePostInput is the editor-facing shape for creating a post.
// Slug, readTime and a missing excerpt are derived, never supplied.
type CreatePostInput struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Author        string   `json:"author"`
	Tags          []string `json:"tags"`
	IsPublished   *bool    `json:"isPublished"`
	FeaturedImage string   `json:"featuredImage"`
}

// BlogService defines the business logic around blog posts.
//
// Reader operations only ever see published posts. Editor operations
// (Create, Update, Delete, ClearAll) are admin-gated at the HTTP layer,
// before any of them run.
type BlogService interface {
	// ListPublished returns one page of published posts, newest first,
	// without content. Non-positive page/limit values are clamped.
	ListPublished(ctx context.Context, opts model.BlogListOptions) (*model.BlogPage, error)

	// GetBySlug returns the published post with full content,
	// or repository.ErrNotFound.
	GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)

	// ListTags returns the sorted set of distinct tags across published posts.
	ListTags(ctx context.Context) ([]string, error)

	// Create validates the input, derives slug/readTime/excerpt and persists
	// the post. Returns validate.Errors on bad input and
	// repository.ErrConflict when the derived slug is already taken.
	Create(ctx context.Context, in CreatePostInput) (*model.BlogPost, error)

	// Update edits an existing post, re-deriving the slug when the title
	// changed and the read time when the content changed, and refreshing
	// updatedAt. Returns repository.ErrNotFound or repository.ErrConflict.
	Update(ctx context.Context, id string, in CreatePostInput) (*model.BlogPost, error)

	// Delete removes a post by id and returns its title for confirmation,
	// or repository.ErrNotFound.
	Delete(ctx context.Context, id string) (string, error)

	// ClearAll removes every post and returns the count deleted.
	ClearAll(ctx context.Context) (int64, error)
}
