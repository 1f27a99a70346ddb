package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/derive"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/validate"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// blogServiceImpl is the production implementation of BlogService.
type blogServiceImpl struct {
	repo repository.BlogRepository
	// defaultAuthor is used when a post is created without an author.
	defaultAuthor string
}

// NewBlogService creates a BlogService backed by the given repository.
// defaultAuthor fills the author field when the input omits it.
func NewBlogService(repo repository.BlogRepository, defaultAuthor string) BlogService {
	return &blogServiceImpl{repo: repo, defaultAuthor: defaultAuthor}
}

// clampPage normalizes page/limit: non-positive values fall back to
// page 1 / the default limit, and the limit is capped. The same policy
// applies to blog and contact listings.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// normalizeTags lowercases and trims each tag and drops empties.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *blogServiceImpl) ListPublished(ctx context.Context, opts model.BlogListOptions) (*model.BlogPage, error) {
	opts.Page, opts.Limit = clampPage(opts.Page, opts.Limit)
	opts.Tag = strings.ToLower(strings.TrimSpace(opts.Tag))

	posts, total, err := s.repo.ListPublished(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &model.BlogPage{
		Posts:      posts,
		Pagination: model.NewPagination(opts.Page, opts.Limit, total),
	}, nil
}

func (s *blogServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return s.repo.FindPublishedBySlug(ctx, strings.TrimSpace(slug))
}

func (s *blogServiceImpl) ListTags(ctx context.Context) ([]string, error) {
	return s.repo.DistinctTags(ctx)
}

// validatePostInput applies the shared field rules for create and update.
func validatePostInput(in CreatePostInput) error {
	return validate.Run(
		validate.LengthBetween("title", in.Title, 1, 200, "Title must be between 1-200 characters"),
		validate.Required("content", in.Content, "Content is required"),
		validate.MaxLength("excerpt", in.Excerpt, 500, "Excerpt cannot exceed 500 characters"),
		validate.MaxLength("author", in.Author, 100, "Author cannot exceed 100 characters"),
		validate.URL("featuredImage", in.FeaturedImage, "Featured image must be a valid URL"),
	)
}

func (s *blogServiceImpl) Create(ctx context.Context, in CreatePostInput) (*model.BlogPost, error) {
	const op = "service/blog/Create"

	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	slug := derive.Slug(title)
	if slug == "" {
		return nil, validate.Errors{{
			Field:   "title",
			Message: "Title must contain at least one letter or digit",
		}}
	}

	content := strings.TrimSpace(in.Content)
	excerpt := strings.TrimSpace(in.Excerpt)
	if excerpt == "" {
		excerpt = derive.Excerpt(content)
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = s.defaultAuthor
	}

	isPublished := true
	if in.IsPublished != nil {
		isPublished = *in.IsPublished
	}

	now := time.Now().UTC()
	post := &model.BlogPost{
		Title:         title,
		Content:       content,
		Excerpt:       excerpt,
		Slug:          slug,
		Author:        author,
		Tags:          normalizeTags(in.Tags),
		UpdatedAt:     now,
		IsPublished:   isPublished,
		FeaturedImage: strings.TrimSpace(in.FeaturedImage),
		ReadTime:      derive.ReadTime(content),
	}
	if isPublished {
		post.PublishedAt = now
	}

	// Advisory pre-check for a friendlier error; the unique index is the
	// real guard against a concurrent create with the same slug.
	exists, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrConflict)
	}

	if err := s.repo.Insert(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *blogServiceImpl) Update(ctx context.Context, id string, in CreatePostInput) (*model.BlogPost, error) {
	const op = "service/blog/Update"

	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	now := time.Now().UTC()

	if title != post.Title {
		slug := derive.Slug(title)
		if slug == "" {
			return nil, validate.Errors{{
				Field:   "title",
				Message: "Title must contain at least one letter or digit",
			}}
		}
		if slug != post.Slug {
			exists, err := s.repo.SlugExists(ctx, slug)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			if exists {
				return nil, fmt.Errorf("%s: %w", op, repository.ErrConflict)
			}
			post.Slug = slug
		}
		post.Title = title
	}

	if content != post.Content {
		post.Content = content
		post.ReadTime = derive.ReadTime(content)
	}

	excerpt := strings.TrimSpace(in.Excerpt)
	if excerpt == "" {
		excerpt = derive.Excerpt(post.Content)
	}
	post.Excerpt = excerpt

	if author := strings.TrimSpace(in.Author); author != "" {
		post.Author = author
	}
	post.Tags = normalizeTags(in.Tags)
	post.FeaturedImage = strings.TrimSpace(in.FeaturedImage)

	if in.IsPublished != nil {
		// Publishing a draft stamps publishedAt.
		if *in.IsPublished && !post.IsPublished {
			post.PublishedAt = now
		}
		post.IsPublished = *in.IsPublished
	}
	post.UpdatedAt = now

	if err := s.repo.Replace(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *blogServiceImpl) Delete(ctx context.Context, id string) (string, error) {
	post, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return "", err
	}
	return post.Title, nil
}

func (s *blogServiceImpl) ClearAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}
