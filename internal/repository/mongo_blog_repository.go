package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/portfolio/backend/internal/model"
)

// MongoBlogRepository is the MongoDB implementation of BlogRepository.
type MongoBlogRepository struct {
	posts *mongodriver.Collection
}

// NewMongoBlogRepository creates a MongoBlogRepository backed by the given DB.
func NewMongoBlogRepository(db *DB) *MongoBlogRepository {
	return &MongoBlogRepository{posts: db.posts}
}

var _ BlogRepository = (*MongoBlogRepository)(nil)

// publishedFilter returns the base filter for reader-facing queries,
// optionally narrowed to a tag.
func publishedFilter(tag string) bson.D {
	filter := bson.D{{Key: "isPublished", Value: true}}
	if tag != "" {
		filter = append(filter, bson.E{Key: "tags", Value: tag})
	}
	return filter
}

// Insert persists a new post. The unique slug index is the authority on
// duplicates; a duplicate-key error surfaces as ErrConflict.
func (r *MongoBlogRepository) Insert(ctx context.Context, post *model.BlogPost) error {
	const op = "repository/mongo/Insert"

	res, err := r.posts.InsertOne(ctx, post)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("%s: unexpected inserted id type", op)
	}
	post.ID = oid
	return nil
}

// ListPublished returns one page of published posts, newest first, with the
// content field projected away, plus the total matching count.
func (r *MongoBlogRepository) ListPublished(ctx context.Context, opts model.BlogListOptions) ([]model.BlogPost, int64, error) {
	const op = "repository/mongo/ListPublished"

	filter := publishedFilter(opts.Tag)
	skip := int64(opts.Page-1) * int64(opts.Limit)

	findOpts := options.Find().
		SetProjection(bson.D{{Key: "content", Value: 0}}).
		SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(opts.Limit))

	cur, err := r.posts.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	posts := []model.BlogPost{}
	for cur.Next(ctx) {
		var post model.BlogPost
		if err := cur.Decode(&post); err != nil {
			return nil, 0, fmt.Errorf("%s: decode: %w", op, err)
		}
		post.PublishedAt = post.PublishedAt.UTC()
		post.UpdatedAt = post.UpdatedAt.UTC()
		posts = append(posts, post)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: cursor: %w", op, err)
	}

	total, err := r.posts.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}
	return posts, total, nil
}

// FindPublishedBySlug returns the published post with the given slug,
// content included.
func (r *MongoBlogRepository) FindPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	const op = "repository/mongo/FindPublishedBySlug"

	filter := bson.D{
		{Key: "slug", Value: slug},
		{Key: "isPublished", Value: true},
	}

	var post model.BlogPost
	if err := r.posts.FindOne(ctx, filter).Decode(&post); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post.PublishedAt = post.PublishedAt.UTC()
	post.UpdatedAt = post.UpdatedAt.UTC()
	return &post, nil
}

// FindByID returns the post with the given hex id. A malformed id is
// treated as no such record.
func (r *MongoBlogRepository) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	const op = "repository/mongo/FindByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var post model.BlogPost
	if err := r.posts.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&post); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post.PublishedAt = post.PublishedAt.UTC()
	post.UpdatedAt = post.UpdatedAt.UTC()
	return &post, nil
}

// SlugExists reports whether any post, published or not, uses the slug.
func (r *MongoBlogRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	const op = "repository/mongo/SlugExists"

	count, err := r.posts.CountDocuments(ctx, bson.D{{Key: "slug", Value: slug}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return count > 0, nil
}

// DistinctTags returns the sorted set of tags across published posts.
func (r *MongoBlogRepository) DistinctTags(ctx context.Context) ([]string, error) {
	const op = "repository/mongo/DistinctTags"

	values, err := r.posts.Distinct(ctx, "tags", publishedFilter(""))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tags := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			tags = append(tags, s)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// Replace overwrites the stored post identified by post.ID.
func (r *MongoBlogRepository) Replace(ctx context.Context, post *model.BlogPost) error {
	const op = "repository/mongo/Replace"

	res, err := r.posts.ReplaceOne(ctx, bson.D{{Key: "_id", Value: post.ID}}, post)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// DeleteByID removes a post and returns the removed document.
func (r *MongoBlogRepository) DeleteByID(ctx context.Context, id string) (*model.BlogPost, error) {
	const op = "repository/mongo/DeleteByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var post model.BlogPost
	if err := r.posts.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&post); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &post, nil
}

// DeleteAll removes every post and returns the number deleted.
func (r *MongoBlogRepository) DeleteAll(ctx context.Context) (int64, error) {
	const op = "repository/mongo/DeleteAll"

	res, err := r.posts.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.DeletedCount, nil
}
