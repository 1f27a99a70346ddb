package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/portfolio/backend/internal/model"
)

const testTimeout = 10 * time.Second

// TestMain starts MongoDB in a container once for the whole package.
// The container address is handed down via DATABASE_URL; every test
// creates its own uniquely named database.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}
	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("DATABASE_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// newTestDB connects to the container with a fresh database per test and
// drops it on cleanup.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("set GO_TEST_INTEGRATION to run integration tests")
	}

	uri := fmt.Sprintf("%s/repo_test_%s",
		os.Getenv("DATABASE_URL"), primitive.NewObjectID().Hex())

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	db, err := New(ctx, uri)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = db.database.Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)
	return ctx
}

func newPost(slug string, published bool, publishedAt time.Time, tags ...string) *model.BlogPost {
	return &model.BlogPost{
		Title:       "Post " + slug,
		Content:     "content for " + slug,
		Excerpt:     "excerpt",
		Slug:        slug,
		Author:      "Author",
		Tags:        tags,
		PublishedAt: publishedAt,
		UpdatedAt:   publishedAt,
		IsPublished: published,
		ReadTime:    1,
	}
}

// ---------------------------------------------------------------------------
// blog repository
// ---------------------------------------------------------------------------

func TestMongoBlogRepository_InsertAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewMongoBlogRepository(db)
	ctx := testCtx(t)

	post := newPost("first-post", true, time.Now().UTC().Truncate(time.Millisecond))
	if err := repo.Insert(ctx, post); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if post.ID.IsZero() {
		t.Error("expected inserted id set on the model")
	}

	got, err := repo.FindPublishedBySlug(ctx, "first-post")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Title != post.Title || got.Content != post.Content {
		t.Errorf("unexpected post %+v", got)
	}

	if _, err := repo.FindPublishedBySlug(ctx, "no-such"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMongoBlogRepository_UniqueSlugIndex(t *testing.T) {
	db := newTestDB(t)
	repo := NewMongoBlogRepository(db)
	ctx := testCtx(t)

	now := time.Now().UTC()
	if err := repo.Insert(ctx, newPost("same-slug", true, now)); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := repo.Insert(ctx, newPost("same-slug", true, now)); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict from the unique index, got %v", err)
	}
}

func TestMongoBlogRepository_ListPublished(t *testing.T) {
	db := newTestDB(t)
	repo := NewMongoBlogRepository(db)
	ctx := testCtx(t)

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 5; i++ {
		post := newPost(fmt.Sprintf("post-%d", i), true, base.Add(time.Duration(i)*time.Hour), "go")
		if err := repo.Insert(ctx, post); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	// A draft must never show up in listings.
	if err := repo.Insert(ctx, newPost("draft-post", false, base, "go")); err != nil {
		t.Fatalf("insert draft: %v", err)
	}

	posts, total, err := repo.ListPublished(ctx, model.BlogListOptions{Page: 1, Limit: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total=5 published, got %d", total)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts on page 1, got %d", len(posts))
	}
	// Newest first.
	if posts[0].Slug != "post-4" || posts[2].Slug != "post-2" {
		t.Errorf("unexpected order: %s ... %s", posts[0].Slug, posts[2].Slug)
	}
	// Listing projection drops content.
	if posts[0].Content != "" {
		t.Error("expected content excluded from listings")
	}

	posts, _, err = repo.ListPublished(ctx, model.BlogListOptions{Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("expected 2 posts on page 2, got %d", len(posts))
	}
}

func TestMongoBlogRepository_ListByTag(t *testing.T) {
	db := newTestDB(t)
	repo := NewMongoBlogRepository(db)
	ctx := testCtx(t)

	now := time.Now().UTC()
	if err := repo.Insert(ctx, newPost("go-post", true, now, "go", "web")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(ctx, newPost("rust-post", true, now, "rust")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	posts, total, err := repo.ListPublished(ctx, model.BlogListOptions{Page: 1, Limit: 10, Tag: "go"})
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if total != 1 || len(posts) != 1 || posts[0].Slug != "go-post" {
		t.Errorf("expected only the tagged post, got total=%d posts=%v", total, posts)
	}
}

func TestMongoBlogRepository_DistinctTags(t *testing.T) {
	db := newTestDB(t)
	repo := NewMongoBlogRepository(db)
	ctx := testCtx(t)

	now := time.Now().UTC()
	if err := repo.Insert(ctx, newPost("a", true, now, "web", "go")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(ctx, newPost("b", true, now, "go", "mongodb")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// Draft tags stay invisible.
	if err := repo.Insert(ctx, newPost("c", false, now, "secret")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	tags, err := repo.DistinctTags(ctx)
	if err != nil {
		t.Fatalf("distinct: %v", err)
	}
	want := []string{"go", "mongodb", "web"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected sorted tags %v, got %v", want, tags)
		}
	}
}

func TestMongoBlogRepository_ReplaceAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewMongoBlogRepository(db)
	ctx := testCtx(t)

	post := newPost("victim", true, time.Now().UTC())
	if err := repo.Insert(ctx, post); err != nil {
		t.Fatalf("insert: %v", err)
	}

	post.Title = "Renamed"
	if err := repo.Replace(ctx, post); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err := repo.FindByID(ctx, post.ID.Hex())
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("expected replaced title, got %q", got.Title)
	}

	deleted, err := repo.DeleteByID(ctx, post.ID.Hex())
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.Title != "Renamed" {
		t.Errorf("expected the deleted post back, got %+v", deleted)
	}

	if _, err := repo.DeleteByID(ctx, post.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := repo.DeleteByID(ctx, "not-a-hex-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestMongoBlogRepository_DeleteAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewMongoBlogRepository(db)
	ctx := testCtx(t)

	now := time.Now().UTC()
	for _, slug := range []string{"one", "two", "three"} {
		if err := repo.Insert(ctx, newPost(slug, true, now)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	count, err := repo.DeleteAll(ctx)
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 deleted, got %d", count)
	}

	_, total, err := repo.ListPublished(ctx, model.BlogListOptions{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Errorf("expected empty collection, got total=%d", total)
	}
}

// ---------------------------------------------------------------------------
// contact repository
// ---------------------------------------------------------------------------

func TestMongoContactRepository_SaveAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewMongoContactRepository(db)
	ctx := testCtx(t)

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 3; i++ {
		contact := &model.Contact{
			Name:      fmt.Sprintf("Visitor %d", i),
			Email:     fmt.Sprintf("visitor%d@example.com", i),
			Subject:   "Subject line",
			Message:   "A long enough message.",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Save(ctx, contact); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if contact.ID.IsZero() {
			t.Error("expected saved id set on the model")
		}
	}

	contacts, total, err := repo.List(ctx, model.ContactListOptions{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total=3, got %d", total)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 on page 1, got %d", len(contacts))
	}
	// Newest first.
	if contacts[0].Name != "Visitor 2" {
		t.Errorf("expected newest contact first, got %q", contacts[0].Name)
	}

	contacts, _, err = repo.List(ctx, model.ContactListOptions{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Name != "Visitor 0" {
		t.Errorf("unexpected page 2 %v", contacts)
	}
}
