package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	postsCollection    = "blog_posts"
	contactsCollection = "contacts"
	defaultDBName      = "portfolio"
)

// DB is the MongoDB adapter shared by all repositories. One instance is
// created at startup and injected; it owns the client and the collections.
type DB struct {
	client   *mongodriver.Client
	database *mongodriver.Database
	posts    *mongodriver.Collection
	contacts *mongodriver.Collection
}

// New connects to MongoDB, verifies the connection and ensures the indexes
// the services rely on, most importantly the unique index on slug.
func New(ctx context.Context, uri string) (*DB, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty connection uri")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	database := cli.Database(databaseFromURI(uri))
	db := &DB{
		client:   cli,
		database: database,
		posts:    database.Collection(postsCollection),
		contacts: database.Collection(contactsCollection),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		_ = db.Close(context.Background())
		return nil, err
	}
	return db, nil
}

// Ping verifies the connection is still alive. Used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// ensureIndexes creates the indexes both collections depend on:
//   - unique slug: duplicates must be rejected at the storage layer, the
//     in-process existence check alone is racy under concurrent creates
//   - published listing: isPublished + publishedAt(desc)
//   - tag listing: tags + isPublished + publishedAt(desc)
//   - contact listing: createdAt(desc)
func (db *DB) ensureIndexes(ctx context.Context) error {
	postModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("slug_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "isPublished", Value: 1}, {Key: "publishedAt", Value: -1}},
			Options: options.Index().SetName("published_listing"),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}, {Key: "isPublished", Value: 1}, {Key: "publishedAt", Value: -1}},
			Options: options.Index().SetName("tag_listing"),
		},
	}
	if _, err := db.posts.Indexes().CreateMany(ctx, postModels); err != nil {
		return fmt.Errorf("mongo ensure post indexes: %w", err)
	}

	contactModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
	}
	if _, err := db.contacts.Indexes().CreateMany(ctx, contactModels); err != nil {
		return fmt.Errorf("mongo ensure contact indexes: %w", err)
	}
	return nil
}

// databaseFromURI extracts the database name from a mongodb URI path,
// falling back to a default when absent.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
