package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/portfolio/backend/internal/model"
)

// MongoContactRepository is the MongoDB implementation of ContactRepository.
type MongoContactRepository struct {
	contacts *mongodriver.Collection
}

// NewMongoContactRepository creates a MongoContactRepository backed by the given DB.
func NewMongoContactRepository(db *DB) *MongoContactRepository {
	return &MongoContactRepository{contacts: db.contacts}
}

var _ ContactRepository = (*MongoContactRepository)(nil)

// Save inserts a new contact message and populates contact.ID.
func (r *MongoContactRepository) Save(ctx context.Context, contact *model.Contact) error {
	const op = "repository/mongo/SaveContact"

	res, err := r.contacts.InsertOne(ctx, contact)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("%s: unexpected inserted id type", op)
	}
	contact.ID = oid
	return nil
}

// List returns one page of contacts, newest first, plus the total count.
func (r *MongoContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]model.Contact, int64, error) {
	const op = "repository/mongo/ListContacts"

	skip := int64(opts.Page-1) * int64(opts.Limit)
	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(opts.Limit))

	cur, err := r.contacts.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	contacts := []model.Contact{}
	for cur.Next(ctx) {
		var c model.Contact
		if err := cur.Decode(&c); err != nil {
			return nil, 0, fmt.Errorf("%s: decode: %w", op, err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		contacts = append(contacts, c)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: cursor: %w", op, err)
	}

	total, err := r.contacts.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}
	return contacts, total, nil
}
