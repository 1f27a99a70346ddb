package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// ContactRepository defines the persistence interface for contact messages.
type ContactRepository interface {
	// Save persists a new contact message and populates contact.ID.
	Save(ctx context.Context, contact *model.Contact) error

	// List returns one page of contacts sorted by createdAt descending,
	// plus the total count of stored contacts.
	List(ctx context.Context, opts model.ContactListOptions) ([]model.Contact, int64, error)
}
