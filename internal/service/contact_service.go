package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// SubmitContactInput is the form-facing shape of a contact submission.
type SubmitContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates the input, persists the message and then attempts
	// the notification emails. Notification failures are logged and
	// swallowed; the submission succeeds once persistence succeeds.
	// Returns validate.Errors on bad input.
	Submit(ctx context.Context, in SubmitContactInput, sourceAddr string) (*model.Contact, error)

	// List returns one page of stored contacts, newest first. The limit is
	// capped at 50 regardless of the requested value. Admin-gated at the
	// HTTP layer.
	List(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error)
}
