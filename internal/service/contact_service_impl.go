package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/mailer"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/validate"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactRepository
	notifier mailer.Notifier
}

// NewContactService creates a ContactService backed by the given repository
// and mail notifier.
func NewContactService(repo repository.ContactRepository, notifier mailer.Notifier) ContactService {
	return &contactServiceImpl{repo: repo, notifier: notifier}
}

// validateSubmission applies the contact form's field rules, in form order.
func validateSubmission(in SubmitContactInput) error {
	return validate.Run(
		validate.LengthBetween("name", in.Name, 2, 50, "Name must be between 2-50 characters"),
		validate.Email("email", in.Email, "Please provide a valid email address"),
		validate.LengthBetween("subject", in.Subject, 5, 100, "Subject must be between 5-100 characters"),
		validate.LengthBetween("message", in.Message, 10, 1000, "Message must be between 10-1000 characters"),
	)
}

func (s *contactServiceImpl) Submit(ctx context.Context, in SubmitContactInput, sourceAddr string) (*model.Contact, error) {
	if err := validateSubmission(in); err != nil {
		return nil, err
	}

	contact := &model.Contact{
		Name:      strings.TrimSpace(in.Name),
		Email:     validate.NormalizeEmail(in.Email),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: time.Now().UTC(),
		IsRead:    false,
		IPAddress: sourceAddr,
	}

	if err := s.repo.Save(ctx, contact); err != nil {
		return nil, err
	}

	// Best effort: a lost notification never fails the submission and
	// never rolls back the stored record.
	if err := s.notifier.ContactReceived(ctx, contact); err != nil {
		slog.Error("contact notification failed",
			"contact_id", contact.ID.Hex(),
			"error", err,
		)
	}

	return contact, nil
}

func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
	opts.Page, opts.Limit = clampPage(opts.Page, opts.Limit)

	contacts, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &model.ContactPage{
		Contacts:   contacts,
		Pagination: model.NewPagination(opts.Page, opts.Limit, total),
	}, nil
}
