// Package mailer sends the contact-form notification emails. The Notifier
// capability is injected into the contact service; failures are the caller's
// to log and swallow, a lost email never fails a submission.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/portfolio/backend/internal/model"
)

// Notifier is the outbound-mail capability used by the contact service.
type Notifier interface {
	// ContactReceived sends both notifications for a stored submission:
	// a summary to the site owner and an auto-reply to the submitter.
	ContactReceived(ctx context.Context, contact *model.Contact) error
}

// Config carries the SMTP settings for the production notifier.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// OwnerEmail receives the owner notification. Falls back to Username.
	OwnerEmail string
	// OwnerName signs the auto-reply and labels the owner notice.
	OwnerName string
}

// Configured reports whether credentials are present. Without them the
// server runs with the no-op notifier, mirroring a dev setup without SMTP.
func (c Config) Configured() bool {
	return c.Username != "" && c.Password != ""
}

// SMTPNotifier sends notifications through an SMTP relay.
type SMTPNotifier struct {
	client *mail.Client
	cfg    Config
}

// NewSMTPNotifier builds a notifier from the given SMTP settings.
func NewSMTPNotifier(cfg Config) (*SMTPNotifier, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("mailer: new client: %w", err)
	}
	return &SMTPNotifier{client: client, cfg: cfg}, nil
}

var _ Notifier = (*SMTPNotifier)(nil)

// ContactReceived sends the owner notice and the submitter auto-reply.
// Both are attempted; errors are joined so a partial failure still reports
// the one that broke.
func (n *SMTPNotifier) ContactReceived(ctx context.Context, contact *model.Contact) error {
	owner, ownerErr := n.ownerMessage(contact)
	reply, replyErr := n.autoReplyMessage(contact)
	if err := errors.Join(ownerErr, replyErr); err != nil {
		return fmt.Errorf("mailer: build messages: %w", err)
	}

	if err := n.client.DialAndSendWithContext(ctx, owner, reply); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) ownerAddress() string {
	if n.cfg.OwnerEmail != "" {
		return n.cfg.OwnerEmail
	}
	return n.cfg.Username
}

// ownerMessage summarizes the submission for the site owner.
func (n *SMTPNotifier) ownerMessage(contact *model.Contact) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat("Portfolio Contact", n.cfg.Username); err != nil {
		return nil, err
	}
	if err := msg.To(n.ownerAddress()); err != nil {
		return nil, err
	}
	msg.Subject("Portfolio Contact: " + truncate(sanitize(contact.Subject), 100))
	msg.SetBodyString(mail.TypeTextHTML, ownerBody(contact))
	return msg, nil
}

// autoReplyMessage acknowledges receipt to the submitter.
func (n *SMTPNotifier) autoReplyMessage(contact *model.Contact) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(n.cfg.OwnerName, n.cfg.Username); err != nil {
		return nil, err
	}
	if err := msg.To(contact.Email); err != nil {
		return nil, err
	}
	msg.Subject("Thank you for your message!")
	msg.SetBodyString(mail.TypeTextHTML, autoReplyBody(contact, n.cfg.OwnerName))
	return msg, nil
}

// sanitize strips the characters that would break out of the HTML bodies.
func sanitize(s string) string {
	return strings.NewReplacer("<", "", ">", "", "&", "", `"`, "").Replace(s)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func ownerBody(contact *model.Contact) string {
	ip := contact.IPAddress
	if ip == "" {
		ip = "Unknown"
	}
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New Contact Message</h2>
  <p><strong>Name:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Subject:</strong> %s</p>
  <p><strong>IP Address:</strong> %s</p>
  <p><strong>Received:</strong> %s</p>
  <h3>Message:</h3>
  <p>%s</p>
</div>`,
		sanitize(contact.Name),
		sanitize(contact.Email),
		truncate(sanitize(contact.Subject), 100),
		sanitize(ip),
		contact.CreatedAt.Format(time.RFC1123),
		truncate(sanitize(contact.Message), 1000),
	)
}

func autoReplyBody(contact *model.Contact, ownerName string) string {
	subject := truncate(sanitize(contact.Subject), 50)
	if len([]rune(contact.Subject)) > 50 {
		subject += "..."
	}
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Thank You, %s!</h2>
  <p>Thank you for reaching out! I've received your message about
  "<strong>%s</strong>" and I'll get back to you as soon as possible.</p>
  <p>I typically respond within 24-48 hours.</p>
  <p>Best regards,<br><strong>%s</strong></p>
</div>`,
		sanitize(contact.Name),
		subject,
		sanitize(ownerName),
	)
}

// NopNotifier drops notifications. Used when SMTP is not configured.
type NopNotifier struct{}

func (NopNotifier) ContactReceived(ctx context.Context, contact *model.Contact) error {
	return nil
}
