package email

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

// EmailSender delivers one transactional email.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams describes one outgoing email.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	// ReplyTo overrides the configured reply address, e.g. with the visitor's email.
	ReplyTo string `json:"reply_to,omitempty"`
	Tag     string `json:"tag,omitempty"`
}

// Validate checks the recipient, subject and body before any provider call.
func (p SendEmailParams) Validate() error {
	rules := []validator.Rule{
		validator.RequiredString("send_to", p.SendTo),
		validator.RequiredString("subject", p.Subject),
		validator.RequiredString("body_html", p.BodyHTML),
		validator.MaxLenString("subject", p.Subject, 255),
	}
	if strings.TrimSpace(p.SendTo) != "" {
		rules = append(rules, validator.LooseEmail("send_to", p.SendTo))
	}
	if p.ReplyTo != "" {
		rules = append(rules, validator.LooseEmail("reply_to", p.ReplyTo))
	}

	if err := validator.Apply(rules...); err != nil {
		return errors.Join(ErrInvalidParams, err)
	}
	return nil
}

// SenderFunc adapts a function to EmailSender.
type SenderFunc func(ctx context.Context, params SendEmailParams) error

func (f SenderFunc) SendEmail(ctx context.Context, params SendEmailParams) error {
	return f(ctx, params)
}
