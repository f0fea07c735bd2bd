package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// resendEmails is the slice of resend.EmailsSvc the sender needs.
type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type resendClient struct {
	emails resendEmails
	config Config
}

// NewResendClient creates a Resend-backed sender.
func NewResendClient(cfg Config) (EmailSender, error) {
	if cfg.ResendAPIKey == "" {
		return nil, fmt.Errorf("%w: ResendAPIKey is required", ErrInvalidConfig)
	}
	if err := cfg.validateIdentity(); err != nil {
		return nil, err
	}

	return &resendClient{
		emails: resend.NewClient(cfg.ResendAPIKey).Emails,
		config: cfg,
	}, nil
}

func (c *resendClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	req := &resend.SendEmailRequest{
		From:    c.config.from(),
		To:      []string{params.SendTo},
		Subject: params.Subject,
		Html:    params.BodyHTML,
	}
	switch {
	case params.ReplyTo != "":
		req.ReplyTo = params.ReplyTo
	case c.config.SupportEmail != "":
		req.ReplyTo = c.config.SupportEmail
	}
	if params.Tag != "" {
		req.Tags = []resend.Tag{{Name: "category", Value: params.Tag}}
	}

	if _, err := c.emails.SendWithContext(ctx, req); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}
