package email

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Provider names accepted by EMAIL_PROVIDER.
const (
	ProviderDev      = "dev"
	ProviderPostmark = "postmark"
	ProviderResend   = "resend"
)

// Config holds email delivery settings. Provider tokens are optional so a
// development setup runs without any account; see New.
type Config struct {
	Provider             string `env:"EMAIL_PROVIDER" envDefault:"dev"`
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	ResendAPIKey         string `env:"RESEND_API_KEY"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@localhost.test"`
	SenderName           string `env:"SENDER_NAME"`
	SupportEmail         string `env:"SUPPORT_EMAIL"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

func (c Config) validateIdentity() error {
	rules := []validator.Rule{
		validator.RequiredString("SenderEmail", c.SenderEmail),
		validator.LooseEmail("SenderEmail", c.SenderEmail),
	}
	if c.SupportEmail != "" {
		rules = append(rules, validator.LooseEmail("SupportEmail", c.SupportEmail))
	}
	if err := validator.ApplyFirst(rules...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) from() string {
	if c.SenderName == "" {
		return c.SenderEmail
	}
	return fmt.Sprintf("%s <%s>", c.SenderName, c.SenderEmail)
}

// New picks a sender for cfg.Provider. A production provider without its
// token falls back to the dev sender with a warning, so a missing secret
// never stops the site from accepting inquiries.
func New(cfg Config, log *slog.Logger) (EmailSender, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("email"))

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderPostmark:
		if cfg.PostmarkServerToken == "" || cfg.PostmarkAccountToken == "" {
			log.Warn("postmark tokens missing, writing emails to disk", slog.String("dir", cfg.DevDir))
			return NewDevSender(cfg.DevDir), nil
		}
		return NewPostmarkClient(cfg)
	case ProviderResend:
		if cfg.ResendAPIKey == "" {
			log.Warn("resend api key missing, writing emails to disk", slog.String("dir", cfg.DevDir))
			return NewDevSender(cfg.DevDir), nil
		}
		return NewResendClient(cfg)
	case ProviderDev, "":
		return NewDevSender(cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
