// Package email sends transactional email through a provider-agnostic
// EmailSender.
//
// Three senders are available:
//   - NewPostmarkClient delivers through Postmark with open and link tracking.
//   - NewResendClient delivers through Resend.
//   - NewDevSender writes the HTML body and a JSON metadata file to a local
//     directory, for development and tests.
//
// New chooses one from Config.Provider and downgrades to the dev sender when
// the provider's credentials are missing. Every sender validates
// SendEmailParams before doing any work; invalid params return an error
// wrapping ErrInvalidParams and the validator.ValidationErrors describing the
// offending fields. Provider failures wrap ErrFailedToSendEmail.
//
// Instrument decorates any sender with Prometheus metrics:
//
//	sender, err := email.New(cfg, log)
//	if err != nil {
//		return err
//	}
//	sender = email.Instrument(sender, prometheus.DefaultRegisterer, "storefront", cfg.Provider)
//
// Bodies are usually templ components rendered with templates.Render.
package email
