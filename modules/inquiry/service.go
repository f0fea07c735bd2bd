package inquiry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/pkg/clientip"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
)

// DefaultSuccessDuration is how long the confirmation stays on screen.
const DefaultSuccessDuration = 5 * time.Second

// Outcome tells the presentation layer what to show after a successful
// submission.
type Outcome struct {
	Form         string
	SubmissionID uuid.UUID

	// MessageKey is the translation key of the confirmation; Message is
	// its built-in text.
	MessageKey string
	Message    string

	ShowFor   time.Duration
	ResetForm bool
}

// Service validates forms and delivers valid ones.
type Service struct {
	validator *Validator
	submitter Submitter
	metrics   *Metrics
	log       *slog.Logger
	showFor   time.Duration
	now       func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func WithMetrics(m *Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithSuccessDuration sets Outcome.ShowFor.
func WithSuccessDuration(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.showFor = d
		}
	}
}

// WithServiceClock sets the time source for submission timestamps.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires a validator to a submitter. A nil validator uses the
// defaults of NewValidator.
func NewService(v *Validator, submitter Submitter, opts ...ServiceOption) *Service {
	if v == nil {
		v = NewValidator()
	}
	s := &Service{
		validator: v,
		submitter: submitter,
		log:       slog.Default(),
		showFor:   DefaultSuccessDuration,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validator returns the validator used on submit.
func (s *Service) Validator() *Validator {
	return s.validator
}

// Validate checks a whole form and records rejected fields. It returns
// validator.ValidationErrors when any field fails.
func (s *Service) Validate(ctx context.Context, form string, fields []Field) error {
	if form != FormBooking && form != FormContact {
		return ErrUnknownForm
	}

	res := s.validator.ValidateForm(fields)
	if res.Valid() {
		return nil
	}

	s.metrics.invalid(form, res.Errors.Fields())
	s.log.DebugContext(ctx, "form rejected",
		logger.Component("inquiry"),
		logger.Form(form),
		logger.Fields(res.Errors.Fields()),
	)
	return res.Errors
}

// Submit validates fields and, when all pass, delivers a snapshot of them.
// Invalid input returns validator.ValidationErrors; delivery failures are
// wrapped in ErrSubmissionFailed.
func (s *Service) Submit(ctx context.Context, form string, fields []Field) (Outcome, error) {
	if err := s.Validate(ctx, form, fields); err != nil {
		return Outcome{}, err
	}

	clean, values := snapshot(fields)
	sub := Submission{
		ID:        uuid.New(),
		Form:      form,
		Fields:    clean,
		Values:    values,
		Lang:      i18n.LanguageFromContext(ctx, DefaultLanguage),
		ClientIP:  clientip.FromContext(ctx),
		CreatedAt: s.now(),
	}

	start := time.Now()
	err := s.submitter.Submit(ctx, sub)
	took := time.Since(start)
	s.metrics.delivered(form, err, took)

	if err != nil {
		s.log.ErrorContext(ctx, "submission failed",
			logger.Component("inquiry"),
			logger.Form(form),
			logger.SubmissionID(sub.ID.String()),
			visitor(values),
			logger.Duration(took),
			logger.Error(err),
		)
		return Outcome{}, errors.Join(ErrSubmissionFailed, err)
	}

	s.log.InfoContext(ctx, "submission delivered",
		logger.Component("inquiry"),
		logger.Form(form),
		logger.SubmissionID(sub.ID.String()),
		visitor(values),
		logger.Duration(took),
	)

	return Outcome{
		Form:         form,
		SubmissionID: sub.ID,
		MessageKey:   "success." + form,
		Message:      successMessages[form],
		ShowFor:      s.showFor,
		ResetForm:    true,
	}, nil
}

// visitor groups the sender's masked e-mail and phone for log lines.
func visitor(values map[string]string) slog.Attr {
	attrs := []any{slog.String("email", sanitizer.MaskEmail(values["email"]))}
	if phone := values["telefone"]; phone != "" {
		attrs = append(attrs, slog.String("phone", sanitizer.MaskPhone(phone)))
	}
	return slog.Group("visitor", attrs...)
}
