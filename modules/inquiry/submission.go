package inquiry

import (
	"context"
	"fmt"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/pkg/email"
	"github.com/dmitrymomot/storefront/pkg/email/templates"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
)

// Submission is the snapshot of a valid form handed to a Submitter.
type Submission struct {
	ID        uuid.UUID
	Form      string
	Fields    []Field
	Values    map[string]string
	Lang      string
	ClientIP  string
	CreatedAt time.Time
}

// Submitter delivers a submission to the business.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// DefaultSubmitDelay is how long SimulatedSubmitter pretends to work.
const DefaultSubmitDelay = 2 * time.Second

// SimulatedSubmitter accepts every submission after Delay without sending
// anything. It returns early with the context error on cancellation.
type SimulatedSubmitter struct {
	Delay time.Duration
}

func (s SimulatedSubmitter) Submit(ctx context.Context, _ Submission) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// snapshot cleans field values for delivery: markup stripped, phone masked,
// email lowercased, single-line fields collapsed.
func snapshot(fields []Field) ([]Field, map[string]string) {
	clean := make([]Field, len(fields))
	values := make(map[string]string, len(fields))
	for i, f := range fields {
		switch {
		case f.Kind == KindPhone:
			f.Value = sanitizer.FormatPhone(sanitizer.Trim(f.Value))
		case f.Kind == KindEmail:
			f.Value = sanitizer.NormalizeEmail(f.Value)
		case f.Multiline:
			f.Value = sanitizer.Multiline(f.Value)
		default:
			f.Value = sanitizer.Apply(f.Value, sanitizer.StripHTML, sanitizer.SingleLine)
		}
		clean[i] = f
		values[f.Name] = f.Value
	}
	return clean, values
}

// NotificationParams is the data for the e-mail sent to the business.
type NotificationParams struct {
	Submission   Submission
	BusinessName string
	Heading      string
	Rows         []NotificationRow
	ReceivedAt   string
}

// NotificationRow is one labelled value in the notification.
type NotificationRow struct {
	Label string
	Value string
}

// MailSubmitter sends each submission to the business inbox.
type MailSubmitter struct {
	sender   email.EmailSender
	inbox    string
	business string
	view     func(NotificationParams) templ.Component
	loc      *Localizer
	catalog  *Catalog
}

// NewMailSubmitter returns a Submitter that renders view and sends it to
// inbox. The notification is written in the site's default language.
func NewMailSubmitter(
	sender email.EmailSender,
	inbox, business string,
	view func(NotificationParams) templ.Component,
	loc *Localizer,
	catalog *Catalog,
) *MailSubmitter {
	return &MailSubmitter{
		sender:   sender,
		inbox:    inbox,
		business: business,
		view:     view,
		loc:      loc,
		catalog:  catalog,
	}
}

func (m *MailSubmitter) Submit(ctx context.Context, s Submission) error {
	lang := DefaultLanguage

	rows := make([]NotificationRow, 0, len(s.Fields))
	for _, f := range s.Fields {
		value := f.Value
		if f.Name == "servico" && m.catalog != nil {
			value = m.catalog.ServiceName(value, lang)
		}
		if value == "" {
			continue
		}
		rows = append(rows, NotificationRow{Label: m.loc.Label(lang, f), Value: value})
	}

	body, err := templates.Render(ctx, m.view(NotificationParams{
		Submission:   s,
		BusinessName: m.business,
		Heading:      m.loc.T(lang, "email.heading."+s.Form, s.Form),
		Rows:         rows,
		ReceivedAt:   s.CreatedAt.Format("02/01/2006 15:04"),
	}))
	if err != nil {
		return fmt.Errorf("render notification: %w", err)
	}

	subject := m.loc.T(lang, "email.subject."+s.Form, "Novo contato: %{name}", "name", s.Values["nome"])

	return m.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   m.inbox,
		Subject:  subject,
		BodyHTML: body,
		ReplyTo:  s.Values["email"],
		Tag:      s.Form,
	})
}
