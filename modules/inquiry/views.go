package inquiry

import (
	"time"

	"github.com/a-h/templ"
)

// Views holds the components the handlers render. The default set lives
// in the views subpackage; any field can be swapped for a custom design.
type Views struct {
	Page func(PageParams) templ.Component

	// Forms are patched into #<form>-form.
	BookingForm func(FormParams) templ.Component
	ContactForm func(FormParams) templ.Component

	// FieldError is patched into #error-<form>-<field>.
	FieldError func(FieldErrorParams) templ.Component

	// Loading and Success are patched into #<form>-loading and #<form>-success.
	Loading func(LoadingParams) templ.Component
	Success func(SuccessParams) templ.Component

	// Notification is the e-mail body sent to the business.
	Notification func(NotificationParams) templ.Component
}

// PageParams contains data for rendering the landing page.
type PageParams struct {
	Lang         string
	Languages    []string
	BusinessName string
	Services     []ServiceChoice
	Stats        []Stat
	Booking      FormParams
	Contact      FormParams
	Effects      PageEffects
}

// ServiceChoice is a catalog service in the visitor's language.
type ServiceChoice struct {
	ID       string
	Name     string
	Duration time.Duration
}

// FormParams contains data for rendering one form.
type FormParams struct {
	Lang   string
	Form   string
	Values map[string]string
	// Errors maps field names to translated messages.
	Errors map[string]string

	Services []ServiceChoice
	Slots    []string
	MinDate  string

	// Success is set after a plain form post went through.
	Success *SuccessParams
}

// FieldErrorParams contains data for one inline field message. An empty
// Message clears the slot.
type FieldErrorParams struct {
	Lang    string
	Form    string
	Field   string
	Message string
}

type LoadingParams struct {
	Lang   string
	Form   string
	Active bool
}

// SuccessParams contains the confirmation shown after a submission. A
// hidden notice renders an empty slot.
type SuccessParams struct {
	Lang    string
	Form    string
	Message string
	ShowFor time.Duration
	Hidden  bool
}
