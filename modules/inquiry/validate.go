package inquiry

import (
	"strings"
	"time"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Validator evaluates form fields against the required, format and option
// rules. The clock and location decide what "today" is for date fields.
type Validator struct {
	now    func() time.Time
	loc    *time.Location
	closed []time.Weekday
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the time source used for date comparisons.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithLocation sets the time zone dates are parsed and compared in.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.loc = loc
		}
	}
}

// WithClosedWeekdays replaces the weekdays on which bookings are refused.
// Calling it with no weekdays accepts every day.
func WithClosedWeekdays(days ...time.Weekday) Option {
	return func(v *Validator) {
		v.closed = append([]time.Weekday(nil), days...)
	}
}

// NewValidator returns a Validator using the local clock and time zone,
// closed on Sundays.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		now:    time.Now,
		loc:    time.Local,
		closed: []time.Weekday{time.Sunday},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultValidator = NewValidator()

// ValidateRequired fails when the trimmed value is empty.
func ValidateRequired(field Field) bool {
	return validator.RequiredString(field.Name, field.Value).Check()
}

// ValidateEmail checks the local@domain.tld shape. No DNS lookups.
func ValidateEmail(value string) bool {
	return validator.LooseEmail("email", value).Check()
}

// ValidatePhone strips whitespace and requires at least ten digits,
// parentheses, hyphens or plus signs.
func ValidatePhone(value string) bool {
	return validator.LoosePhone("phone", value).Check()
}

// ValidateDate checks value with the default Validator.
func ValidateDate(value string) bool {
	return defaultValidator.ValidateDate(value)
}

// ValidateForm checks fields with the default Validator. Values are
// trimmed before the format rules run, see Validator.ValidateForm.
func ValidateForm(fields []Field) Result {
	return defaultValidator.ValidateForm(fields)
}

// ValidateField checks one field with the default Validator.
func ValidateField(field Field) (bool, string) {
	return defaultValidator.ValidateField(field)
}

// ValidateDate reports whether value is a YYYY-MM-DD date that is not
// before today and does not fall on a closed weekday.
func (v *Validator) ValidateDate(value string) bool {
	return validator.ApplyFirst(v.dateRules("date", value)...) == nil
}

// ValidateForm runs every field's rules, stopping at the first failure per
// field. All fields are evaluated.
//
// Values are trimmed before the length, format and option rules run, the
// way browsers sanitize e-mail inputs before submitting. So
// " john@example.com " passes here while ValidateEmail rejects it.
func (v *Validator) ValidateForm(fields []Field) Result {
	var res Result
	for _, f := range fields {
		if ve, failed := v.check(f); failed {
			res.Errors.Add(describe(ve, f, true))
		}
	}
	return res
}

// ValidateField checks a single field as it loses focus and returns the
// default message when it fails.
func (v *Validator) ValidateField(field Field) (bool, string) {
	res := v.Blur(field)
	if res.Valid() {
		return true, ""
	}
	return false, res.Errors[0].Message
}

// Blur is ValidateField returning the error with its translation data.
// A missing required value gets the generic "<label> is required" message.
func (v *Validator) Blur(field Field) Result {
	var res Result
	if ve, failed := v.check(field); failed {
		res.Errors.Add(describe(ve, field, false))
	}
	return res
}

func (v *Validator) check(f Field) (validator.ValidationError, bool) {
	errs := validator.ExtractValidationErrors(validator.ApplyFirst(v.rules(f)...))
	if len(errs) == 0 {
		return validator.ValidationError{}, false
	}
	return errs[0], true
}

// rules lists the checks for one field in evaluation order. Format rules
// see the trimmed value and apply only when it is not empty.
func (v *Validator) rules(f Field) []validator.Rule {
	value := strings.TrimSpace(f.Value)

	var rules []validator.Rule
	if f.Required {
		rules = append(rules, validator.RequiredString(f.Name, value))
	}
	if value == "" {
		return rules
	}
	if f.MaxLen > 0 {
		rules = append(rules, validator.MaxLenString(f.Name, value, f.MaxLen))
	}

	switch f.Kind {
	case KindEmail:
		rules = append(rules, validator.LooseEmail(f.Name, value))
	case KindPhone:
		rules = append(rules, validator.LoosePhone(f.Name, value))
	case KindDate:
		rules = append(rules, v.dateRules(f.Name, value)...)
	case KindSelect:
		if len(f.Options) > 0 {
			rules = append(rules, validator.InListString(f.Name, value, f.Options))
		}
	}
	return rules
}

func (v *Validator) dateRules(field, value string) []validator.Rule {
	rules := []validator.Rule{validator.ValidDate(field, value, v.loc)}

	date, err := validator.ParseDate(value, v.loc)
	if err != nil {
		return rules
	}
	return append(rules,
		validator.NotBeforeDay(field, date, v.now().In(v.loc)),
		validator.NotOnWeekday(field, date, v.closed...),
	)
}

// MinDate is today in the validator's time zone, formatted for the min
// attribute of a date input.
func (v *Validator) MinDate() string {
	return v.now().In(v.loc).Format(validator.DateLayout)
}
