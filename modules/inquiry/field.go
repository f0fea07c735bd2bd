package inquiry

import "github.com/dmitrymomot/storefront/pkg/validator"

// Kind selects the format rule applied to a field value.
type Kind string

const (
	KindText   Kind = "text"
	KindEmail  Kind = "email"
	KindPhone  Kind = "phone"
	KindDate   Kind = "date"
	KindSelect Kind = "select"
)

// Field is one form input at validation time.
type Field struct {
	Name     string
	Label    string
	Value    string
	Kind     Kind
	Required bool

	// Options restricts a select field to the listed values.
	// An empty list accepts any value.
	Options []string

	// MaxLen limits the value length in runes. Zero means no limit.
	MaxLen int

	// Multiline keeps line breaks when the value is snapshotted.
	Multiline bool
}

// Result is the outcome of validating a whole form.
// It holds at most one error per field.
type Result struct {
	Errors validator.ValidationErrors
}

// Valid reports whether every field passed.
func (r Result) Valid() bool {
	return r.Errors.IsEmpty()
}

// FieldValid reports whether the named field passed.
func (r Result) FieldValid(name string) bool {
	return !r.Errors.Has(name)
}

// ErrorsByField maps each failing field to its default message.
func (r Result) ErrorsByField() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Err returns the collected errors, or nil when the form is valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors
}

// FindField returns the field with the given name.
func FindField(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Values maps field names to raw values.
func Values(fields []Field) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Value
	}
	return out
}
