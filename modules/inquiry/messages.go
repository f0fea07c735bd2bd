package inquiry

import (
	"fmt"
	"maps"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Rule names as they appear in translation keys.
const (
	RuleRequired    = "required"
	RuleMaxLength   = "max_length"
	RuleEmail       = "email"
	RulePhone       = "phone"
	RuleDate        = "date"
	RuleDateNotPast = "date_not_past"
	RuleDateWeekday = "date_weekday"
	RuleInList      = "in_list"
)

// fieldMessages are the built-in texts for a specific field and rule,
// used when no translation overrides them.
var fieldMessages = map[string]string{
	"nome.required":      "Nome é obrigatório",
	"telefone.required":  "Telefone é obrigatório",
	"telefone.phone":     "Formato de telefone inválido",
	"email.required":     "E-mail é obrigatório",
	"email.email":        "E-mail inválido",
	"servico.required":   "Selecione um serviço",
	"data.required":      "Selecione uma data",
	"data.date_not_past": "Data deve ser futura",
	"data.date_weekday":  "Não atendemos aos domingos",
	"horario.required":   "Selecione um horário",
}

var ruleMessages = map[string]string{
	RuleRequired:    "%{label} é obrigatório",
	RuleMaxLength:   "%{label} deve ter no máximo %{max} caracteres",
	RuleEmail:       "E-mail inválido",
	RulePhone:       "Formato de telefone inválido",
	RuleDate:        "Data inválida",
	RuleDateNotPast: "Data deve ser futura",
	RuleDateWeekday: "Não atendemos aos domingos",
	RuleInList:      "Selecione uma opção válida",
}

var successMessages = map[string]string{
	FormBooking: "Agendamento realizado com sucesso! Entraremos em contato para confirmar.",
	FormContact: "Mensagem enviada com sucesso! Responderemos em breve.",
}

func ruleOf(ve validator.ValidationError) string {
	return strings.TrimPrefix(ve.TranslationKey, "validation.")
}

// describe attaches the field label and the site's default message to a
// rule failure. With specific set, a field-level text is preferred over
// the generic rule text.
func describe(ve validator.ValidationError, f Field, specific bool) validator.ValidationError {
	rule := ruleOf(ve)

	values := maps.Clone(ve.TranslationValues)
	if values == nil {
		values = make(map[string]any, 2)
	}
	values["label"] = labelOf(f)
	values["rule"] = rule

	out := validator.ValidationError{
		Field:             ve.Field,
		TranslationKey:    "validation." + rule,
		TranslationValues: values,
	}

	if specific {
		out.TranslationKey = "fields." + f.Name + "." + rule
		if msg, ok := fieldMessages[f.Name+"."+rule]; ok {
			out.Message = msg
			return out
		}
	}

	msg, ok := ruleMessages[rule]
	if !ok {
		msg = ve.Message
	}
	out.Message = substitute(msg, values)
	return out
}

func labelOf(f Field) string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func substitute(tmpl string, values map[string]any) string {
	for k, v := range values {
		tmpl = strings.ReplaceAll(tmpl, "%{"+k+"}", fmt.Sprint(v))
	}
	return tmpl
}

// Localizer turns validation errors and outcomes into text in the
// visitor's language. Keys missing from the translations fall back to the
// built-in Portuguese messages.
type Localizer struct {
	tr *i18n.Translator
}

// NewLocalizer returns a Localizer backed by tr. A nil translator always
// yields the built-in messages.
func NewLocalizer(tr *i18n.Translator) *Localizer {
	return &Localizer{tr: tr}
}

func (l *Localizer) has(lang, key string) bool {
	if l == nil || l.tr == nil {
		return false
	}
	return l.tr.Has(lang, key) || l.tr.Has(l.tr.DefaultLanguage(), key)
}

// T translates a plain key, returning fallback when it is unknown. args
// are name/value pairs for %{name} placeholders in either text.
func (l *Localizer) T(lang, key, fallback string, args ...string) string {
	if l.has(lang, key) {
		return l.tr.T(lang, key, args...)
	}
	values := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		values[args[i]] = args[i+1]
	}
	return substitute(fallback, values)
}

// Label returns the translated label of a field.
func (l *Localizer) Label(lang string, f Field) string {
	return l.T(lang, "fields."+f.Name+".label", labelOf(f))
}

// Error translates one validation error. The field-level key is tried
// first, then the generic rule key, then the default message.
func (l *Localizer) Error(lang string, ve validator.ValidationError) string {
	values := maps.Clone(ve.TranslationValues)
	if values == nil {
		values = map[string]any{}
	}
	if label, ok := values["label"].(string); ok {
		values["label"] = l.T(lang, "fields."+ve.Field+".label", label)
	}

	if l.has(lang, ve.TranslationKey) {
		return l.tr.Tm(lang, ve.TranslationKey, values)
	}
	if rule, ok := values["rule"].(string); ok && l.has(lang, "validation."+rule) {
		return l.tr.Tm(lang, "validation."+rule, values)
	}
	return ve.Message
}

// Errors translates the first error of each field.
func (l *Localizer) Errors(lang string, errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, ve := range errs {
		if _, ok := out[ve.Field]; !ok {
			out[ve.Field] = l.Error(lang, ve)
		}
	}
	return out
}

// Success translates the confirmation shown after a submission.
func (l *Localizer) Success(lang string, o Outcome) string {
	return l.T(lang, o.MessageKey, o.Message)
}
