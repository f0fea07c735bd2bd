package validator

import "regexp"

// whitespace matches what browsers treat as \s: ASCII whitespace plus
// vertical tab, Unicode space separators, line and paragraph separators and
// the byte order mark. Go's \s alone covers only [\t\n\f\r ].
const whitespace = `\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	// looseEmailRegex accepts local@domain.tld with no whitespace and exactly one @ per side.
	looseEmailRegex = regexp.MustCompile(`(?i)^[^` + whitespace + `@]+@[^` + whitespace + `@]+\.[^` + whitespace + `@]+$`)

	// loosePhoneRegex accepts digits, parentheses, hyphens and plus, at least 10 of them.
	loosePhoneRegex = regexp.MustCompile(`^[()\-+\d]{10,}$`)

	whitespaceRegex = regexp.MustCompile(`[` + whitespace + `]+`)
)

// LooseEmail validates the local@domain.tld shape without RFC 5322 parsing or
// DNS lookups. Empty values fail; combine with RequiredString for a better message.
func LooseEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return looseEmailRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// LoosePhone validates a phone number syntactically: whitespace is removed,
// then at least 10 characters drawn from digits, "(", ")", "-" and "+" must remain.
// No country-specific rules are applied.
func LoosePhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return loosePhoneRegex.MatchString(stripSpaces(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid phone number",
			TranslationKey: "validation.phone",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func stripSpaces(s string) string {
	return whitespaceRegex.ReplaceAllString(s, "")
}
