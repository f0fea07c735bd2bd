// Package validator provides small, composable validation rules for form
// input: required and length checks, option membership, loose e-mail and
// phone shapes, and calendar date rules.
//
// Every exported rule constructor returns a Rule that pairs a boolean Check
// with translation-friendly error metadata. Rules are evaluated with Apply,
// which collects every failure, or ApplyFirst, which stops at the first one.
// Both return a ValidationErrors value that satisfies the error interface.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.RequiredString("name", name),
//	    validator.LooseEmail("email", email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    msg, _ := verrs.First("email")
//	    _ = msg.TranslationKey // "validation.email"
//	}
//
// Per-field chains usually go through ApplyFirst so that a format rule never
// reports on an empty value:
//
//	err := validator.ApplyFirst(
//	    validator.RequiredString("phone", phone),
//	    validator.LoosePhone("phone", phone),
//	)
//
// # Dates
//
// ParseDate reads the HTML date input format (2006-01-02) in a given location.
// NotBeforeDay and NotOnWeekday operate on parsed values and compare at
// midnight, so the time of day of the reference clock never matters.
//
// # Error Handling
//
// Rule failures are values, never panics. Use ExtractValidationErrors or
// IsValidationError to detect them through wrapped errors; the sentinel
// errors in errors.go describe lower-level parse failures.
//
// The package has no global state and is safe for concurrent use.
package validator
