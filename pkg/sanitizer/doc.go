// Package sanitizer cleans user input before it is stored, mailed or logged.
//
// Helpers are small string transforms that can be chained with Apply or
// Compose:
//
//	clean := sanitizer.Compose(sanitizer.StripHTML, sanitizer.SingleLine)
//	name := clean(form.Name)
//
// StripHTML and Multiline use a bluemonday strict policy, so no markup
// survives. FormatPhone implements the (XX) XXXXX-XXXX input mask.
// MaskEmail and MaskPhone hide personal data in logs.
package sanitizer
