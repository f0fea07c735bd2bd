package sanitizer

import "strings"

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return TrimToLower(email)
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return email
	}
	return local[:1] + strings.Repeat("*", len(local)-1) + "@" + domain
}

// FormatPhone applies the Brazilian phone mask while the user types.
// Non-digits are dropped; 11 digits become "(XX) XXXXX-XXXX", 10 digits
// "(XX) XXXX-XXXX", fewer stay as bare digits. Input with more than 11
// digits is returned unchanged.
func FormatPhone(raw string) string {
	d := KeepDigits(raw)
	switch {
	case len(d) > 11:
		return raw
	case len(d) == 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case len(d) == 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return d
	}
}

// MaskPhone shows only the last four digits.
func MaskPhone(phone string) string {
	d := KeepDigits(phone)
	if len(d) <= 4 {
		return strings.Repeat("*", len(d))
	}
	return strings.Repeat("*", len(d)-4) + d[len(d)-4:]
}
