package validator

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of an HTML date input.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date in the given location.
// A nil location means time.Local.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return t, nil
}

// StartOfDay zeroes the time-of-day component in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ValidDate fails when the value cannot be parsed as a calendar date.
func ValidDate(field, value string, loc *time.Location) Rule {
	return Rule{
		Check: func() bool {
			_, err := ParseDate(value, loc)
			return err == nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid date",
			TranslationKey: "validation.date",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// NotBeforeDay passes when value falls on the same day as now or later.
// Both values are compared at midnight in now's location.
func NotBeforeDay(field string, value time.Time, now time.Time) Rule {
	return Rule{
		Check: func() bool {
			today := StartOfDay(now)
			return !StartOfDay(value.In(now.Location())).Before(today)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "date must not be in the past",
			TranslationKey: "validation.date_not_past",
			TranslationValues: map[string]any{
				"field": field,
				"min":   now.Format(DateLayout),
			},
		},
	}
}

// NotOnWeekday rejects dates that fall on any of the given weekdays.
func NotOnWeekday(field string, value time.Time, weekdays ...time.Weekday) Rule {
	names := make([]string, 0, len(weekdays))
	for _, wd := range weekdays {
		names = append(names, wd.String())
	}
	return Rule{
		Check: func() bool {
			wd := value.Weekday()
			for _, disallowed := range weekdays {
				if wd == disallowed {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("date must not fall on %s", strings.Join(names, ", ")),
			TranslationKey: "validation.date_weekday",
			TranslationValues: map[string]any{
				"field":    field,
				"weekdays": names,
			},
		},
	}
}
