package logger

import (
	"log/slog"
	"time"
)

// Error records err under the key "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Form records which site form an entry refers to ("booking", "contact").
func Form(name string) slog.Attr {
	return slog.String("form", name)
}

// Field records a form field name.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Fields records the names of the fields that failed validation.
func Fields(names []string) slog.Attr {
	return slog.Any("fields", names)
}

// SubmissionID records the identifier assigned to an accepted submission.
func SubmissionID(id string) slog.Attr {
	return slog.String("submission_id", id)
}

// ClientIP records the visitor address.
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

// Lang records the negotiated language tag.
func Lang(tag string) slog.Attr {
	return slog.String("lang", tag)
}

// Duration records d in milliseconds under the key "duration_ms".
func Duration(d time.Duration) slog.Attr {
	return slog.Int64("duration_ms", d.Milliseconds())
}
