package i18n

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

type languageContextKey struct{}

// WithLanguage stores lang on ctx.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageContextKey{}, lang)
}

// LanguageFromContext returns the stored language or fallback.
func LanguageFromContext(ctx context.Context, fallback string) string {
	if lang, ok := ctx.Value(languageContextKey{}).(string); ok && lang != "" {
		return lang
	}
	return fallback
}

// LoggerExtractor adds the negotiated language to log records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		lang, ok := ctx.Value(languageContextKey{}).(string)
		if !ok || lang == "" {
			return slog.Attr{}, false
		}
		return logger.Lang(lang), true
	}
}
