package i18n

import (
	"net/http"
	"time"
)

// LangExtractor returns the language for a request, or "" when undecided.
type LangExtractor func(r *http.Request) string

// ExtractorConfig names the request inputs consulted by DefaultLangExtractor.
type ExtractorConfig struct {
	QueryParamName string
	CookieName     string
}

type ExtractorOption func(*ExtractorConfig)

func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// DefaultLangExtractor checks, in order, the query parameter, the cookie
// and Accept-Language (all default to "lang"). Values are resolved through
// m, so only supported languages are returned.
func DefaultLangExtractor(m *Matcher, opts ...ExtractorOption) LangExtractor {
	cfg := ExtractorConfig{QueryParamName: "lang", CookieName: "lang"}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request) string {
		if v := r.URL.Query().Get(cfg.QueryParamName); v != "" {
			if lang, ok := m.Match(v); ok {
				return lang
			}
		}
		if c, err := r.Cookie(cfg.CookieName); err == nil && c.Value != "" {
			if lang, ok := m.Match(c.Value); ok {
				return lang
			}
		}
		if lang, ok := m.MatchAcceptLanguage(r.Header.Get("Accept-Language")); ok {
			return lang
		}
		return ""
	}
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	extractor    LangExtractor
	persistQuery string
	cookieName   string
	cookieMaxAge time.Duration
}

// WithExtractor replaces DefaultLangExtractor.
func WithExtractor(extr LangExtractor) MiddlewareOption {
	return func(c *middlewareConfig) {
		if extr != nil {
			c.extractor = extr
		}
	}
}

// WithPersistedChoice stores an explicit ?<param>= choice in a cookie so the
// language sticks across pages.
func WithPersistedChoice(param, cookie string, maxAge time.Duration) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.persistQuery = param
		c.cookieName = cookie
		c.cookieMaxAge = maxAge
	}
}

// Middleware stores the negotiated language on the request context and sets
// Content-Language on the response.
func Middleware(m *Matcher, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{extractor: DefaultLangExtractor(m)}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := cfg.extractor(r)
			if lang == "" {
				lang = m.Default()
			}

			if cfg.persistQuery != "" && cfg.cookieName != "" {
				if v := r.URL.Query().Get(cfg.persistQuery); v != "" {
					if chosen, ok := m.Match(v); ok {
						http.SetCookie(w, &http.Cookie{
							Name:     cfg.cookieName,
							Value:    chosen,
							Path:     "/",
							MaxAge:   int(cfg.cookieMaxAge.Seconds()),
							HttpOnly: true,
							SameSite: http.SameSiteLaxMode,
						})
					}
				}
			}

			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
		})
	}
}
