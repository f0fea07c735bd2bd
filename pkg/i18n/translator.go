package i18n

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// Translator resolves dot-separated keys against per-language trees loaded
// from YAML. Lookups fall back from the requested language to the default
// language and finally to the key itself.
type Translator struct {
	translations map[string]map[string]any
	defaultLang  string
	logMissing   bool
	logger       *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the fallback language. It must be one of the
// loaded languages.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(t *Translator) {
		if log != nil {
			t.logger = log
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every key that falls back.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) { t.logMissing = enabled }
}

// NewTranslator loads every *.yaml / *.yml file at the root of fsys.
// Each file holds one or more top-level language keys.
func NewTranslator(ctx context.Context, fsys fs.FS, opts ...Option) (*Translator, error) {
	translations, err := LoadYAML(ctx, fsys)
	if err != nil {
		return nil, err
	}
	return NewFromMap(translations, opts...)
}

// NewFromMap builds a Translator from already parsed trees.
func NewFromMap(translations map[string]map[string]any, opts ...Option) (*Translator, error) {
	if len(translations) == 0 {
		return nil, ErrNoTranslations
	}

	t := &Translator{
		translations: translations,
		defaultLang:  DefaultLanguage,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	if _, ok := t.translations[t.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrLanguageNotSupported, t.defaultLang)
	}
	return t, nil
}

// DefaultLanguage returns the fallback language.
func (t *Translator) DefaultLanguage() string { return t.defaultLang }

// Languages lists loaded languages, default first, the rest sorted.
func (t *Translator) Languages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		if lang != t.defaultLang {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return append([]string{t.defaultLang}, langs...)
}

// Has reports whether lang itself defines key.
func (t *Translator) Has(lang, key string) bool {
	_, ok := lookup(t.translations[lang], key)
	return ok
}

// T translates key. args are name/value pairs substituted into %{name}
// placeholders; an odd trailing arg is ignored.
func (t *Translator) T(lang, key string, args ...string) string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return substitute(t.resolve(lang, key), params)
}

// Tm is T with a value map, as carried by validation errors.
func (t *Translator) Tm(lang, key string, values map[string]any) string {
	params := make(map[string]string, len(values))
	for k, v := range values {
		params[k] = fmt.Sprint(v)
	}
	return substitute(t.resolve(lang, key), params)
}

// Tc translates key in the language stored on ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(LanguageFromContext(ctx, t.defaultLang), key, args...)
}

func (t *Translator) resolve(lang, key string) string {
	if s, ok := lookup(t.translations[lang], key); ok {
		return s
	}
	if lang != t.defaultLang {
		if s, ok := lookup(t.translations[t.defaultLang], key); ok {
			t.missing(lang, key, true)
			return s
		}
	}
	t.missing(lang, key, false)
	return key
}

func (t *Translator) missing(lang, key string, usedDefault bool) {
	if t.logMissing {
		t.logger.Warn("translation missing",
			slog.String("lang", lang),
			slog.String("key", key),
			slog.Bool("used_default", usedDefault),
		)
	}
}

// lookup walks a nested tree with a dot-separated key. Only string leaves match.
func lookup(tree map[string]any, key string) (string, bool) {
	if tree == nil || key == "" {
		return "", false
	}

	var node any = tree
	for part := range strings.SplitSeq(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		if node, ok = m[part]; !ok {
			return "", false
		}
	}

	s, ok := node.(string)
	return s, ok
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} with params[name]. Unknown names stay as is.
func substitute(tmpl string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := params[match[2:len(match)-1]]; ok {
			return v
		}
		return match
	})
}
