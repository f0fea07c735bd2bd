package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/i18n"
)

var locales = fstest.MapFS{
	"pt-BR.yaml": {Data: []byte(`
pt-BR:
  validation:
    required: "%{field} é obrigatório"
  booking:
    sent: "Obrigado, %{name}!"
  nested:
    only_map:
      a: "x"
`)},
	"en.yml": {Data: []byte(`
en:
  validation:
    required: "%{field} is required"
    email: "Invalid email"
`)},
	"README.md": {Data: []byte("ignored")},
}

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(), locales, i18n.WithDefaultLanguage("pt-BR"))
	require.NoError(t, err)
	return tr
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	tests := []struct {
		name string
		lang string
		key  string
		args []string
		want string
	}{
		{name: "direct", lang: "en", key: "validation.required", args: []string{"field", "Name"}, want: "Name is required"},
		{name: "default language fallback", lang: "en", key: "booking.sent", args: []string{"name", "Ana"}, want: "Obrigado, Ana!"},
		{name: "unknown language", lang: "fr", key: "validation.required", args: []string{"field", "Nome"}, want: "Nome é obrigatório"},
		{name: "missing key returns key", lang: "en", key: "nope.never", want: "nope.never"},
		{name: "map leaf is not a translation", lang: "pt-BR", key: "nested.only_map", want: "nested.only_map"},
		{name: "unknown placeholder kept", lang: "en", key: "validation.required", want: "%{field} is required"},
		{name: "odd args ignored", lang: "en", key: "validation.required", args: []string{"field", "E-mail", "dangling"}, want: "E-mail is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tr.T(tt.lang, tt.key, tt.args...))
		})
	}
}

func TestTranslator_TmAndContext(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	assert.Equal(t, "42 is required", tr.Tm("en", "validation.required", map[string]any{"field": 42}))

	ctx := i18n.WithLanguage(context.Background(), "en")
	assert.Equal(t, "Invalid email", tr.Tc(ctx, "validation.email"))
	assert.Equal(t, "validation.email", tr.Tc(context.Background(), "validation.email"))

	assert.Equal(t, []string{"pt-BR", "en"}, tr.Languages())
	assert.True(t, tr.Has("en", "validation.email"))
	assert.False(t, tr.Has("pt-BR", "validation.email"))
}

func TestNewTranslator_Errors(t *testing.T) {
	t.Parallel()

	_, err := i18n.NewTranslator(context.Background(), fstest.MapFS{})
	assert.ErrorIs(t, err, i18n.ErrNoTranslations)

	_, err = i18n.NewTranslator(context.Background(), fstest.MapFS{"x.yaml": {Data: []byte("en: [1, 2]")}})
	assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)

	_, err = i18n.NewTranslator(context.Background(), locales, i18n.WithDefaultLanguage("de"))
	assert.ErrorIs(t, err, i18n.ErrLanguageNotSupported)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = i18n.NewTranslator(ctx, locales)
	assert.ErrorIs(t, err, i18n.ErrLoadingCancelled)
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	m := i18n.NewMatcher("pt-BR", "en", "not a tag!")
	assert.Equal(t, []string{"pt-BR", "en"}, m.Supported())

	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "", want: "pt-BR", ok: false},
		{header: "en-US,en;q=0.9", want: "en", ok: true},
		{header: "pt-PT;q=0.8, de;q=0.9", want: "pt-BR", ok: true},
		{header: "en;q=0.2, pt-BR;q=0.9", want: "pt-BR", ok: true},
	}
	for _, tt := range tests {
		got, ok := m.MatchAcceptLanguage(tt.header)
		assert.Equal(t, tt.want, got, tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
	}

	got, ok := m.Match("EN")
	assert.True(t, ok)
	assert.Equal(t, "en", got)

	_, ok = m.Match("<script>")
	assert.False(t, ok)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	m := i18n.NewMatcher("pt-BR", "en")
	var got string
	h := i18n.Middleware(m, i18n.WithPersistedChoice("lang", "lang", 24*time.Hour))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.LanguageFromContext(r.Context(), "")
	}))

	tests := []struct {
		name   string
		target string
		cookie string
		accept string
		want   string
	}{
		{name: "fallback", target: "/", want: "pt-BR"},
		{name: "accept header", target: "/", accept: "en-GB", want: "en"},
		{name: "cookie beats header", target: "/", cookie: "pt-BR", accept: "en", want: "pt-BR"},
		{name: "query beats cookie", target: "/?lang=en", cookie: "pt-BR", want: "en"},
		{name: "unsupported query ignored", target: "/?lang=xx", accept: "en", want: "en"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.target, nil)
		if tt.cookie != "" {
			req.AddCookie(&http.Cookie{Name: "lang", Value: tt.cookie})
		}
		if tt.accept != "" {
			req.Header.Set("Accept-Language", tt.accept)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, tt.want, got, tt.name)
		assert.Equal(t, tt.want, rec.Header().Get("Content-Language"), tt.name)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "en", cookies[0].Value)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	_, ok := i18n.LoggerExtractor()(context.Background())
	assert.False(t, ok)

	attr, ok := i18n.LoggerExtractor()(i18n.WithLanguage(context.Background(), "en"))
	require.True(t, ok)
	assert.Equal(t, "en", attr.Value.String())
}
