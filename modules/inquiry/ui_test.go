package inquiry_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/modules/effects"
	"github.com/dmitrymomot/storefront/modules/inquiry"
)

func postSignals(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeSignals(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestHandlersScroll(t *testing.T) {
	t.Parallel()

	srv := newTestHandlers(t, handlersSetup{})

	t.Run("top of page", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, postSignals("/ui/scroll", `{"viewport":{"scrollTop":0,"height":800},"lastScrollTop":0}`))

		got := decodeSignals(t, rec)
		assert.Equal(t, map[string]any{
			"background":     "#ffffff",
			"backdropFilter": "none",
			"transform":      "translateY(0)",
		}, got["header"])
		assert.Equal(t, 1.0, got["indicatorOpacity"])
		assert.Equal(t, "translateY(0px)", got["parallax"])
		assert.Equal(t, false, got["toTop"])
		assert.NotContains(t, got, "startCounters")
	})

	t.Run("scrolling down past the hero", func(t *testing.T) {
		t.Parallel()

		body := `{
			"viewport": {
				"scrollTop": 900, "height": 800,
				"tops": {"servicos": -300, "sobre": 500, "contato": 700},
				"ratios": {"servico-corte": 0.6, "servico-manicure": 0.02},
				"statsRatio": 0.7
			},
			"lastScrollTop": 850,
			"menuOpen": false
		}`
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, postSignals("/ui/scroll", body))

		got := decodeSignals(t, rec)
		assert.Equal(t, map[string]any{
			"background":     "rgba(255, 255, 255, 0.95)",
			"backdropFilter": "blur(10px)",
			"transform":      "translateY(-100%)",
		}, got["header"])
		assert.Equal(t, 900.0, got["lastScrollTop"])
		assert.Equal(t, 0.0, got["indicatorOpacity"])
		assert.NotContains(t, got, "parallax", "hero out of view keeps its last offset")
		assert.Equal(t, true, got["toTop"])
		assert.Equal(t, map[string]any{"servicos": true, "sobre": true}, got["revealed"])
		assert.Equal(t, map[string]any{"servico-corte": true}, got["slidUp"])
		assert.Equal(t, true, got["startCounters"])
	})

	t.Run("datastar gets a signal patch", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, dataStar(postSignals("/ui/scroll", `{"viewport":{"scrollTop":150,"height":800},"lastScrollTop":300}`)))

		body := rec.Body.String()
		assert.Contains(t, body, "datastar-patch-signals")
		assert.Contains(t, body, `"translateY(75px)"`)
		assert.Contains(t, body, `"transform":"translateY(0)"`, "scrolling up shows the header")
	})

	t.Run("rejects form bodies", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, postForm("/ui/scroll", nil))
		assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
	})
}

func TestHandlersMenu(t *testing.T) {
	t.Parallel()

	srv := newTestHandlers(t, handlersSetup{})

	tests := []struct {
		name   string
		event  string
		body   string
		want   map[string]any
		status int
	}{
		{name: "toggle opens", event: "toggle", body: `{"menuOpen":false}`, want: map[string]any{"menuOpen": true}},
		{name: "toggle closes", event: "toggle", body: `{"menuOpen":true}`, want: map[string]any{"menuOpen": false}},
		{name: "outside click closes", event: "outside_click", body: `{"menuOpen":true}`, want: map[string]any{"menuOpen": false}},
		{
			name:  "link scrolls below the header",
			event: "link_clicked",
			body:  `{"menuOpen":true,"anchorTop":1200}`,
			want:  map[string]any{"menuOpen": false, "scrollTarget": 1120.0},
		},
		{
			name:  "link near the top clamps",
			event: "link_clicked",
			body:  `{"menuOpen":false,"anchorTop":30}`,
			want:  map[string]any{"menuOpen": false, "scrollTarget": 0.0},
		},
		{name: "unknown event", event: "swipe", body: `{"menuOpen":true}`, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, postSignals("/ui/menu/"+tt.event, tt.body))

			if tt.status != 0 {
				assert.Equal(t, tt.status, rec.Code)
				return
			}
			assert.Equal(t, tt.want, decodeSignals(t, rec))
		})
	}
}

func TestHandlersPageEffects(t *testing.T) {
	t.Parallel()

	t.Run("initial state", func(t *testing.T) {
		t.Parallel()

		srv := newTestHandlers(t, handlersSetup{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `style="background: #ffffff; backdrop-filter: none; transform: translateY(0)"`)
		assert.Contains(t, body, `id="hamburger" class="hamburger"`)
		assert.Contains(t, body, `id="nav-menu" class="nav-menu"`)
		assert.Contains(t, body, `&#34;menuOpen&#34;:false`)
		assert.Contains(t, body, `&#34;scrollTarget&#34;:-1`)
		assert.Contains(t, body, `style="opacity: 1"`)
		assert.Contains(t, body, `id="servico-corte"`)
		assert.Contains(t, body, "@post(&#39;/ui/scroll&#39;)")
		assert.Contains(t, body, "@post(&#39;/ui/menu/toggle&#39;)")
		assert.NotContains(t, body, "<img", "no hero image configured")
	})

	t.Run("lazy hero image", func(t *testing.T) {
		t.Parallel()

		srv := newTestHandlers(t, handlersSetup{cfg: inquiry.Config{HeroImage: "/static/hero.jpg"}})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		body := rec.Body.String()
		assert.Contains(t, body, `<img class="lazy" src="data:image/gif;base64,`)
		assert.Contains(t, body, `data-src="/static/hero.jpg"`)
		assert.Contains(t, body, `<noscript><img src="/static/hero.jpg"`)
	})

	t.Run("page params", func(t *testing.T) {
		t.Parallel()

		var got inquiry.PageParams
		srv := newTestHandlers(t, handlersSetup{
			cfg: inquiry.Config{HeroImage: "/static/hero.jpg"},
			views: func(v *inquiry.Views) {
				page := v.Page
				v.Page = func(p inquiry.PageParams) templ.Component {
					got = p
					return page(p)
				}
			},
		})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, englishPage())
		require.Equal(t, http.StatusOK, rec.Code)

		require.NotEmpty(t, got.Services)
		assert.Equal(t, inquiry.ServiceChoice{ID: "corte", Name: "Haircut", Duration: 45 * time.Minute}, got.Services[0])
		assert.Equal(t, got.Services, got.Booking.Services)

		assert.Equal(t, effects.MenuView{}, got.Effects.Menu)
		assert.Equal(t, effects.HeaderState{}, got.Effects.State.Header)
		assert.True(t, got.Effects.Hero.Lazy)
		assert.Equal(t, "/static/hero.jpg", got.Effects.Hero.Load().Src)
	})
}

func englishPage() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en")
	return req
}
