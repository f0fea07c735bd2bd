package inquiry

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/modules/effects"
	"github.com/dmitrymomot/storefront/pkg/statemachine"
)

// placeholderImage is a transparent 1x1 GIF shown until a lazy image loads.
const placeholderImage = "data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7"

// ViewportSignals is what the page measures on scroll.
type ViewportSignals struct {
	ScrollTop  float64            `json:"scrollTop"`
	Height     float64            `json:"height"`
	Tops       map[string]float64 `json:"tops"`
	Ratios     map[string]float64 `json:"ratios"`
	StatsRatio float64            `json:"statsRatio"`
}

// ScrollSignals is posted to /ui/scroll. LastScrollTop is the value the
// previous response returned.
type ScrollSignals struct {
	Viewport      ViewportSignals `json:"viewport"`
	LastScrollTop float64         `json:"lastScrollTop"`
}

// MenuSignals is posted to /ui/menu/{event}. AnchorTop is the offset of the
// link target when the event is link_clicked.
type MenuSignals struct {
	Event     string  `path:"event" json:"-"`
	MenuOpen  bool    `json:"menuOpen"`
	AnchorTop float64 `json:"anchorTop"`
}

// PageEffects is the server-computed look of the page before any scroll.
type PageEffects struct {
	State effects.PageState
	Menu  effects.MenuView
	Hero  effects.LazyImage
	// Signals seeds the page's DataStar store.
	Signals map[string]any
}

// SlideID is the element id of a service card.
func SlideID(serviceID string) string {
	return "servico-" + serviceID
}

func (h *Handlers) scroll(_ handler.Context, req ScrollSignals) handler.Response {
	st := effects.Page(effects.Viewport{
		ScrollTop:     req.Viewport.ScrollTop,
		LastScrollTop: req.LastScrollTop,
		Height:        req.Viewport.Height,
		Tops:          req.Viewport.Tops,
		Ratios:        req.Viewport.Ratios,
		StatsRatio:    req.Viewport.StatsRatio,
	})
	return handler.Signals(scrollSignals(st))
}

func (h *Handlers) menu(ctx handler.Context, req MenuSignals) handler.Response {
	m := effects.RestoreMenu(effects.MenuView{Open: req.MenuOpen})
	event := statemachine.StringEvent(req.Event)

	view, err := m.Handle(ctx, event)
	if errors.Is(err, effects.ErrUnknownMenuEvent) {
		return handler.Error(handler.ErrNotFound)
	}

	signals := map[string]any{"menuOpen": view.Open}
	if event == effects.MenuLinkClicked {
		signals["scrollTarget"] = effects.AnchorTarget(req.AnchorTop)
	}
	return handler.Signals(signals)
}

// pageEffects renders the page as it looks at the top, menu closed.
func (h *Handlers) pageEffects() PageEffects {
	st := effects.Page(effects.Viewport{})
	menu := effects.NewMenu().View()

	signals := scrollSignals(st)
	signals["parallax"] = ""
	signals["startCounters"] = st.StartCounters
	signals["menuOpen"] = menu.Open
	signals["anchorTop"] = 0
	signals["scrollTarget"] = -1
	signals["viewport"] = ViewportSignals{Tops: map[string]float64{}, Ratios: map[string]float64{}}

	hero := effects.LazyImage{Src: h.cfg.HeroImage}
	if h.cfg.HeroImage != "" {
		hero = effects.LazyImage{Src: placeholderImage, DataSrc: h.cfg.HeroImage, Lazy: true}
	}

	return PageEffects{State: st, Menu: menu, Hero: hero, Signals: signals}
}

// scrollSignals maps a page state onto the signals the markup binds to.
// Keys below their threshold are left out so revealed elements stay put.
func scrollSignals(st effects.PageState) map[string]any {
	signals := map[string]any{
		"lastScrollTop": st.Header.LastScrollTop,
		"header": map[string]string{
			"background":     st.Header.Background(),
			"backdropFilter": st.Header.BackdropFilter(),
			"transform":      st.Header.Transform(),
		},
		"indicatorOpacity": st.IndicatorOpacity,
		"toTop":            st.ScrollToTop,
		"revealed":         flags(st.Revealed),
		"slidUp":           flags(st.SlidUp),
	}
	if st.ParallaxOK {
		signals["parallax"] = fmt.Sprintf("translateY(%gpx)", st.Parallax)
	}
	if st.StartCounters {
		signals["startCounters"] = true
	}
	return signals
}

func flags(keys []string) map[string]bool {
	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		out[k] = true
	}
	return out
}
