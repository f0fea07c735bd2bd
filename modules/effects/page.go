package effects

import (
	"maps"
	"slices"
)

// Viewport is what the browser reports after a scroll: its offsets, the
// window height and, per observed element, the element's top edge or its
// intersection ratio.
type Viewport struct {
	ScrollTop     float64
	LastScrollTop float64
	Height        float64

	// Tops maps reveal targets to their top edge relative to the viewport.
	Tops map[string]float64
	// Ratios maps slide-up cards to their intersection ratio.
	Ratios map[string]float64
	// StatsRatio is the intersection ratio of the about section.
	StatsRatio float64
}

// PageState is every scroll-driven effect for one viewport.
type PageState struct {
	Header           HeaderState
	IndicatorOpacity float64
	// Parallax is only meaningful when ParallaxOK is set.
	Parallax      float64
	ParallaxOK    bool
	ScrollToTop   bool
	Revealed      []string
	SlidUp        []string
	StartCounters bool
}

// Page evaluates all scroll effects at once. Revealed and SlidUp list the
// keys that crossed their threshold, sorted. Elements never un-reveal, so
// a key missing from the lists keeps whatever the page shows.
func Page(v Viewport) PageState {
	st := PageState{
		Header:           Header(v.ScrollTop, v.LastScrollTop),
		IndicatorOpacity: ScrollIndicatorOpacity(v.ScrollTop),
		ScrollToTop:      ScrollToTopVisible(v.ScrollTop),
		StartCounters:    CountersTriggered(v.StatsRatio),
	}
	st.Parallax, st.ParallaxOK = ParallaxOffset(v.ScrollTop, v.Height)

	for _, key := range slices.Sorted(maps.Keys(v.Tops)) {
		if Revealed(v.Tops[key], v.Height) {
			st.Revealed = append(st.Revealed, key)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(v.Ratios)) {
		if SlideUp(v.Ratios[key]) {
			st.SlidUp = append(st.SlidUp, key)
		}
	}
	return st
}
