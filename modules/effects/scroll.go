package effects

// Scroll thresholds in CSS pixels.
const (
	HeaderScrollThreshold   = 100
	IndicatorHideThreshold  = 100
	RevealOffset            = 150
	AnchorOffset            = 80
	ScrollToTopThreshold    = 300
	ParallaxFactor          = 0.5
	SlideUpThreshold        = 0.1
	CounterTriggerThreshold = 0.5
)

// HeaderState is how the fixed header looks after a scroll event.
type HeaderState struct {
	// Scrolled switches to the translucent, blurred background.
	Scrolled bool
	// Hidden slides the header out while scrolling down.
	Hidden bool
	// LastScrollTop is the value to pass on the next call.
	LastScrollTop float64
}

// Header computes the header state from the current and previous scroll
// offsets. The returned LastScrollTop is never negative.
func Header(scrollTop, lastScrollTop float64) HeaderState {
	return HeaderState{
		Scrolled:      scrollTop > HeaderScrollThreshold,
		Hidden:        scrollTop > lastScrollTop && scrollTop > HeaderScrollThreshold,
		LastScrollTop: max(scrollTop, 0),
	}
}

func (h HeaderState) Background() string {
	if h.Scrolled {
		return "rgba(255, 255, 255, 0.95)"
	}
	return "#ffffff"
}

func (h HeaderState) BackdropFilter() string {
	if h.Scrolled {
		return "blur(10px)"
	}
	return "none"
}

func (h HeaderState) Transform() string {
	if h.Hidden {
		return "translateY(-100%)"
	}
	return "translateY(0)"
}

// ScrollIndicatorOpacity hides the "scroll down" hint once the page moved.
func ScrollIndicatorOpacity(scrollTop float64) float64 {
	if scrollTop > IndicatorHideThreshold {
		return 0
	}
	return 1
}

// ParallaxOffset is the hero image shift. ok is false once the hero is
// scrolled out of view and the image should keep its last offset.
func ParallaxOffset(scrollTop, viewportHeight float64) (px float64, ok bool) {
	if scrollTop >= viewportHeight {
		return 0, false
	}
	return scrollTop * ParallaxFactor, true
}

// Revealed reports whether an element whose top edge is elementTop pixels
// below the viewport top should fade in.
func Revealed(elementTop, windowHeight float64) bool {
	return elementTop < windowHeight-RevealOffset
}

// SlideUp reports whether an observed card is visible enough to animate.
func SlideUp(intersectionRatio float64) bool {
	return intersectionRatio >= SlideUpThreshold
}

// CountersTriggered reports whether the about section is visible enough to
// start the counters.
func CountersTriggered(intersectionRatio float64) bool {
	return intersectionRatio >= CounterTriggerThreshold
}

// AnchorTarget is the scroll position for an in-page link, leaving room
// for the fixed header.
func AnchorTarget(offsetTop float64) float64 {
	return max(offsetTop-AnchorOffset, 0)
}

// ScrollToTopVisible reports whether the back-to-top button is shown.
func ScrollToTopVisible(scrollTop float64) bool {
	return scrollTop > ScrollToTopThreshold
}
