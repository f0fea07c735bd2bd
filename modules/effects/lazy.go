package effects

// LazyImage is an image whose real source waits in DataSrc until it
// scrolls into view.
type LazyImage struct {
	Src     string
	DataSrc string
	Lazy    bool
}

// Load swaps in the deferred source and drops the lazy marker. Images
// without a deferred source are returned unchanged.
func (img LazyImage) Load() LazyImage {
	if img.DataSrc == "" {
		return img
	}
	img.Src = img.DataSrc
	img.Lazy = false
	return img
}

// Loaded reports whether the image shows its real source.
func (img LazyImage) Loaded() bool {
	return !img.Lazy && (img.DataSrc == "" || img.Src == img.DataSrc)
}
