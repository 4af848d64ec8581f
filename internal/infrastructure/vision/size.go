package vision

const (
	// DefaultMaxSide bounds the longest preview side in pixels.
	DefaultMaxSide = 720
	// DefaultQuality is the JPEG quality of previews.
	DefaultQuality = 85
)

// fitWithin scales (w, h) down so that neither side exceeds maxSide.
// Images already small enough keep their size.
func fitWithin(w, h, maxSide int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return w, h
	}
	if w >= h {
		nh := h * maxSide / w
		if nh < 1 {
			nh = 1
		}
		return maxSide, nh
	}
	nw := w * maxSide / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxSide
}
