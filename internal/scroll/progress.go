package scroll

// Offsets selects which edges of the target and the viewport bound a
// section's progress range.
type Offsets int

const (
	// EnterExit runs from the target's top meeting the viewport bottom to the
	// target's bottom meeting the viewport top.
	EnterExit Offsets = iota
	// StartStart runs from the target's top meeting the viewport top to the
	// target's bottom meeting the viewport top.
	StartStart
)

// Progress returns how far the box has moved through its range, in [0,1].
func Progress(o Offsets, scrollY, viewportHeight float64, b Box) float64 {
	switch o {
	case StartStart:
		return ratio(scrollY, b.Top, b.Bottom())
	default:
		return ratio(scrollY, b.Top-viewportHeight, b.Bottom())
	}
}

// PageProgress returns the scroll position as a fraction of the scrollable
// distance. A page that does not scroll reports 0.
func PageProgress(scrollY, viewportHeight, documentHeight float64) float64 {
	return ratio(scrollY, 0, documentHeight-viewportHeight)
}

// ratio maps v from [start,end] onto [0,1], clamped. An empty range is a
// step: 0 up to start and 1 past it.
func ratio(v, start, end float64) float64 {
	if end <= start {
		if v <= start {
			return 0
		}
		return 1
	}
	return clamp01((v - start) / (end - start))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
