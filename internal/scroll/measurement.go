// Package scroll computes the page's scroll-linked state: which section is
// active, how far each section has travelled through the viewport, and the
// cosmetic transforms derived from those ratios. Everything here is pure
// computation over a layout measurement and never fails.
package scroll

import "github.com/jsamuelsen/portfolio/internal/domain"

// Box is the measured layout box of one section, in document coordinates.
// The box covers [Top, Top+Height).
type Box struct {
	ID     domain.SectionID `json:"id"`
	Top    float64          `json:"top"`
	Height float64          `json:"height"`
}

// Bottom returns the exclusive bottom edge of the box.
func (b Box) Bottom() float64 {
	return b.Top + b.Height
}

// Contains reports whether y lies inside the box.
func (b Box) Contains(y float64) bool {
	return b.Top <= y && y < b.Bottom()
}

// Measurement is one client-side layout snapshot. Boxes lists the sections
// present in the layout in document order; absent sections are omitted.
type Measurement struct {
	ScrollY        float64 `json:"scroll_y"`
	ViewportHeight float64 `json:"viewport_height"`
	DocumentHeight float64 `json:"document_height"`
	Boxes          []Box   `json:"boxes"`
}

// Box returns the measured box for id, if present.
func (m Measurement) Box(id domain.SectionID) (Box, bool) {
	for _, b := range m.Boxes {
		if b.ID == id {
			return b, true
		}
	}
	return Box{}, false
}
