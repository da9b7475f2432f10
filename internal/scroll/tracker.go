package scroll

import (
	"sync"

	"github.com/jsamuelsen/portfolio/internal/domain"
)

// DefaultProbeFraction places the probe a third of the way down the viewport.
const DefaultProbeFraction = 1.0 / 3.0

// Probe returns the document y coordinate used to pick the active section.
func Probe(scrollY, viewportHeight, fraction float64) float64 {
	return scrollY + viewportHeight*fraction
}

// Active returns the id of the first box, in list order, containing probe.
// When no box contains it, prev is returned unchanged.
func Active(prev domain.SectionID, probe float64, boxes []Box) domain.SectionID {
	for _, b := range boxes {
		if b.Contains(probe) {
			return b.ID
		}
	}
	return prev
}

// Tracker remembers the last active section between measurements.
// It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	active   domain.SectionID
	fraction float64
}

// NewTracker creates a tracker starting at initial. A fraction outside (0,1)
// falls back to DefaultProbeFraction.
func NewTracker(initial domain.SectionID, fraction float64) *Tracker {
	if fraction <= 0 || fraction >= 1 {
		fraction = DefaultProbeFraction
	}
	return &Tracker{active: initial, fraction: fraction}
}

// Update applies a measurement and returns the resulting active section.
func (t *Tracker) Update(m Measurement) domain.SectionID {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = Active(t.active, Probe(m.ScrollY, m.ViewportHeight, t.fraction), m.Boxes)
	return t.active
}

// Active returns the current active section.
func (t *Tracker) Active() domain.SectionID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Set forces the active section, as a nav click does before the smooth
// scroll lands.
func (t *Tracker) Set(id domain.SectionID) {
	t.mu.Lock()
	t.active = id
	t.mu.Unlock()
}
