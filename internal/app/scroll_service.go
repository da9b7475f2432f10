package app

import (
	"github.com/jsamuelsen/portfolio/internal/platform/metrics"
	"github.com/jsamuelsen/portfolio/internal/ports"
	"github.com/jsamuelsen/portfolio/internal/scroll"
)

// Scroll transports, used as the metrics label.
const (
	TransportHTTP   = "http"
	TransportStream = "stream"
)

// ScrollService evaluates layout measurements against a session's tracker.
type ScrollService struct {
	metrics ports.ScrollMetrics
}

// NewScrollService creates a scroll service. A nil recorder disables metrics.
func NewScrollService(m ports.ScrollMetrics) *ScrollService {
	if m == nil {
		m = metrics.Nop{}
	}
	return &ScrollService{metrics: m}
}

// Evaluate updates the session's active section from m and returns the
// frame to apply. Boxes for unknown sections are dropped.
func (s *ScrollService) Evaluate(sess *Session, m scroll.Measurement, transport string) scroll.Frame {
	m.Boxes = knownBoxes(m.Boxes)

	frame := scroll.Evaluate(sess.Tracker(), m, sess.Theme())
	s.metrics.RecordScrollFrame(transport)

	return frame
}

// Coalesced records measurements dropped in favour of a newer one.
func (s *ScrollService) Coalesced(n int) {
	if n > 0 {
		s.metrics.RecordCoalesced(n)
	}
}

// StreamOpened and StreamClosed track live stream connections.
func (s *ScrollService) StreamOpened() { s.metrics.StreamOpened() }

func (s *ScrollService) StreamClosed() { s.metrics.StreamClosed() }

func knownBoxes(boxes []scroll.Box) []scroll.Box {
	kept := make([]scroll.Box, 0, len(boxes))
	for _, b := range boxes {
		if b.ID.Valid() {
			kept = append(kept, b)
		}
	}
	return kept
}
