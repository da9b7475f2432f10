package scroll

import "sync"

// Coalescer keeps only the newest measurement offered between two takes.
// A stream reader offers every message it receives; the frame ticker takes
// at most one per tick, so the tracker runs once per frame however fast the
// client sends.
type Coalescer struct {
	mu      sync.Mutex
	pending *Measurement
	dropped int
}

// Offer replaces any pending measurement with m.
func (c *Coalescer) Offer(m Measurement) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.dropped++
	}
	c.pending = &m
}

// Take returns the pending measurement and how many earlier ones it
// superseded. ok is false when nothing arrived since the last take.
func (c *Coalescer) Take() (m Measurement, dropped int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return Measurement{}, 0, false
	}

	m, dropped = *c.pending, c.dropped
	c.pending, c.dropped = nil, 0
	return m, dropped, true
}
