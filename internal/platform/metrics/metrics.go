// Package metrics exposes the portfolio's prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// Contact submission outcomes.
const (
	OutcomeAccepted    = "accepted"
	OutcomeInvalid     = "invalid"
	OutcomeRateLimited = "rate_limited"
	OutcomeFailed      = "failed"
)

// Collector records domain metrics for the portfolio service.
type Collector struct {
	contactSubmissions *prometheus.CounterVec
	scrollFrames       *prometheus.CounterVec
	scrollCoalesced    prometheus.Counter
	themeToggles       *prometheus.CounterVec
	activeSessions     prometheus.Gauge
	streamConnections  prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		contactSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by outcome.",
		}, []string{"outcome"}),
		scrollFrames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scroll_frames_total",
			Help:      "Scroll tracker frames evaluated, by transport.",
		}, []string{"transport"}),
		scrollCoalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scroll_measurements_coalesced_total",
			Help:      "Scroll measurements dropped because a newer one arrived in the same frame.",
		}),
		themeToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "theme_toggles_total",
			Help:      "Theme toggles by resulting theme.",
		}, []string{"theme"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Visitor sessions currently held in memory.",
		}),
		streamConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scroll_stream_connections",
			Help:      "Open scroll stream websocket connections.",
		}),
	}

	reg.MustRegister(
		c.contactSubmissions,
		c.scrollFrames,
		c.scrollCoalesced,
		c.themeToggles,
		c.activeSessions,
		c.streamConnections,
	)

	return c
}

// RecordContactSubmission counts one submission with the given outcome.
func (c *Collector) RecordContactSubmission(outcome string) {
	c.contactSubmissions.WithLabelValues(outcome).Inc()
}

// RecordScrollFrame counts one evaluated frame for a transport ("http" or "stream").
func (c *Collector) RecordScrollFrame(transport string) {
	c.scrollFrames.WithLabelValues(transport).Inc()
}

// RecordCoalesced counts measurements superseded within a frame.
func (c *Collector) RecordCoalesced(n int) {
	if n > 0 {
		c.scrollCoalesced.Add(float64(n))
	}
}

// RecordThemeToggle counts a toggle to theme.
func (c *Collector) RecordThemeToggle(theme string) {
	c.themeToggles.WithLabelValues(theme).Inc()
}

// SessionOpened increments the live session gauge.
func (c *Collector) SessionOpened() { c.activeSessions.Inc() }

// SessionClosed decrements the live session gauge.
func (c *Collector) SessionClosed() { c.activeSessions.Dec() }

// StreamOpened increments the open stream gauge.
func (c *Collector) StreamOpened() { c.streamConnections.Inc() }

// StreamClosed decrements the open stream gauge.
func (c *Collector) StreamClosed() { c.streamConnections.Dec() }

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every measurement. Useful in tests and the export command.
type Nop struct{}

func (Nop) RecordContactSubmission(string) {}
func (Nop) RecordScrollFrame(string)       {}
func (Nop) RecordCoalesced(int)            {}
func (Nop) RecordThemeToggle(string)       {}
func (Nop) SessionOpened()                 {}
func (Nop) SessionClosed()                 {}
func (Nop) StreamOpened()                  {}
func (Nop) StreamClosed()                  {}
