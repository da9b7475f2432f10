// Package ratelimit limits contact submissions per client with token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config configures per-client limits.
type Config struct {
	PerMinute       float64
	Burst           int
	CleanupInterval time.Duration

	// Now overrides the clock in tests.
	Now func() time.Time
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter applies a token bucket per client key. It implements
// ports.SubmissionLimiter.
type Limiter struct {
	cfg   Config
	limit rate.Limit

	mu      sync.Mutex
	clients map[string]*clientLimiter

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New creates a limiter and starts its cleanup loop.
func New(cfg Config) *Limiter {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	l := &Limiter{
		cfg:     cfg,
		limit:   rate.Limit(cfg.PerMinute / 60.0),
		clients: make(map[string]*clientLimiter),
		stopCh:  make(chan struct{}),
	}

	go l.cleanupLoop()

	return l
}

// Stop ends the cleanup loop.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// Allow takes a token for key. When none is available it reports how long
// until one is, without consuming it.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	return l.allow(key, l.cfg.Now())
}

// Len returns how many clients are tracked.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *Limiter) allow(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.cfg.Burst)}
		l.clients[key] = cl
	}
	cl.lastAccess = now
	l.mu.Unlock()

	r := cl.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Minute
	}

	delay := r.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}

	r.CancelAt(now)

	return false, delay
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup(l.cfg.Now())
		case <-l.stopCh:
			return
		}
	}
}

// cleanup drops clients idle for two cleanup intervals.
func (l *Limiter) cleanup(now time.Time) {
	ttl := l.cfg.CleanupInterval * 2

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, cl := range l.clients {
		if now.Sub(cl.lastAccess) > ttl {
			delete(l.clients, key)
		}
	}
}
