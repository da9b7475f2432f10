package app

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/ports"
	"github.com/jsamuelsen/portfolio/internal/scroll"
)

// SessionStoreConfig configures a SessionStore.
type SessionStoreConfig struct {
	IdleTTL         time.Duration
	CleanupInterval time.Duration
	InitialSection  domain.SectionID
	ProbeFraction   float64
	Metrics         ports.SessionMetrics
	Logger          *slog.Logger

	// Now overrides the clock in tests.
	Now func() time.Time
}

// SessionStore maps session IDs to visitor sessions and evicts idle ones.
type SessionStore struct {
	cfg SessionStoreConfig

	mu       sync.RWMutex
	sessions map[string]*Session

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSessionStore creates a store. Call Start to run the eviction loop.
func NewSessionStore(cfg SessionStoreConfig) *SessionStore {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.InitialSection == "" {
		cfg.InitialSection = domain.SectionHero
	}

	return &SessionStore{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Get returns the session for id and marks it as seen.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if ok {
		s.touch(st.cfg.Now())
	}

	return s, ok
}

// Acquire returns the session for id, creating a fresh one when id is
// unknown or empty. created reports whether a new ID was issued.
func (st *SessionStore) Acquire(id string) (s *Session, created bool) {
	if id != "" {
		if s, ok := st.Get(id); ok {
			return s, false
		}
	}

	s = newSession(
		uuid.NewString(),
		scroll.NewTracker(st.cfg.InitialSection, st.cfg.ProbeFraction),
		st.cfg.Now(),
	)

	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()

	if st.cfg.Metrics != nil {
		st.cfg.Metrics.SessionOpened()
	}

	return s, true
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Evict removes sessions idle for longer than the configured TTL and closes
// them. It returns how many were removed.
func (st *SessionStore) Evict() int {
	now := st.cfg.Now()

	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		if s.idleSince(now) > st.cfg.IdleTTL {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.Close()
		if st.cfg.Metrics != nil {
			st.cfg.Metrics.SessionClosed()
		}
	}

	if len(expired) > 0 {
		st.cfg.Logger.Debug("evicted idle sessions", slog.Int("count", len(expired)))
	}

	return len(expired)
}

// Start runs the eviction loop until Stop is called.
func (st *SessionStore) Start() {
	if !st.started.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer close(st.doneCh)

		ticker := time.NewTicker(st.cfg.CleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				st.Evict()
			case <-st.stopCh:
				return
			}
		}
	}()
}

// Stop ends the eviction loop and closes every remaining session.
// It waits for the loop to exit or ctx to end.
func (st *SessionStore) Stop(ctx context.Context) error {
	st.stopOnce.Do(func() { close(st.stopCh) })

	if st.started.Load() {
		select {
		case <-st.doneCh:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	st.mu.Lock()
	remaining := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	for _, s := range remaining {
		s.Close()
		if st.cfg.Metrics != nil {
			st.cfg.Metrics.SessionClosed()
		}
	}

	return nil
}
