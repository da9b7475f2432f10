package app

import (
	"sync"
	"time"

	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/scroll"
)

// DefaultSkillCategory is the skills tab shown before the visitor picks one.
const DefaultSkillCategory = "business"

// Session is one visitor's UI state. All methods are safe for concurrent use.
type Session struct {
	id      string
	tracker *scroll.Tracker

	mu            sync.Mutex
	theme         domain.Theme
	menuOpen      bool
	skillCategory string
	contact       domain.ContactState
	resetTimer    *time.Timer
	lastSeen      time.Time
	closed        bool
}

func newSession(id string, tracker *scroll.Tracker, now time.Time) *Session {
	return &Session{
		id:            id,
		tracker:       tracker,
		theme:         domain.DefaultTheme,
		skillCategory: DefaultSkillCategory,
		lastSeen:      now,
	}
}

// ID returns the session identifier carried in the visitor's cookie.
func (s *Session) ID() string { return s.id }

// Tracker returns the session's scroll tracker.
func (s *Session) Tracker() *scroll.Tracker { return s.tracker }

// Theme returns the current theme.
func (s *Session) Theme() domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme replaces the theme, e.g. from the visitor's theme cookie.
func (s *Session) SetTheme(theme domain.Theme) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
}

// ToggleTheme flips the theme and returns the new value.
func (s *Session) ToggleTheme() domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = s.theme.Toggle()
	return s.theme
}

// MenuOpen reports whether the mobile menu is open.
func (s *Session) MenuOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menuOpen
}

// ToggleMenu flips the mobile menu and returns the new state.
func (s *Session) ToggleMenu() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuOpen = !s.menuOpen
	return s.menuOpen
}

// Navigate marks id active and closes the menu, as a nav click does.
func (s *Session) Navigate(id domain.SectionID) {
	s.tracker.Set(id)

	s.mu.Lock()
	s.menuOpen = false
	s.mu.Unlock()
}

// SkillCategory returns the selected skills tab.
func (s *Session) SkillCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skillCategory
}

// SelectSkillCategory switches the skills tab.
func (s *Session) SelectSkillCategory(id string) {
	s.mu.Lock()
	s.skillCategory = id
	s.mu.Unlock()
}

// Contact returns a copy of the contact form state.
func (s *Session) Contact() domain.ContactState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contact
}

// SaveDraft keeps what the visitor typed, e.g. when a submit is rejected.
func (s *Session) SaveDraft(form domain.ContactForm) {
	s.mu.Lock()
	s.contact.Form = form
	s.mu.Unlock()
}

// markSubmitted clears the form and raises the submitted flag for window.
// A second submission inside the window restarts it. After Close no timer
// is started.
func (s *Session) markSubmitted(window time.Duration) domain.ContactState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contact = domain.ContactState{Submitted: true}

	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}

	if s.closed {
		return s.contact
	}

	var timer *time.Timer
	timer = time.AfterFunc(window, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		// A newer submission replaced this timer.
		if s.resetTimer != timer {
			return
		}

		s.contact.Submitted = false
		s.resetTimer = nil
	})
	s.resetTimer = timer

	return s.contact
}

// resetPending reports whether a submitted-window timer is running.
func (s *Session) resetPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetTimer != nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Close stops the pending contact reset. The session stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}
