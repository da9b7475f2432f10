// Package ports defines the interfaces the application layer depends on.
// Adapters implement them. Methods take a context first and speak domain types.
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/portfolio/internal/domain"
)

// SubmissionRecorder keeps a contact submission somewhere local.
// Nothing implementing it delivers the message to a person.
type SubmissionRecorder interface {
	// Name identifies the recorder in logs and errors.
	Name() string

	// Record stores the submission. A failure should be reported as
	// domain.ErrUnavailable so callers can answer 503.
	Record(ctx context.Context, sub *domain.Submission) error
}

// SubmissionLookup is implemented by recorders that can read a record back.
// The contact pipeline uses it to verify a write.
type SubmissionLookup interface {
	// Exists reports whether a submission with the given ID was recorded.
	Exists(ctx context.Context, id string) (bool, error)
}

// SubmissionLister is implemented by recorders that can list past submissions.
type SubmissionLister interface {
	// Recent returns up to limit submissions, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Submission, error)
}

// SubmissionLimiter caps how often one client may submit the contact form.
type SubmissionLimiter interface {
	// Allow takes one submission from key's allowance. When none is left it
	// returns false and how long until the next one.
	Allow(key string) (bool, time.Duration)
}

// ContactMetrics records contact form outcomes.
type ContactMetrics interface {
	RecordContactSubmission(outcome string)
}

// SessionMetrics tracks visitor sessions and the interactions they drive.
type SessionMetrics interface {
	SessionOpened()
	SessionClosed()
	RecordThemeToggle(theme string)
}

// ScrollMetrics records tracker evaluations.
type ScrollMetrics interface {
	RecordScrollFrame(transport string)
	RecordCoalesced(n int)
	StreamOpened()
	StreamClosed()
}
