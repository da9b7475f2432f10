package store

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/platform/logging"
)

// LogRecorder writes each submission to the structured log. The logger's
// redaction hides the email address; the rest is logged as received.
type LogRecorder struct {
	logger *slog.Logger
}

// NewLogRecorder creates a recorder. A nil logger uses the request logger.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

// Name implements ports.SubmissionRecorder.
func (r *LogRecorder) Name() string { return "log" }

// Record implements ports.SubmissionRecorder. It never fails.
func (r *LogRecorder) Record(ctx context.Context, sub *domain.Submission) error {
	logger := r.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	logger.InfoContext(ctx, "contact submission received",
		slog.String("submission_id", sub.ID),
		slog.String("session_id", sub.SessionID),
		slog.String("from", sub.Form.Name),
		slog.String("email", sub.Form.Email),
		slog.String("subject", sub.Form.Subject),
		slog.Int("message_length", len(sub.Form.Message)),
		slog.Time("received_at", sub.ReceivedAt),
	)

	return nil
}
