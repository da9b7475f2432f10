// Package store holds the contact submission recorders.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jsamuelsen/portfolio/internal/domain"
)

// SQLiteRecorder keeps contact submissions in a local sqlite file.
type SQLiteRecorder struct {
	db   *sql.DB
	path string
}

// OpenSQLite creates or opens the submission database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return initialize(ctx, db, path)
}

// OpenSQLiteMemory creates an in-memory database for tests.
func OpenSQLiteMemory(ctx context.Context) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	return initialize(ctx, db, ":memory:")
}

func initialize(ctx context.Context, db *sql.DB, path string) (*SQLiteRecorder, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteRecorder{db: db, path: path}, nil
}

// timeLayout is fixed width so received_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS contact_submissions (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL DEFAULT '',
    remote_addr TEXT NOT NULL DEFAULT '',
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    subject TEXT NOT NULL,
    message TEXT NOT NULL,
    received_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contact_submissions_received ON contact_submissions(received_at);
`

// Name implements ports.SubmissionRecorder.
func (r *SQLiteRecorder) Name() string { return "contact-store" }

// Record implements ports.SubmissionRecorder.
func (r *SQLiteRecorder) Record(ctx context.Context, sub *domain.Submission) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_submissions (id, session_id, remote_addr, name, email, subject, message, received_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.SessionID, sub.RemoteAddr,
		sub.Form.Name, sub.Form.Email, sub.Form.Subject, sub.Form.Message,
		sub.ReceivedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return domain.NewUnavailableError(r.Name(), err.Error())
	}

	return nil
}

// Exists implements ports.SubmissionLookup.
func (r *SQLiteRecorder) Exists(ctx context.Context, id string) (bool, error) {
	var found int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM contact_submissions WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up submission %s: %w", id, err)
	}

	return true, nil
}

// Recent implements ports.SubmissionLister.
func (r *SQLiteRecorder) Recent(ctx context.Context, limit int) ([]domain.Submission, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, remote_addr, name, email, subject, message, received_at
		 FROM contact_submissions ORDER BY received_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		var (
			s        domain.Submission
			received string
		)
		if err := rows.Scan(&s.ID, &s.SessionID, &s.RemoteAddr,
			&s.Form.Name, &s.Form.Email, &s.Form.Subject, &s.Form.Message, &received); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}

		s.ReceivedAt, err = time.Parse(timeLayout, received)
		if err != nil {
			return nil, fmt.Errorf("parsing received_at of %s: %w", s.ID, err)
		}

		subs = append(subs, s)
	}

	return subs, rows.Err()
}

// Check implements ports.HealthChecker.
func (r *SQLiteRecorder) Check(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Path returns the database location.
func (r *SQLiteRecorder) Path() string { return r.path }

// Close closes the database.
func (r *SQLiteRecorder) Close() error { return r.db.Close() }
