// Package export writes the portfolio as a static site: the rendered page,
// one fragment per section, the content document, and the embedded assets.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jsamuelsen/portfolio/internal/adapters/http/views"
	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/content"
	"github.com/jsamuelsen/portfolio/internal/domain"
)

// DefaultConcurrency bounds the number of files rendered at once.
const DefaultConcurrency = 4

// Config contains the exporter dependencies.
type Config struct {
	Pages    *app.PageService
	Renderer *views.Renderer
	Theme    domain.Theme

	// Exclude skips static assets matching any of these doublestar
	// patterns, relative to the static root (e.g. "img/**").
	Exclude []string

	Concurrency int
	Logger      *slog.Logger
	Tracer      trace.Tracer
}

// Exporter renders the site into a directory.
type Exporter struct {
	cfg Config
}

// New creates an exporter.
func New(cfg Config) (*Exporter, error) {
	for _, p := range cfg.Exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Tracer == nil {
		cfg.Tracer = noop.NewTracerProvider().Tracer("")
	}

	if cfg.Theme == "" {
		cfg.Theme = domain.DefaultTheme
	}

	return &Exporter{cfg: cfg}, nil
}

// file is one output, relative to the export root.
type file struct {
	path   string
	render func() ([]byte, error)
}

// Export writes the site under dir and returns the written paths, relative
// to dir, in a stable order.
func (e *Exporter) Export(ctx context.Context, dir string) ([]string, error) {
	ctx, span := e.cfg.Tracer.Start(ctx, "export")
	defer span.End()

	start := time.Now()

	files, err := e.plan()
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("export.files", len(files)))

	jobs := make([]func(context.Context) (string, error), 0, len(files))
	for _, f := range files {
		jobs = append(jobs, func(ctx context.Context) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}

			return f.path, write(dir, f)
		})
	}

	written, err := app.ParallelLimit(ctx, e.cfg.Concurrency, jobs...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("exporting to %s: %w", dir, err)
	}

	e.cfg.Logger.Info("site exported",
		slog.String("dir", dir),
		slog.Int("files", len(written)),
		slog.Duration("duration", time.Since(start)),
	)

	return written, nil
}

// plan lists every output file. Rendering happens when the file is written.
func (e *Exporter) plan() ([]file, error) {
	// A throwaway session gives the page its initial state.
	sessions := app.NewSessionStore(app.SessionStoreConfig{
		IdleTTL:         time.Minute,
		CleanupInterval: time.Minute,
		Logger:          e.cfg.Logger,
	})
	defer func() { _ = sessions.Stop(context.Background()) }()

	visitor, _ := sessions.Acquire("")
	visitor.SetTheme(e.cfg.Theme)

	page := e.cfg.Pages.Page(visitor).AsStatic()

	files := []file{
		{path: "index.html", render: func() ([]byte, error) {
			var buf bytes.Buffer
			err := e.cfg.Renderer.Page(&buf, page)
			return buf.Bytes(), err
		}},
		{path: "content.yaml", render: func() ([]byte, error) {
			return content.Marshal(e.cfg.Pages.Document())
		}},
	}

	for _, s := range page.Sections {
		files = append(files, file{
			path: filepath.Join("sections", s.ID.String()+".html"),
			render: func() ([]byte, error) {
				var buf bytes.Buffer
				err := e.cfg.Renderer.Section(&buf, s)
				return buf.Bytes(), err
			},
		})
	}

	static := views.Static()

	err := fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		if e.excluded(path) {
			return nil
		}

		files = append(files, file{
			path:   filepath.Join("static", filepath.FromSlash(path)),
			render: func() ([]byte, error) { return fs.ReadFile(static, path) },
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing static assets: %w", err)
	}

	return files, nil
}

func (e *Exporter) excluded(path string) bool {
	for _, p := range e.cfg.Exclude {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}

	return false
}

func write(dir string, f file) error {
	data, err := f.render()
	if err != nil {
		return fmt.Errorf("rendering %s: %w", f.path, err)
	}

	out := filepath.Join(dir, f.path)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.path, err)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil { //nolint:gosec // static site files are world-readable
		return fmt.Errorf("writing %s: %w", f.path, err)
	}

	return nil
}
