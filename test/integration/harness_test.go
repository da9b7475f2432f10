//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	adapthttp "github.com/jsamuelsen/portfolio/internal/adapters/http"
	"github.com/jsamuelsen/portfolio/internal/adapters/http/handlers"
	"github.com/jsamuelsen/portfolio/internal/adapters/http/views"
	"github.com/jsamuelsen/portfolio/internal/adapters/ratelimit"
	"github.com/jsamuelsen/portfolio/internal/adapters/store"
	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/content"
	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/platform/config"
	"github.com/jsamuelsen/portfolio/internal/platform/metrics"
	"github.com/jsamuelsen/portfolio/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stack is a fully wired portfolio running on an httptest server.
type stack struct {
	server   *httptest.Server
	sessions *app.SessionStore
	db       *store.SQLiteRecorder
	registry *prometheus.Registry
}

// testConfig returns a configuration suited to fast in-process runs.
func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "portfolio-it", Version: "test", Environment: "test"},
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			RequestTimeout:  5 * time.Second,
			MaxRequestSize:  1 << 16,
		},
		Log: config.LogConfig{Level: "info", Format: "json", SkipPaths: []string{"/-/**", "/static/**"}},
		Scroll: config.ScrollConfig{
			ProbeFraction:   config.DefaultProbeFraction,
			FrameInterval:   5 * time.Millisecond,
			InitialSection:  "hero",
			MaxMessageBytes: 16 << 10,
		},
		Contact: config.ContactConfig{
			SubmittedWindow: 200 * time.Millisecond,
			RateLimit:       config.RateLimitConfig{PerMinute: 600, Burst: 100, CleanupInterval: time.Minute},
		},
		Session: config.SessionConfig{
			CookieName:      "pf_session",
			IdleTTL:         time.Minute,
			CleanupInterval: time.Minute,
		},
	}
}

// newStack wires the service the way the serve command does, over a private
// metrics registry.
func newStack(t *testing.T, cfg *config.Config) *stack {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	doc, err := content.Load(cfg.Content.Path)
	require.NoError(t, err)

	healthRegistry := ports.NewHealthRegistry()
	require.NoError(t, healthRegistry.Register(ports.CheckerFunc("content", func(context.Context) error {
		return content.Validate(doc)
	})))

	s := &stack{registry: reg}

	recorders := []ports.SubmissionRecorder{}
	if cfg.Contact.Store.Enabled {
		s.db, err = store.OpenSQLite(context.Background(), cfg.Contact.Store.Path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.db.Close() })

		require.NoError(t, healthRegistry.Register(s.db))
		recorders = append(recorders, s.db)
	}
	recorders = append(recorders, store.NewLogRecorder(logger))

	s.sessions = app.NewSessionStore(app.SessionStoreConfig{
		IdleTTL:         cfg.Session.IdleTTL,
		CleanupInterval: cfg.Session.CleanupInterval,
		InitialSection:  domain.SectionID(cfg.Scroll.InitialSection),
		ProbeFraction:   cfg.Scroll.ProbeFraction,
		Metrics:         collector,
		Logger:          logger,
	})
	s.sessions.Start()
	t.Cleanup(func() { _ = s.sessions.Stop(context.Background()) })

	limiter := ratelimit.New(ratelimit.Config{
		PerMinute:       cfg.Contact.RateLimit.PerMinute,
		Burst:           cfg.Contact.RateLimit.Burst,
		CleanupInterval: cfg.Contact.RateLimit.CleanupInterval,
	})
	t.Cleanup(limiter.Stop)

	pages := app.NewPageService(app.PageServiceConfig{Document: doc, Metrics: collector, Logger: logger})
	contact := app.NewContactService(app.ContactServiceConfig{
		Recorders:       recorders,
		Limiter:         limiter,
		Metrics:         collector,
		SubmittedWindow: cfg.Contact.SubmittedWindow,
		Logger:          logger,
	})

	renderer, err := views.New()
	require.NoError(t, err)

	scrollHandler := handlers.NewScrollHandler(handlers.ScrollHandlerConfig{
		Scroll:          app.NewScrollService(collector),
		FrameInterval:   cfg.Scroll.FrameInterval,
		MaxMessageBytes: cfg.Scroll.MaxMessageBytes,
		WriteTimeout:    cfg.Server.WriteTimeout,
	})

	engine := gin.New()
	adapthttp.SetupRouter(engine, adapthttp.RouterConfig{
		Logger:        logger,
		Config:        cfg,
		Renderer:      renderer,
		Sessions:      s.sessions,
		HealthHandler: handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo("test", "it", ""), reg),
		PageHandler:   handlers.NewPageHandler(handlers.PageHandlerConfig{Pages: pages}),
		ContactHandler: handlers.NewContactHandler(handlers.ContactHandlerConfig{
			Contact: contact,
			Pages:   pages,
		}),
		ScrollHandler: scrollHandler,
	})

	s.server = httptest.NewServer(engine)
	s.server.Config.RegisterOnShutdown(scrollHandler.Close)
	t.Cleanup(func() {
		scrollHandler.Close()
		s.server.Close()
	})

	return s
}

// newVisitor returns a client that keeps its own session cookie and does not
// follow redirects.
func newVisitor(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// send issues a request and returns the status and body.
func send(t *testing.T, client *http.Client, method, url, contentType, body string) (int, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	require.NoError(t, err)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if contentType == "application/json" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(data)
}

// measurement builds a scroll measurement JSON body over the built-in
// section layout, with every section 800px tall.
func measurement(scrollY float64) string {
	var b strings.Builder

	b.WriteString(`{"scroll_y":`)
	b.WriteString(formatFloat(scrollY))
	b.WriteString(`,"viewport_height":800,"document_height":`)
	b.WriteString(formatFloat(float64(len(domain.Sections())) * 800))
	b.WriteString(`,"boxes":[`)

	for i, s := range domain.Sections() {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"id":"` + s.ID.String() + `","top":` + formatFloat(float64(i)*800) + `,"height":800}`)
	}

	b.WriteString("]}")

	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
