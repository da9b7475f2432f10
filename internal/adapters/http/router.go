package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/portfolio/internal/adapters/http/dto"
	"github.com/jsamuelsen/portfolio/internal/adapters/http/handlers"
	"github.com/jsamuelsen/portfolio/internal/adapters/http/middleware"
	"github.com/jsamuelsen/portfolio/internal/adapters/http/views"
	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/platform/config"
	"github.com/jsamuelsen/portfolio/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for page and API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for panics and request logging.
	Logger *slog.Logger

	// Config is the loaded service configuration.
	Config *config.Config

	// Renderer holds the parsed page templates.
	Renderer *views.Renderer

	// Sessions maps visitor cookies to sessions.
	Sessions *app.SessionStore

	HealthHandler  *handlers.HealthHandler
	PageHandler    *handlers.PageHandler
	ContactHandler *handlers.ContactHandler
	ScrollHandler  *handlers.ScrollHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Global middleware runs in this order:
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing, then HTTP metrics
//  5. Security headers
//  6. Logging - request logging (skips configured paths)
//
// Route groups:
//   - /-/ (internal): health, build, and metrics; no session
//   - /static/: embedded CSS, JS, and images; no session
//   - / (page): the page, fragments, and form posts; session and timeout
//   - /api/v1/ (JSON): session and timeout, except the scroll stream
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.Config.App.Name),
		telemetry.Middleware(),
		middleware.SecurityHeaders(),
		middleware.Logging(cfg.Config.Log.SkipPaths),
	)

	if cfg.Renderer != nil {
		engine.SetHTMLTemplate(cfg.Renderer.Template())
	}

	engine.NoRoute(func(c *gin.Context) {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "route not found")
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	engine.StaticFS("/static", http.FS(views.Static()))

	if cfg.Sessions == nil {
		return
	}

	site := engine.Group("")
	site.Use(middleware.Session(middleware.SessionConfig{
		Store:      cfg.Sessions,
		CookieName: cfg.Config.Session.CookieName,
		MaxAge:     cfg.Config.Session.IdleTTL,
		Secure:     cfg.Config.Session.Secure,
	}))

	timeout := cfg.Config.Server.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	pages := site.Group("")
	pages.Use(middleware.Timeout(timeout))

	apiV1 := site.Group("/api/v1")

	// The stream outlives any request timeout.
	if cfg.ScrollHandler != nil {
		cfg.ScrollHandler.RegisterStreamRoute(apiV1)
	}

	api := apiV1.Group("")
	api.Use(middleware.Timeout(timeout))

	setupPageRoutes(pages, api, cfg)
}

func setupPageRoutes(pages, api *gin.RouterGroup, cfg RouterConfig) {
	if cfg.PageHandler != nil {
		cfg.PageHandler.RegisterRoutes(pages)
		cfg.PageHandler.RegisterAPIRoutes(api)
	}

	if cfg.ScrollHandler != nil {
		cfg.ScrollHandler.RegisterAPIRoutes(api)
	}

	if cfg.ContactHandler != nil {
		pages.POST("/contact", cfg.ContactHandler.SubmitForm)
		api.GET("/contact", cfg.ContactHandler.Get)
		api.POST("/contact", cfg.ContactHandler.Submit)
	}
}
