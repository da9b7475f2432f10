package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/portfolio/internal/adapters/http/middleware"
	"github.com/jsamuelsen/portfolio/internal/adapters/http/views"
	"github.com/jsamuelsen/portfolio/internal/adapters/store"
	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/content"
	"github.com/jsamuelsen/portfolio/internal/ports"
)

const testCookie = "pf_session"

// testApp wires the page, contact, and scroll handlers behind the session
// middleware the way the router does.
type testApp struct {
	engine  *gin.Engine
	store   *app.SessionStore
	pages   *app.PageService
	scroll  *ScrollHandler
	session *app.Session
}

func newTestApp(t *testing.T, recorders ...ports.SubmissionRecorder) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if len(recorders) == 0 {
		recorders = []ports.SubmissionRecorder{store.NewLogRecorder(logger)}
	}

	doc, err := content.Default()
	require.NoError(t, err)

	renderer, err := views.New()
	require.NoError(t, err)

	sessions := app.NewSessionStore(app.SessionStoreConfig{
		IdleTTL:         time.Minute,
		CleanupInterval: time.Minute,
		Logger:          logger,
	})
	t.Cleanup(func() { _ = sessions.Stop(context.Background()) })

	pages := app.NewPageService(app.PageServiceConfig{Document: doc, Logger: logger})
	contact := app.NewContactService(app.ContactServiceConfig{
		Recorders:       recorders,
		SubmittedWindow: time.Minute,
		Logger:          logger,
	})

	scrollHandler := NewScrollHandler(ScrollHandlerConfig{
		Scroll:        app.NewScrollService(nil),
		FrameInterval: 5 * time.Millisecond,
	})
	t.Cleanup(scrollHandler.Close)

	engine := gin.New()
	engine.SetHTMLTemplate(renderer.Template())
	engine.Use(middleware.Session(middleware.SessionConfig{
		Store:      sessions,
		CookieName: testCookie,
		MaxAge:     time.Hour,
	}))

	pageHandler := NewPageHandler(PageHandlerConfig{Pages: pages})
	contactHandler := NewContactHandler(ContactHandlerConfig{Contact: contact, Pages: pages})

	pageHandler.RegisterRoutes(engine)
	engine.POST("/contact", contactHandler.SubmitForm)

	api := engine.Group("/api/v1")
	pageHandler.RegisterAPIRoutes(api)
	scrollHandler.RegisterAPIRoutes(api)
	scrollHandler.RegisterStreamRoute(api)
	api.GET("/contact", contactHandler.Get)
	api.POST("/contact", contactHandler.Submit)

	s, _ := sessions.Acquire("")

	return &testApp{
		engine:  engine,
		store:   sessions,
		pages:   pages,
		scroll:  scrollHandler,
		session: s,
	}
}

// do sends a request carrying the fixture session's cookie.
func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	req.AddCookie(&http.Cookie{Name: testCookie, Value: a.session.ID()})

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	return a.do(req)
}

func (a *testApp) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return a.do(req)
}
