package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		middleware gin.HandlerFunc
		header     string
		get        func(*gin.Context) string
		logKey     string
	}{
		{"request id", RequestID(), HeaderRequestID, GetRequestID, "request_id"},
		{"correlation id", CorrelationID(), HeaderCorrelationID, GetCorrelationID, "correlation_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cases := []struct {
				name     string
				incoming string
				keep     bool
			}{
				{"generated when missing", "", false},
				{"passed through", "abc-123", true},
				{"replaced when it has control characters", "abc\r\nX-Injected: 1", false},
				{"replaced when too long", strings.Repeat("a", maxIDLength+1), false},
			}

			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					var buf bytes.Buffer
					base := slog.New(slog.NewJSONHandler(&buf, nil))

					var captured string
					router := gin.New()
					router.Use(func(c *gin.Context) {
						c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), base))
						c.Next()
					}, tt.middleware)
					router.GET("/", func(c *gin.Context) {
						captured = tt.get(c)
						logging.FromContext(c.Request.Context()).Info("hit")
						c.Status(http.StatusOK)
					})

					req := httptest.NewRequest(http.MethodGet, "/", nil)
					if tc.incoming != "" {
						req.Header.Set(tt.header, tc.incoming)
					}
					w := httptest.NewRecorder()
					router.ServeHTTP(w, req)

					require.NotEmpty(t, captured)
					assert.Equal(t, captured, w.Header().Get(tt.header))
					assert.Contains(t, buf.String(), `"`+tt.logKey+`":"`+captured+`"`)

					if tc.keep {
						assert.Equal(t, tc.incoming, captured)
					} else {
						assert.NotEqual(t, tc.incoming, captured)
						assert.Len(t, captured, 36)
					}
				})
			}
		})
	}
}

func TestGetIDs_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
	assert.Empty(t, GetCorrelationID(c))

	c.Set(ContextKeyRequestID, 42)
	assert.Empty(t, GetRequestID(c), "non-string values are ignored")
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		wantLog   bool
		wantLevel string
	}{
		{"logs page", "/?utm=x", http.StatusOK, true, "INFO"},
		{"logs client error as warn", "/sections/blog", http.StatusNotFound, true, "WARN"},
		{"logs server error as error", "/contact", http.StatusServiceUnavailable, true, "ERROR"},
		{"skips operational endpoints", "/-/live", http.StatusOK, false, ""},
		{"skips nested static assets", "/static/css/site.css", http.StatusOK, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.New(slog.NewJSONHandler(&buf, nil))

			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), base))
				c.Next()
			}, Logging([]string{"/-/**", "/static/**", "["}))
			router.NoRoute(func(c *gin.Context) {
				// Fields added after the logging middleware still show up.
				c.Request = c.Request.WithContext(logging.WithSessionID(c.Request.Context(), "sess-9"))
				c.Status(tt.status)
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			out := buf.String()
			if !tt.wantLog {
				assert.Empty(t, out)
				return
			}

			assert.Contains(t, out, "request completed")
			assert.Contains(t, out, `"level":"`+tt.wantLevel+`"`)
			assert.Contains(t, out, `"session_id":"sess-9"`)
		})
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(Recovery(logger))
	router.GET("/panic", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "boom")
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "boom")
}

func TestRecovery_AfterWrite(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(nil))
	router.GET("/partial", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("late")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/partial", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestTimeout_SetsContextDeadline(t *testing.T) {
	var deadline time.Time
	var ok bool

	router := gin.New()
	router.Use(Timeout(50 * time.Millisecond))
	router.GET("/", func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
}

func newTestStore(t *testing.T) *app.SessionStore {
	t.Helper()

	store := app.NewSessionStore(app.SessionStoreConfig{IdleTTL: time.Minute, CleanupInterval: time.Minute})
	t.Cleanup(func() { _ = store.Stop(context.Background()) })

	return store
}

func TestSession(t *testing.T) {
	store := newTestStore(t)

	var seen *app.Session
	router := gin.New()
	router.Use(Session(SessionConfig{Store: store, CookieName: "pf_session"}))
	router.GET("/", func(c *gin.Context) {
		s, ok := GetSession(c)
		require.True(t, ok)
		seen = s
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ThemeCookie, Value: "dark"})
	router.ServeHTTP(w, req)

	require.NotNil(t, seen)
	assert.Equal(t, domain.ThemeDark, seen.Theme(), "a new session adopts the theme cookie")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "pf_session", cookies[0].Name)
	assert.Equal(t, seen.ID(), cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	first := seen

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	router.ServeHTTP(w, req)

	assert.Same(t, first, seen)
	assert.Empty(t, w.Result().Cookies(), "an existing session is not re-issued")
}

func TestGetSession_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetSession(c)
	assert.False(t, ok)
}
