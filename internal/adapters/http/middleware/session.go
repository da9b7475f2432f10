package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/platform/logging"
)

const (
	// ContextKeySession is the gin context key for the visitor session.
	ContextKeySession = "session"

	// ThemeCookie mirrors the theme so a reload keeps it.
	ThemeCookie = "theme"
)

// SessionConfig configures the session middleware.
type SessionConfig struct {
	Store      *app.SessionStore
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Session returns middleware that attaches the visitor's session, creating
// one and setting its cookie on first visit. A new session takes its theme
// from the theme cookie.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cfg.CookieName)

		s, created := cfg.Store.Acquire(id)
		if created {
			if raw, err := c.Cookie(ThemeCookie); err == nil {
				s.SetTheme(domain.ParseTheme(raw))
			}

			SetCookie(c, cfg.CookieName, s.ID(), cfg.MaxAge, cfg.Secure)
		}

		c.Set(ContextKeySession, s)
		c.Request = c.Request.WithContext(logging.WithSessionID(c.Request.Context(), s.ID()))

		c.Next()
	}
}

// GetSession returns the visitor session attached by Session.
func GetSession(c *gin.Context) (*app.Session, bool) {
	v, ok := c.Get(ContextKeySession)
	if !ok {
		return nil, false
	}

	s, ok := v.(*app.Session)

	return s, ok
}

// SetCookie writes a lax, HTTP-only, path-wide cookie.
func SetCookie(c *gin.Context, name, value string, maxAge time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(maxAge.Seconds()), "/", "", secure, true)
}
