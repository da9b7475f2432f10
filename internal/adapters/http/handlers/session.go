package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/portfolio/internal/adapters/http/dto"
	"github.com/jsamuelsen/portfolio/internal/adapters/http/middleware"
	"github.com/jsamuelsen/portfolio/internal/app"
)

// HeaderFragment marks requests from the page script that want a section
// fragment instead of a full page or redirect.
const HeaderFragment = "X-Fragment"

var errNoSession = errors.New("visitor session missing from request")

// visitor returns the request's session. Without one the request fails with 500;
// it only happens when the session middleware is not installed.
func visitor(c *gin.Context) (*app.Session, bool) {
	s, ok := middleware.GetSession(c)
	if !ok {
		dto.HandleError(c, errNoSession)
		return nil, false
	}

	return s, true
}

func wantsFragment(c *gin.Context) bool {
	return c.GetHeader(HeaderFragment) == "1"
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// seeOther sends a no-script form post back to the page.
func seeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
