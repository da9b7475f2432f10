package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/portfolio/internal/adapters/http/dto"
	"github.com/jsamuelsen/portfolio/internal/adapters/http/middleware"
	"github.com/jsamuelsen/portfolio/internal/adapters/http/views"
	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/domain"
)

// DefaultThemeCookieMaxAge keeps the theme cookie for a year.
const DefaultThemeCookieMaxAge = 365 * 24 * time.Hour

// PageHandlerConfig contains the page handler dependencies.
type PageHandlerConfig struct {
	Pages             *app.PageService
	ThemeCookieMaxAge time.Duration
	SecureCookies     bool
}

// PageHandler serves the page, its section fragments, and the visitor's
// UI actions (theme, menu, nav, skills tab).
type PageHandler struct {
	pages        *app.PageService
	cookieMaxAge time.Duration
	secure       bool
}

// NewPageHandler creates a page handler.
func NewPageHandler(cfg PageHandlerConfig) *PageHandler {
	if cfg.ThemeCookieMaxAge <= 0 {
		cfg.ThemeCookieMaxAge = DefaultThemeCookieMaxAge
	}

	return &PageHandler{
		pages:        cfg.Pages,
		cookieMaxAge: cfg.ThemeCookieMaxAge,
		secure:       cfg.SecureCookies,
	}
}

// Index handles GET /.
func (h *PageHandler) Index(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, views.PageTemplate, h.pages.Page(s))
}

// Section handles GET /sections/:id and renders one section fragment.
func (h *PageHandler) Section(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	view, err := h.pages.Section(s, c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, views.SectionTemplate, view)
}

// ToggleTheme handles POST /theme/toggle. Scripts asking for JSON get the
// new theme; plain form posts are redirected back to the page.
func (h *PageHandler) ToggleTheme(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	theme := h.toggleTheme(c, s)

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.ThemeResponse{Theme: theme})
		return
	}

	seeOther(c, "/")
}

// Theme handles GET /api/v1/theme.
func (h *PageHandler) Theme(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ThemeResponse{Theme: s.Theme()})
}

// ToggleThemeAPI handles POST /api/v1/theme/toggle.
func (h *PageHandler) ToggleThemeAPI(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ThemeResponse{Theme: h.toggleTheme(c, s)})
}

func (h *PageHandler) toggleTheme(c *gin.Context, s *app.Session) domain.Theme {
	theme := h.pages.ToggleTheme(s)
	middleware.SetCookie(c, middleware.ThemeCookie, theme.String(), h.cookieMaxAge, h.secure)

	return theme
}

// ToggleMenu handles POST /nav/menu.
func (h *PageHandler) ToggleMenu(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	open := s.ToggleMenu()

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.MenuResponse{Open: open})
		return
	}

	seeOther(c, "/")
}

// Navigate handles POST /nav/:id, a click on a nav link. The section
// becomes active and the mobile menu closes.
func (h *PageHandler) Navigate(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	id, err := h.pages.Navigate(s, c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.NavResponse{Active: id})
		return
	}

	seeOther(c, "/#"+id.String())
}

// SelectSkills handles POST /skills/:category.
func (h *PageHandler) SelectSkills(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	if _, err := h.pages.SelectSkillCategory(s, c.Param("category")); err != nil {
		dto.HandleError(c, err)
		return
	}

	if !wantsFragment(c) {
		seeOther(c, "/#"+domain.SectionSkills.String())
		return
	}

	view, err := h.pages.Section(s, domain.SectionSkills.String())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, views.SectionTemplate, view)
}

// Sections handles GET /api/v1/sections.
func (h *PageHandler) Sections(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSectionsResponse())
}

// Content handles GET /api/v1/content and returns the whole content document.
func (h *PageHandler) Content(c *gin.Context) {
	c.JSON(http.StatusOK, h.pages.Document())
}

// RegisterRoutes registers the page routes on the engine root.
func (h *PageHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/", h.Index)
	rg.GET("/sections/:id", h.Section)
	rg.POST("/theme/toggle", h.ToggleTheme)
	rg.POST("/nav/menu", h.ToggleMenu)
	rg.POST("/nav/:id", h.Navigate)
	rg.POST("/skills/:category", h.SelectSkills)
}

// RegisterAPIRoutes registers the JSON routes on the /api/v1 group.
func (h *PageHandler) RegisterAPIRoutes(rg gin.IRoutes) {
	rg.GET("/sections", h.Sections)
	rg.GET("/content", h.Content)
	rg.GET("/theme", h.Theme)
	rg.POST("/theme/toggle", h.ToggleThemeAPI)
}
