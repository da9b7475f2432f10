package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/portfolio/internal/adapters/http/dto"
	"github.com/jsamuelsen/portfolio/internal/domain"
)

func TestPageHandler_Index(t *testing.T) {
	a := newTestApp(t)

	w := a.get("/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `<section id="hero"`)
	assert.Contains(t, w.Body.String(), `<section id="contact"`)
}

func TestPageHandler_Index_NewVisitorGetsCookie(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.NotEqual(t, a.session.ID(), session.Value)
	assert.Contains(t, w.Body.String(), `class="dark"`)
}

func TestPageHandler_Section(t *testing.T) {
	a := newTestApp(t)

	t.Run("known section", func(t *testing.T) {
		w := a.get("/sections/skills")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<section id="skills"`)
		assert.NotContains(t, w.Body.String(), "<!DOCTYPE html>")
	})

	t.Run("unknown section", func(t *testing.T) {
		w := a.get("/sections/blog")

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeNotFound, resp.Error.Code)
	})
}

func TestPageHandler_ToggleTheme(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		a := newTestApp(t)

		w := a.postJSON("/theme/toggle", "")

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.ThemeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, domain.ThemeDark, resp.Theme)
		assert.Equal(t, domain.ThemeDark, a.session.Theme())

		var theme *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == "theme" {
				theme = c
			}
		}
		require.NotNil(t, theme)
		assert.Equal(t, "dark", theme.Value)
	})

	t.Run("form post redirects", func(t *testing.T) {
		a := newTestApp(t)

		w := a.postForm("/theme/toggle", "")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Equal(t, domain.ThemeDark, a.session.Theme())
	})

	t.Run("toggles back", func(t *testing.T) {
		a := newTestApp(t)

		a.postJSON("/api/v1/theme/toggle", "")
		w := a.postJSON("/api/v1/theme/toggle", "")

		var resp dto.ThemeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, domain.ThemeLight, resp.Theme)
	})
}

func TestPageHandler_Theme(t *testing.T) {
	a := newTestApp(t)
	a.session.ToggleTheme()

	w := a.get("/api/v1/theme")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"theme":"dark"}`, w.Body.String())
}

func TestPageHandler_ToggleMenu(t *testing.T) {
	a := newTestApp(t)

	w := a.postJSON("/nav/menu", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"open":true}`, w.Body.String())

	w = a.postForm("/nav/menu", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.False(t, a.session.MenuOpen())
}

func TestPageHandler_Navigate(t *testing.T) {
	t.Run("closes the menu and activates the section", func(t *testing.T) {
		a := newTestApp(t)
		a.session.ToggleMenu()

		w := a.postJSON("/nav/projects", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"active":"projects"}`, w.Body.String())
		assert.False(t, a.session.MenuOpen())
		assert.Equal(t, domain.SectionProjects, a.session.Tracker().Active())
	})

	t.Run("form post redirects to the anchor", func(t *testing.T) {
		a := newTestApp(t)

		w := a.postForm("/nav/education", "")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/#education", w.Header().Get("Location"))
	})

	t.Run("unknown section", func(t *testing.T) {
		a := newTestApp(t)

		w := a.postJSON("/nav/blog", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, domain.SectionHero, a.session.Tracker().Active())
	})
}

func TestPageHandler_SelectSkills(t *testing.T) {
	t.Run("fragment", func(t *testing.T) {
		a := newTestApp(t)

		w := a.postForm("/skills/technical", "", HeaderFragment, "1")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<section id="skills"`)
		assert.Contains(t, w.Body.String(), `data-panel="technical"`)
		assert.NotContains(t, w.Body.String(), `data-panel="business"`)
		assert.Equal(t, "technical", a.session.SkillCategory())
	})

	t.Run("form post redirects", func(t *testing.T) {
		a := newTestApp(t)

		w := a.postForm("/skills/leadership", "")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/#skills", w.Header().Get("Location"))
		assert.Equal(t, "leadership", a.session.SkillCategory())
	})

	t.Run("unknown category keeps the selection", func(t *testing.T) {
		a := newTestApp(t)
		before := a.session.SkillCategory()

		w := a.postForm("/skills/cooking", "", HeaderFragment, "1")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, before, a.session.SkillCategory())
	})
}

func TestPageHandler_Sections(t *testing.T) {
	a := newTestApp(t)

	w := a.get("/api/v1/sections")

	require.Equal(t, http.StatusOK, w.Code)

	var resp []dto.SectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, len(domain.Sections()))
	assert.Equal(t, domain.SectionHero, resp[0].ID)
	assert.Equal(t, domain.SectionContact, resp[len(resp)-1].ID)
}

func TestPageHandler_Content(t *testing.T) {
	a := newTestApp(t)

	w := a.get("/api/v1/content")

	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.NotEmpty(t, doc)
}

func TestVisitor_NoSession(t *testing.T) {
	h := NewPageHandler(PageHandlerConfig{Pages: newTestApp(t).pages})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/theme", nil)

	h.Theme(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
