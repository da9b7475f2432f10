package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/jsamuelsen/portfolio/internal/adapters/http/dto"
	"github.com/jsamuelsen/portfolio/internal/adapters/http/views"
	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/domain"
)

// formFailedMessage is shown above the contact form when a valid
// submission could not be recorded.
const formFailedMessage = "Your message could not be sent right now. Please try again later."

// formRateLimitedMessage replaces it when the visitor has sent too many.
const formRateLimitedMessage = "You have sent several messages in a short time. Please wait a moment and try again."

// ContactHandlerConfig contains the contact handler dependencies.
type ContactHandlerConfig struct {
	Contact *app.ContactService
	Pages   *app.PageService
}

// ContactHandler handles the contact form, as an HTML form post and as JSON.
type ContactHandler struct {
	contact *app.ContactService
	pages   *app.PageService
}

// NewContactHandler creates a contact handler.
func NewContactHandler(cfg ContactHandlerConfig) *ContactHandler {
	return &ContactHandler{
		contact: cfg.Contact,
		pages:   cfg.Pages,
	}
}

// SubmitForm handles POST /contact with a urlencoded body.
//
// Page script requests (X-Fragment: 1) get the re-rendered contact section.
// Plain form posts are redirected to the page on success and get the whole
// page, with field errors, on failure.
func (h *ContactHandler) SubmitForm(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	var req dto.ContactRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		dto.HandleError(c, domain.NewValidationError("body", "could not read the form"))
		return
	}

	_, err := h.contact.Submit(c.Request.Context(), app.ContactInput{
		Session:    s,
		Form:       req.ToDomain(),
		RemoteAddr: c.ClientIP(),
	})

	status := http.StatusOK
	var formErrors map[string]string

	if err != nil {
		status, _ = dto.MapDomainError(err)
		dto.SetRetryAfter(c, err)

		switch {
		case domain.IsValidation(err):
			formErrors = dto.FieldErrors(err)
		case domain.IsRateLimited(err):
			formErrors = map[string]string{"form": formRateLimitedMessage}
		default:
			formErrors = map[string]string{"form": formFailedMessage}
		}
	}

	if !wantsFragment(c) {
		if err == nil {
			seeOther(c, "/#"+domain.SectionContact.String())
			return
		}

		page := h.pages.Page(s)
		for i := range page.Sections {
			if page.Sections[i].ID == domain.SectionContact {
				page.Sections[i].Contact.Errors = formErrors
			}
		}

		c.HTML(status, views.PageTemplate, page)

		return
	}

	view, viewErr := h.pages.Section(s, domain.SectionContact.String())
	if viewErr != nil {
		dto.HandleError(c, viewErr)
		return
	}

	view.Contact.Errors = formErrors

	c.HTML(status, views.SectionTemplate, view)
}

// Get handles GET /api/v1/contact.
func (h *ContactHandler) Get(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponse(s.Contact()))
}

// Submit handles POST /api/v1/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	var req dto.ContactRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	state, err := h.contact.Submit(c.Request.Context(), app.ContactInput{
		Session:    s,
		Form:       req.ToDomain(),
		RemoteAddr: c.ClientIP(),
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponse(state))
}
