package dto

import "github.com/jsamuelsen/portfolio/internal/domain"

// ContactRequest is a contact form submission, as JSON or as a urlencoded
// form post. Field rules are enforced by the contact service.
type ContactRequest struct {
	Name    string `json:"name"    form:"name"`
	Email   string `json:"email"   form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// ToDomain converts the request to a domain form.
func (r ContactRequest) ToDomain() domain.ContactForm {
	return domain.ContactForm(r)
}

// ContactResponse is the contact form state.
type ContactResponse struct {
	Submitted bool               `json:"submitted"`
	Form      domain.ContactForm `json:"form"`
}

// NewContactResponse converts session contact state.
func NewContactResponse(state domain.ContactState) ContactResponse {
	return ContactResponse{Submitted: state.Submitted, Form: state.Form}
}

// ThemeResponse carries the current theme.
type ThemeResponse struct {
	Theme domain.Theme `json:"theme"`
}

// MenuResponse carries the mobile menu state.
type MenuResponse struct {
	Open bool `json:"open"`
}

// NavResponse carries the active section after a nav click.
type NavResponse struct {
	Active domain.SectionID `json:"active"`
}
