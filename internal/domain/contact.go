package domain

import "time"

// ContactForm holds the four contact fields a visitor fills in.
type ContactForm struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"required,max=300"`
	Message string `json:"message" validate:"required,max=10000"`
}

// IsZero reports whether every field is empty.
func (f ContactForm) IsZero() bool {
	return f == ContactForm{}
}

// ContactState is the contact form as a visitor's session sees it.
// Submitted is true for a short window after a successful submission,
// during which the fields are empty.
type ContactState struct {
	Form      ContactForm `json:"form"`
	Submitted bool        `json:"submitted"`
}

// Submission is a recorded contact message. Nothing is delivered anywhere.
type Submission struct {
	ID         string
	SessionID  string
	RemoteAddr string
	Form       ContactForm
	ReceivedAt time.Time
}
