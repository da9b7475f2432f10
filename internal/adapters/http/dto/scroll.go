package dto

import (
	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/scroll"
)

// MeasurementRequest is one layout measurement sent by the browser. At most
// 32 boxes are accepted.
type MeasurementRequest struct {
	ScrollY        float64      `json:"scroll_y"`
	ViewportHeight float64      `json:"viewport_height" validate:"gt=0"`
	DocumentHeight float64      `json:"document_height" validate:"gte=0"`
	Boxes          []BoxRequest `json:"boxes"           validate:"max=32,dive"`
}

// BoxRequest is one section's measured layout box.
type BoxRequest struct {
	ID     domain.SectionID `json:"id"     validate:"required"`
	Top    float64          `json:"top"`
	Height float64          `json:"height" validate:"gte=0"`
}

// ToDomain converts the request to a tracker measurement.
func (r MeasurementRequest) ToDomain() scroll.Measurement {
	boxes := make([]scroll.Box, 0, len(r.Boxes))
	for _, b := range r.Boxes {
		boxes = append(boxes, scroll.Box{ID: b.ID, Top: b.Top, Height: b.Height})
	}

	return scroll.Measurement{
		ScrollY:        r.ScrollY,
		ViewportHeight: r.ViewportHeight,
		DocumentHeight: r.DocumentHeight,
		Boxes:          boxes,
	}
}

// Stream message types.
const (
	StreamTypeFrame = "frame"
	StreamTypeError = "error"
)

// StreamMessage is one server-to-client message on the scroll stream.
type StreamMessage struct {
	Type  string        `json:"type"`
	Frame *scroll.Frame `json:"frame,omitempty"`
	Error *ErrorDetail  `json:"error,omitempty"`
}

// NewFrameMessage wraps a frame.
func NewFrameMessage(f scroll.Frame) StreamMessage {
	return StreamMessage{Type: StreamTypeFrame, Frame: &f}
}

// NewStreamError wraps an error for the stream. The connection stays open.
func NewStreamError(code, message string, details map[string]string) StreamMessage {
	return StreamMessage{
		Type:  StreamTypeError,
		Error: &ErrorDetail{Code: code, Message: message, Details: details},
	}
}

// SectionResponse is a section descriptor.
type SectionResponse struct {
	ID    domain.SectionID `json:"id"`
	Label string           `json:"label"`
}

// NewSectionsResponse lists the section descriptors in page order.
func NewSectionsResponse() []SectionResponse {
	sections := domain.Sections()
	out := make([]SectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, SectionResponse{ID: s.ID, Label: s.Label})
	}

	return out
}
