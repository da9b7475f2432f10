package scroll

import "github.com/jsamuelsen/portfolio/internal/domain"

// SectionFrame is one section's progress and motion.
type SectionFrame struct {
	ID       domain.SectionID `json:"id"`
	Progress float64          `json:"progress"`
	Motion
}

// Frame is the full scroll-derived state for one measurement.
type Frame struct {
	Active       domain.SectionID `json:"active"`
	PageProgress float64          `json:"page_progress"`
	Indicator    float64          `json:"indicator_opacity"`
	Header       Header           `json:"header"`
	Sections     []SectionFrame   `json:"sections"`
}

// Evaluate updates the tracker with m and computes the frame.
// The hero uses StartStart offsets; every other section uses EnterExit.
func Evaluate(t *Tracker, m Measurement, theme domain.Theme) Frame {
	active := t.Update(m)
	page := PageProgress(m.ScrollY, m.ViewportHeight, m.DocumentHeight)

	frame := Frame{
		Active:       active,
		PageProgress: page,
		Indicator:    IndicatorOpacity(page),
		Header:       HeaderState(m.ScrollY, theme),
		Sections:     make([]SectionFrame, 0, len(m.Boxes)),
	}

	for _, b := range m.Boxes {
		sf := SectionFrame{ID: b.ID}
		if b.ID == domain.SectionHero {
			sf.Progress = Progress(StartStart, m.ScrollY, m.ViewportHeight, b)
			sf.Motion = HeroMotion(sf.Progress)
		} else {
			sf.Progress = Progress(EnterExit, m.ScrollY, m.ViewportHeight, b)
			sf.Motion = SectionMotion(sf.Progress)
		}
		frame.Sections = append(frame.Sections, sf)
	}

	return frame
}
