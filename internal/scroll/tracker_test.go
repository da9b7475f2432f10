package scroll

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/portfolio/internal/domain"
)

// layout stacks the seven sections with a gap after experience.
func layout() []Box {
	return []Box{
		{ID: domain.SectionHero, Top: 0, Height: 900},
		{ID: domain.SectionAbout, Top: 900, Height: 1200},
		{ID: domain.SectionExperience, Top: 2100, Height: 800},
		// 2900..3000 is a gap
		{ID: domain.SectionEducation, Top: 3000, Height: 1000},
		{ID: domain.SectionSkills, Top: 4000, Height: 1400},
		{ID: domain.SectionProjects, Top: 5400, Height: 1100},
		{ID: domain.SectionContact, Top: 6500, Height: 1000},
	}
}

func TestProbe(t *testing.T) {
	assert.InDelta(t, 1300.0, Probe(1000, 900, DefaultProbeFraction), 1e-9)
	assert.InDelta(t, 0.0, Probe(0, 0, DefaultProbeFraction), 1e-9)
}

func TestActive_ProbeInsideOneBox(t *testing.T) {
	tests := []struct {
		probe float64
		want  domain.SectionID
	}{
		{0, domain.SectionHero},
		{899.9, domain.SectionHero},
		{900, domain.SectionAbout}, // top is inclusive
		{2899, domain.SectionExperience},
		{3000, domain.SectionEducation},
		{7499, domain.SectionContact},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Active(domain.SectionHero, tt.probe, layout()), "probe %v", tt.probe)
	}
}

func TestActive_GapRetainsPrevious(t *testing.T) {
	for _, prev := range []domain.SectionID{domain.SectionExperience, domain.SectionHero, domain.SectionContact} {
		assert.Equal(t, prev, Active(prev, 2950, layout()))
	}

	// bottom is exclusive, so the bottom edge of the last box is a gap too
	assert.Equal(t, domain.SectionSkills, Active(domain.SectionSkills, 7500, layout()))
}

func TestActive_FirstMatchWinsOnOverlap(t *testing.T) {
	boxes := []Box{
		{ID: domain.SectionAbout, Top: 0, Height: 100},
		{ID: domain.SectionSkills, Top: 50, Height: 100},
	}

	assert.Equal(t, domain.SectionAbout, Active(domain.SectionHero, 75, boxes))
}

func TestActive_MissingBoxesAreSkipped(t *testing.T) {
	boxes := []Box{
		{ID: domain.SectionHero, Top: 0, Height: 900},
		{ID: domain.SectionContact, Top: 2000, Height: 900},
	}

	assert.Equal(t, domain.SectionHero, Active(domain.SectionHero, 1500, boxes))
	assert.Equal(t, domain.SectionContact, Active(domain.SectionHero, 2100, boxes))
	assert.Equal(t, domain.SectionAbout, Active(domain.SectionAbout, 100, nil))
}

func TestTracker_Update(t *testing.T) {
	tr := NewTracker(domain.SectionHero, DefaultProbeFraction)
	assert.Equal(t, domain.SectionHero, tr.Active())

	// probe = 2000 + 900/3 = 2300 -> experience
	got := tr.Update(Measurement{ScrollY: 2000, ViewportHeight: 900, Boxes: layout()})
	assert.Equal(t, domain.SectionExperience, got)

	// probe = 2650 + 300 = 2950 -> gap, keeps experience
	got = tr.Update(Measurement{ScrollY: 2650, ViewportHeight: 900, Boxes: layout()})
	assert.Equal(t, domain.SectionExperience, got)
	assert.Equal(t, domain.SectionExperience, tr.Active())
}

func TestTracker_Set(t *testing.T) {
	tr := NewTracker(domain.SectionHero, DefaultProbeFraction)
	tr.Set(domain.SectionProjects)

	assert.Equal(t, domain.SectionProjects, tr.Active())
}

func TestNewTracker_InvalidFractionFallsBack(t *testing.T) {
	for _, f := range []float64{0, 1, -2, 4} {
		tr := NewTracker(domain.SectionHero, f)
		assert.InDelta(t, DefaultProbeFraction, tr.fraction, 1e-12)
	}
}

func TestTracker_ConcurrentUpdates(t *testing.T) {
	tr := NewTracker(domain.SectionHero, DefaultProbeFraction)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(y float64) {
			defer wg.Done()
			tr.Update(Measurement{ScrollY: y, ViewportHeight: 900, Boxes: layout()})
		}(float64(i * 100))
	}
	wg.Wait()

	assert.True(t, tr.Active().Valid())
}
