package domain

// SectionID identifies one of the page's stacked sections.
type SectionID string

// The page's sections, in document order.
const (
	SectionHero       SectionID = "hero"
	SectionAbout      SectionID = "about"
	SectionExperience SectionID = "experience"
	SectionEducation  SectionID = "education"
	SectionSkills     SectionID = "skills"
	SectionProjects   SectionID = "projects"
	SectionContact    SectionID = "contact"
)

// Section is a navigation descriptor: a stable id and the label shown in the nav.
type Section struct {
	ID    SectionID `json:"id"`
	Label string    `json:"label"`
}

var sections = []Section{
	{ID: SectionHero, Label: "Home"},
	{ID: SectionAbout, Label: "About"},
	{ID: SectionExperience, Label: "Experience"},
	{ID: SectionEducation, Label: "Education"},
	{ID: SectionSkills, Label: "Skills"},
	{ID: SectionProjects, Label: "Projects"},
	{ID: SectionContact, Label: "Contact"},
}

// Sections returns the fixed section list in document order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Valid reports whether id names one of the page's sections.
func (id SectionID) Valid() bool {
	for _, s := range sections {
		if s.ID == id {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (id SectionID) String() string { return string(id) }

// ParseSectionID returns the section id for s or a NotFoundError.
func ParseSectionID(s string) (SectionID, error) {
	id := SectionID(s)
	if !id.Valid() {
		return "", NewNotFoundError("section", s)
	}
	return id, nil
}

// LookupSection returns the descriptor for id.
func LookupSection(id SectionID) (Section, error) {
	for _, s := range sections {
		if s.ID == id {
			return s, nil
		}
	}
	return Section{}, NewNotFoundError("section", string(id))
}
