// Package content loads the portfolio's structured content document.
// Each page section is rendered from a dataset in this document rather than
// from section-specific code.
package content

import "github.com/jsamuelsen/portfolio/internal/domain"

// Document is the whole portfolio content.
type Document struct {
	Profile         Profile         `yaml:"profile"          json:"profile"          validate:"required"`
	Sections        []SectionCopy   `yaml:"sections"         json:"sections"         validate:"required,unique=ID,dive"`
	Stats           []Stat          `yaml:"stats"            json:"stats"            validate:"dive"`
	Experience      []Experience    `yaml:"experience"       json:"experience"       validate:"dive"`
	Education       []Education     `yaml:"education"        json:"education"        validate:"dive"`
	Certifications  []Certification `yaml:"certifications"   json:"certifications"   validate:"dive"`
	SkillCategories []SkillCategory `yaml:"skill_categories" json:"skill_categories" validate:"required,unique=ID,dive"`
	SoftSkills      []SoftSkill     `yaml:"soft_skills"      json:"soft_skills"      validate:"dive"`
	Languages       []Language      `yaml:"languages"        json:"languages"        validate:"dive"`
	Projects        []Project       `yaml:"projects"         json:"projects"         validate:"dive"`
	Contact         ContactBlock    `yaml:"contact"          json:"contact"`
}

// Profile is the owner's identity shown in the hero and about sections.
type Profile struct {
	Name       string `yaml:"name"        json:"name"        validate:"required"`
	Greeting   string `yaml:"greeting"    json:"greeting"`
	Tagline    string `yaml:"tagline"     json:"tagline"`
	Portrait   string `yaml:"portrait"    json:"portrait"`
	AboutImage string `yaml:"about_image" json:"about_image"`
	AboutTitle string `yaml:"about_title" json:"about_title"`
	// About is markdown.
	About     string `yaml:"about"      json:"about"`
	Award     Stat   `yaml:"award"      json:"award"`
	ResumeURL string `yaml:"resume_url" json:"resume_url"`
	Social    []Link `yaml:"social"     json:"social"     validate:"dive"`
}

// SectionCopy is the heading and intro line of one section.
type SectionCopy struct {
	ID      domain.SectionID `yaml:"id"      json:"id"      validate:"required,section"`
	Heading string           `yaml:"heading" json:"heading"`
	Intro   string           `yaml:"intro"   json:"intro"`
}

// Link is an outbound link. URLs are literal strings and are not checked.
// Value is the display text; the label is shown when it is empty.
type Link struct {
	Label string `yaml:"label" json:"label" validate:"required"`
	Value string `yaml:"value" json:"value,omitempty"`
	URL   string `yaml:"url"   json:"url"   validate:"required"`
	Icon  string `yaml:"icon"  json:"icon"`
}

// Text returns the link's display text.
func (l Link) Text() string {
	if l.Value != "" {
		return l.Value
	}
	return l.Label
}

// Stat is a value/label card.
type Stat struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
	Icon  string `yaml:"icon"  json:"icon"`
}

// Experience is one timeline entry.
type Experience struct {
	Title       string `yaml:"title"       json:"title"   validate:"required"`
	Company     string `yaml:"company"     json:"company"`
	Period      string `yaml:"period"      json:"period"`
	Description string `yaml:"description" json:"description"`
}

// Education is one degree.
type Education struct {
	Degree       string   `yaml:"degree"       json:"degree"      validate:"required"`
	Institution  string   `yaml:"institution"  json:"institution"`
	Period       string   `yaml:"period"       json:"period"`
	Description  string   `yaml:"description"  json:"description"`
	Achievements []string `yaml:"achievements" json:"achievements"`
}

// Certification is one certificate.
type Certification struct {
	Title  string `yaml:"title"  json:"title" validate:"required"`
	Issuer string `yaml:"issuer" json:"issuer"`
	Year   string `yaml:"year"   json:"year"`
}

// SkillCategory groups skills under a selectable tab.
type SkillCategory struct {
	ID     string  `yaml:"id"     json:"id"    validate:"required"`
	Label  string  `yaml:"label"  json:"label" validate:"required"`
	Icon   string  `yaml:"icon"   json:"icon"`
	Skills []Skill `yaml:"skills" json:"skills" validate:"dive"`
}

// Skill is a named proficiency rendered as a bar Level percent wide.
type Skill struct {
	Name  string `yaml:"name"  json:"name"  validate:"required"`
	Level int    `yaml:"level" json:"level" validate:"min=0,max=100"`
}

// SoftSkill is an icon card without a level.
type SoftSkill struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	Icon string `yaml:"icon" json:"icon"`
}

// Language is a spoken language with a proficiency bar.
type Language struct {
	Name        string `yaml:"name"        json:"name"        validate:"required"`
	Proficiency string `yaml:"proficiency" json:"proficiency"`
	Level       int    `yaml:"level"       json:"level"       validate:"min=0,max=100"`
}

// Project is a featured project card.
type Project struct {
	Title       string `yaml:"title"       json:"title"    validate:"required"`
	Category    string `yaml:"category"    json:"category"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image"       json:"image"`
	Link        string `yaml:"link"        json:"link"`
}

// ContactBlock is the static half of the contact section.
type ContactBlock struct {
	Items        []Link `yaml:"items"        json:"items"  validate:"dive"`
	Social       []Link `yaml:"social"       json:"social" validate:"dive"`
	Availability string `yaml:"availability" json:"availability"`
}

// Copy returns the heading block for id. Missing sections yield the
// descriptor label as heading.
func (d *Document) Copy(id domain.SectionID) SectionCopy {
	for _, s := range d.Sections {
		if s.ID == id {
			return s
		}
	}

	label := string(id)
	if s, err := domain.LookupSection(id); err == nil {
		label = s.Label
	}
	return SectionCopy{ID: id, Heading: label}
}

// Category returns the skill category with id, or the first category when
// id is unknown.
func (d *Document) Category(id string) (SkillCategory, bool) {
	for _, c := range d.SkillCategories {
		if c.ID == id {
			return c, true
		}
	}
	if len(d.SkillCategories) > 0 {
		return d.SkillCategories[0], false
	}
	return SkillCategory{}, false
}
