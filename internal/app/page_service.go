package app

import (
	"html/template"
	"log/slog"
	"time"

	"github.com/jsamuelsen/portfolio/internal/content"
	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/platform/metrics"
	"github.com/jsamuelsen/portfolio/internal/ports"
	"github.com/jsamuelsen/portfolio/internal/scroll"
)

// PageServiceConfig contains the page service dependencies.
type PageServiceConfig struct {
	Document *content.Document
	Markdown *content.Markdown
	Metrics  ports.SessionMetrics
	Logger   *slog.Logger
}

// PageService turns the content document and a visitor session into the
// view models the templates render, and applies the visitor's UI actions.
type PageService struct {
	doc     *content.Document
	about   template.HTML
	metrics ports.SessionMetrics
	logger  *slog.Logger
}

// NewPageService creates a page service. The about text is rendered from
// markdown once, here.
func NewPageService(cfg PageServiceConfig) *PageService {
	if cfg.Document == nil {
		panic("app: page service needs a content document")
	}

	if cfg.Markdown == nil {
		cfg.Markdown = content.NewMarkdown()
	}

	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop{}
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &PageService{
		doc:     cfg.Document,
		about:   cfg.Markdown.Render(cfg.Document.Profile.About),
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
}

// Document returns the content document.
func (p *PageService) Document() *content.Document { return p.doc }

// NavItem is one navigation link.
type NavItem struct {
	ID     domain.SectionID
	Label  string
	Href   string
	Active bool
}

// SkillTab is one selectable skills category.
type SkillTab struct {
	ID       string
	Label    string
	Icon     string
	Selected bool
}

// SkillsView is the skills section's selectable state.
type SkillsView struct {
	Tabs     []SkillTab
	Selected content.SkillCategory
}

// ContactView is the contact form as rendered.
type ContactView struct {
	State  domain.ContactState
	Errors map[string]string
}

// SectionView is everything the section template needs for one section.
type SectionView struct {
	ID      domain.SectionID
	Copy    content.SectionCopy
	Doc     *content.Document
	About   template.HTML
	Skills  SkillsView
	Contact ContactView
	Static  bool
}

// PageView is the whole page.
type PageView struct {
	Profile  content.Profile
	Theme    domain.Theme
	MenuOpen bool
	Active   domain.SectionID
	Nav      []NavItem
	Header   scroll.Header
	Sections []SectionView
	Year     int
	// Static is set when the page is exported and has no server behind it.
	Static bool
}

// AsStatic marks the page and its sections for export: forms are replaced
// by their static fallbacks and the client does not contact the server.
func (v PageView) AsStatic() PageView {
	v.Static = true

	sections := make([]SectionView, len(v.Sections))
	for i, s := range v.Sections {
		s.Static = true
		sections[i] = s
	}
	v.Sections = sections

	return v
}

// Nav returns the navigation links with the session's active section marked.
func (p *PageService) Nav(s *Session) []NavItem {
	active := s.Tracker().Active()

	descriptors := domain.Sections()
	items := make([]NavItem, 0, len(descriptors))
	for _, d := range descriptors {
		items = append(items, NavItem{
			ID:     d.ID,
			Label:  d.Label,
			Href:   "#" + string(d.ID),
			Active: d.ID == active,
		})
	}

	return items
}

// Page builds the full page for s.
func (p *PageService) Page(s *Session) PageView {
	theme := s.Theme()

	sections := make([]SectionView, 0, len(domain.Sections()))
	for _, d := range domain.Sections() {
		sections = append(sections, p.section(s, d.ID))
	}

	return PageView{
		Profile:  p.doc.Profile,
		Theme:    theme,
		MenuOpen: s.MenuOpen(),
		Active:   s.Tracker().Active(),
		Nav:      p.Nav(s),
		Header:   scroll.HeaderState(0, theme),
		Sections: sections,
		Year:     time.Now().Year(),
	}
}

// Section builds one section. Unknown ids are domain.ErrNotFound.
func (p *PageService) Section(s *Session, raw string) (SectionView, error) {
	id, err := domain.ParseSectionID(raw)
	if err != nil {
		return SectionView{}, err
	}

	return p.section(s, id), nil
}

func (p *PageService) section(s *Session, id domain.SectionID) SectionView {
	view := SectionView{
		ID:   id,
		Copy: p.doc.Copy(id),
		Doc:  p.doc,
	}

	switch id {
	case domain.SectionAbout:
		view.About = p.about
	case domain.SectionSkills:
		view.Skills = p.skills(s.SkillCategory())
	case domain.SectionContact:
		view.Contact = ContactView{State: s.Contact()}
	}

	return view
}

func (p *PageService) skills(selected string) SkillsView {
	category, _ := p.doc.Category(selected)

	tabs := make([]SkillTab, 0, len(p.doc.SkillCategories))
	for _, c := range p.doc.SkillCategories {
		tabs = append(tabs, SkillTab{
			ID:       c.ID,
			Label:    c.Label,
			Icon:     c.Icon,
			Selected: c.ID == category.ID,
		})
	}

	return SkillsView{Tabs: tabs, Selected: category}
}

// ToggleTheme flips the session theme.
func (p *PageService) ToggleTheme(s *Session) domain.Theme {
	theme := s.ToggleTheme()
	p.metrics.RecordThemeToggle(theme.String())
	return theme
}

// Navigate handles a nav click on raw. Unknown ids are domain.ErrNotFound.
func (p *PageService) Navigate(s *Session, raw string) (domain.SectionID, error) {
	id, err := domain.ParseSectionID(raw)
	if err != nil {
		return "", err
	}

	s.Navigate(id)

	return id, nil
}

// SelectSkillCategory switches the skills tab. Unknown categories are
// domain.ErrNotFound and leave the selection unchanged.
func (p *PageService) SelectSkillCategory(s *Session, id string) (SkillsView, error) {
	if _, ok := p.doc.Category(id); !ok {
		return SkillsView{}, domain.NewNotFoundError("skill category", id)
	}

	s.SelectSkillCategory(id)

	return p.skills(id), nil
}
