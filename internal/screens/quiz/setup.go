package quiz

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/coach"
	"github.com/JeyrellT/pl300/internal/progress"
	"github.com/JeyrellT/pl300/internal/router"
	"github.com/JeyrellT/pl300/internal/screen"
	"github.com/JeyrellT/pl300/internal/tracker"
	"github.com/JeyrellT/pl300/internal/ui/components"
	"github.com/JeyrellT/pl300/internal/ui/layout"
	"github.com/JeyrellT/pl300/internal/ui/theme"
)

const defaultQuestionCount = 10

// setup steps
const (
	stepDomain = iota
	stepLevel
	stepCount
)

// SetupScreen collects domain, level and question count before a quiz.
type SetupScreen struct {
	cat   *catalog.Catalog
	trk   *tracker.Tracker
	prog  *progress.Service
	coach *coach.Coach
	mode  string

	step       int
	domainMenu components.Menu
	levelMenu  components.Menu
	countInput components.TextInput

	domain catalog.Domain
	level  catalog.Level
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// NewSetup creates the quiz configuration screen.
func NewSetup(cat *catalog.Catalog, trk *tracker.Tracker, prog *progress.Service, ai *coach.Coach, mode string) *SetupScreen {
	s := &SetupScreen{
		cat:   cat,
		trk:   trk,
		prog:  prog,
		coach: ai,
		mode:  mode,
	}

	domainItems := []components.MenuItem{
		{Label: catalog.DomainAny.DisplayName(), Action: s.pickDomain(catalog.DomainAny)},
	}
	for _, d := range catalog.AllDomains() {
		domainItems = append(domainItems, components.MenuItem{
			Label: d.DisplayName(), Action: s.pickDomain(d),
		})
	}
	s.domainMenu = components.NewMenu(domainItems)

	levelItems := []components.MenuItem{
		{Label: catalog.LevelAny.DisplayName(), Action: s.pickLevel(catalog.LevelAny)},
	}
	for _, l := range catalog.AllLevels() {
		levelItems = append(levelItems, components.MenuItem{
			Label: l.DisplayName(), Action: s.pickLevel(l),
		})
	}
	s.levelMenu = components.NewMenu(levelItems)

	s.countInput = components.NewTextInput("10", true, 3)

	return s
}

func (s *SetupScreen) pickDomain(d catalog.Domain) func() tea.Cmd {
	return func() tea.Cmd {
		s.domain = d
		s.step = stepLevel
		return nil
	}
}

func (s *SetupScreen) pickLevel(l catalog.Level) func() tea.Cmd {
	return func() tea.Cmd {
		s.level = l
		s.step = stepCount
		return s.countInput.Init()
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	if s.mode == ModeWeakSpot {
		return "Puntos débiles"
	}
	return "Nueva práctica"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Elegir"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			// Step back through the wizard, then out to the menu.
			switch s.step {
			case stepLevel:
				s.step = stepDomain
				return s, nil
			case stepCount:
				s.step = stepLevel
				return s, nil
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			if s.step == stepCount {
				count := defaultQuestionCount
				if n, err := s.countInput.NumericValue(); err == nil && n > 0 {
					count = n
				}
				next := NewQuiz(s.cat, s.trk, s.prog, s.coach, s.mode, s.domain, s.level, count)
				return s, func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: next}
				}
			}
		}
	}

	var cmd tea.Cmd
	switch s.step {
	case stepDomain:
		s.domainMenu, cmd = s.domainMenu.Update(msg)
	case stepLevel:
		s.levelMenu, cmd = s.levelMenu.Update(msg)
	case stepCount:
		s.countInput, cmd = s.countInput.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) View(width, height int) string {
	title := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)

	hint := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim)

	switch s.step {
	case stepDomain:
		return "\n\n" + title.Render("Elige un dominio") + "\n\n" +
			lipgloss.PlaceHorizontal(width, lipgloss.Center, s.domainMenu.View())
	case stepLevel:
		return "\n\n" + title.Render("Elige un nivel") + "\n\n" +
			lipgloss.PlaceHorizontal(width, lipgloss.Center, s.levelMenu.View())
	default:
		return "\n\n" + title.Render("¿Cuántas preguntas?") + "\n\n" +
			lipgloss.PlaceHorizontal(width, lipgloss.Center, s.countInput.View()) + "\n\n" +
			hint.Render("Enter para empezar")
	}
}
