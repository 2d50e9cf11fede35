// Package home is the application's main menu screen.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/coach"
	"github.com/JeyrellT/pl300/internal/progress"
	"github.com/JeyrellT/pl300/internal/router"
	"github.com/JeyrellT/pl300/internal/screen"
	quizscreen "github.com/JeyrellT/pl300/internal/screens/quiz"
	"github.com/JeyrellT/pl300/internal/screens/stats"
	"github.com/JeyrellT/pl300/internal/tracker"
	"github.com/JeyrellT/pl300/internal/ui/components"
	"github.com/JeyrellT/pl300/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu components.Menu
	trk  *tracker.Tracker
	prog *progress.Service
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. ai may be nil when no LLM is configured.
func New(cat *catalog.Catalog, trk *tracker.Tracker, prog *progress.Service, ai *coach.Coach) *HomeScreen {
	items := []components.MenuItem{
		{Label: "PRACTICAR", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quizscreen.NewSetup(cat, trk, prog, ai, quizscreen.ModeStandard),
				}
			}
		}},
		{Label: "PUNTOS DÉBILES", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quizscreen.NewSetup(cat, trk, prog, ai, quizscreen.ModeWeakSpot),
				}
			}
		}},
		{Label: "REPASAR FALLOS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quizscreen.NewQuiz(cat, trk, prog, ai,
						quizscreen.ModeRetry, catalog.DomainAny, catalog.LevelAny, 10),
				}
			}
		}},
		{Label: "ESTADÍSTICAS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(trk, prog)}
			}
		}},
		{Label: "SALIR", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu: components.NewMenu(items),
		trk:  trk,
		prog: prog,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	tracking := h.trk.Snapshot()
	mastered := progress.MasteredCount(tracking)
	lvl := h.prog.Level()
	streak := h.prog.Streak()

	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Entrenador PL-300"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Microsoft Power BI Data Analyst"))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("%s Nivel %d · %s    ⚡ %d XP    🔥 %d días    ★ %d dominadas",
		lvl.Icon, lvl.Number, lvl.Name, h.prog.TotalXP(), streak.Current, mastered)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Inicio"
}
