// Package summary shows the result of one completed quiz.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/JeyrellT/pl300/internal/progress"
	"github.com/JeyrellT/pl300/internal/router"
	"github.com/JeyrellT/pl300/internal/screen"
	"github.com/JeyrellT/pl300/internal/ui/layout"
	"github.com/JeyrellT/pl300/internal/ui/theme"
)

// SummaryScreen displays the quiz summary.
type SummaryScreen struct {
	result      progress.QuizResult
	outcome     progress.Outcome
	saveWarning bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. saveWarning signals that a store write
// failed during the quiz and the shown results may not survive a restart.
func New(result progress.QuizResult, outcome progress.Outcome, saveWarning bool) *SummaryScreen {
	return &SummaryScreen{result: result, outcome: outcome, saveWarning: saveWarning}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Resumen"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Inicio"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	centered := func(style lipgloss.Style, text string) {
		b.WriteString(style.Width(width).Align(lipgloss.Center).Render(text))
		b.WriteString("\n")
	}

	b.WriteString("\n\n")
	centered(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "¡Cuestionario completado!")
	b.WriteString("\n")

	accuracy := s.result.Accuracy() * 100
	centered(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Preguntas: %d        Correctas: %d        Precisión: %.0f%%",
			s.result.TotalQuestions, s.result.CorrectAnswers, accuracy))
	b.WriteString("\n")

	centered(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true),
		fmt.Sprintf("+%d puntos    +%d XP", s.outcome.PointsEarned, s.outcome.XPEarned))

	if s.outcome.Duplicate {
		centered(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true),
			"Sesión ya registrada; no se aplicó de nuevo.")
	}
	b.WriteString("\n")

	lvl := s.outcome.Level
	centered(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("%s  Nivel %d · %s   (%d XP)", lvl.Icon, lvl.Number, lvl.Name, s.outcome.TotalXP))

	if s.outcome.LeveledUp {
		b.WriteString("\n")
		centered(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), "★ ¡Subiste de nivel!")
	}

	if s.saveWarning {
		b.WriteString("\n")
		centered(lipgloss.NewStyle().Foreground(theme.Warning),
			"⚠ El progreso podría no haberse guardado")
	}

	if len(s.outcome.NewAchievements) > 0 {
		b.WriteString("\n")
		centered(lipgloss.NewStyle().Foreground(theme.TextDim), "Logros")
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", minInt(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")
		for _, a := range s.outcome.NewAchievements {
			centered(lipgloss.NewStyle().Foreground(theme.Accent),
				fmt.Sprintf("%s %s — %s", a.Icon, a.Name, a.Description))
		}
	}

	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
