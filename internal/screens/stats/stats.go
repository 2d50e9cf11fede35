// Package stats renders the aggregate progress screen.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/progress"
	"github.com/JeyrellT/pl300/internal/router"
	"github.com/JeyrellT/pl300/internal/screen"
	"github.com/JeyrellT/pl300/internal/tracker"
	"github.com/JeyrellT/pl300/internal/ui/components"
	"github.com/JeyrellT/pl300/internal/ui/layout"
	"github.com/JeyrellT/pl300/internal/ui/theme"
)

// StatsScreen shows levels, domain rollups, achievements and recent quizzes.
type StatsScreen struct {
	trk  *tracker.Tracker
	prog *progress.Service
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(trk *tracker.Tracker, prog *progress.Service) *StatsScreen {
	return &StatsScreen{trk: trk, prog: prog}
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Estadísticas"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	tracking := s.trk.Snapshot()
	domainStats := progress.ComputeDomainStats(tracking)
	overall := progress.ComputeOverallAccuracy(tracking)
	mastered := progress.MasteredCount(tracking)

	lvl := s.prog.Level()
	streak := s.prog.Streak()

	var b strings.Builder
	b.WriteString("\n")

	centered := func(style lipgloss.Style, text string) {
		b.WriteString(style.Width(width).Align(lipgloss.Center).Render(text))
		b.WriteString("\n")
	}

	centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		fmt.Sprintf("%s  Nivel %d · %s", lvl.Icon, lvl.Number, lvl.Name))

	levelBar := components.NewProgressBar("", lvl.PercentToNext/100, true, minInt(width-20, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, levelBar.View()))
	b.WriteString("\n")
	if lvl.NextMinXP > 0 {
		centered(lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("%d / %d XP", s.prog.TotalXP(), lvl.NextMinXP))
	} else {
		centered(lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("%d XP · nivel máximo", s.prog.TotalXP()))
	}
	b.WriteString("\n")

	centered(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Puntos: %d    Quizzes: %d    Racha: %d días    Dominadas: %d    Precisión global: %.0f%%",
			s.prog.TotalPoints(), s.prog.QuizzesCompleted(), streak.Current, mastered, overall*100))
	b.WriteString("\n")

	// Per-domain rollups.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", minInt(width-8, 64)))
	centered(lipgloss.NewStyle().Foreground(theme.TextDim), "Dominios")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, d := range catalog.AllDomains() {
		ds := domainStats[d]
		bar := components.NewProgressBar(
			fmt.Sprintf("%-24s", d.DisplayName()),
			ds.Accuracy, true, minInt(width-16, 56))
		line := bar.View()
		detail := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("    %d intentadas · %d dominadas · %d respuestas", ds.Attempted, ds.Mastered, ds.TotalAttempts))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, detail))
		b.WriteString("\n")
	}

	// Achievements.
	unlocked := s.prog.Unlocked()
	if len(unlocked) > 0 {
		b.WriteString("\n")
		centered(lipgloss.NewStyle().Foreground(theme.TextDim), "Logros")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")
		var parts []string
		for _, a := range unlocked {
			parts = append(parts, fmt.Sprintf("%s %s", a.Icon, a.Name))
		}
		centered(lipgloss.NewStyle().Foreground(theme.Accent), strings.Join(parts, "    "))
	}

	// Recent quizzes.
	history := s.prog.History()
	if len(history) > 0 {
		b.WriteString("\n")
		centered(lipgloss.NewStyle().Foreground(theme.TextDim), "Últimos quizzes")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		shown := history
		if len(shown) > 5 {
			shown = shown[len(shown)-5:]
		}
		for i := len(shown) - 1; i >= 0; i-- {
			r := shown[i]
			var acc float64
			if r.TotalQuestions > 0 {
				acc = float64(r.CorrectAnswers) / float64(r.TotalQuestions) * 100
			}
			line := fmt.Sprintf("%s  %s  %d/%d (%.0f%%)  +%d XP",
				r.CompletedAt.Format("02 Jan"), r.Domain.DisplayName(),
				r.CorrectAnswers, r.TotalQuestions, acc, r.XPEarned)
			centered(lipgloss.NewStyle().Foreground(theme.Text), line)
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
