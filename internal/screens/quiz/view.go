package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/JeyrellT/pl300/internal/coach"
	"github.com/JeyrellT/pl300/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if len(s.questions) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Preparando el cuestionario...")
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	q := s.questions[s.index]

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", q.Domain.DisplayName(), q.Level.DisplayName()))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Pregunta %d/%d   ✓ %d", s.index+1, len(s.questions), s.correct))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	mc := lipgloss.NewStyle().Width(min(width-8, 76)).Render(s.mc.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, mc))

	return b.String()
}

func (s *QuizScreen) renderFeedback(width int) string {
	q := s.questions[s.index]

	var b strings.Builder
	b.WriteString("\n\n")

	if s.lastCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("¡Correcto!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Incorrecto"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Respuesta correcta: %s", q.Options[q.CorrectIndex])))
	}

	b.WriteString("\n\n")

	if q.Explanation != "" {
		expStyle := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, expStyle.Render(q.Explanation)))
		b.WriteString("\n\n")
	}

	if s.masteredNow {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render("★ ¡Pregunta dominada!"))
		b.WriteString("\n\n")
	}

	if s.explainLoading {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Consultando al tutor..."))
		b.WriteString("\n\n")
	} else if s.explainErr != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("Explicación no disponible: %s", s.explainErr)))
		b.WriteString("\n\n")
	} else if s.explanation != nil {
		b.WriteString(renderExplanation(s.explanation, width))
		b.WriteString("\n")
	}

	if s.persistWarn {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Warning).
			Render("⚠ Tu progreso podría no guardarse"))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Pulsa cualquier tecla para continuar..."))

	return b.String()
}

func renderExplanation(exp *coach.Explanation, width int) string {
	bodyWidth := min(width-8, 70)
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	body := lipgloss.NewStyle().Width(bodyWidth).Foreground(theme.Text)
	dim := lipgloss.NewStyle().Width(bodyWidth).Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(label.Render("Tutor IA"))
	b.WriteString("\n")
	b.WriteString(body.Render(exp.Summary))
	b.WriteString("\n\n")
	b.WriteString(body.Render(exp.WhyCorrect))
	if len(exp.KeyConcepts) > 0 {
		b.WriteString("\n\n")
		b.WriteString(dim.Render("Conceptos: " + strings.Join(exp.KeyConcepts, ", ")))
	}
	if exp.StudyTip != "" {
		b.WriteString("\n")
		b.WriteString(dim.Render("Consejo: " + exp.StudyTip))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("¿Terminar el cuestionario?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Tu progreso queda guardado."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Sí, terminar"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, seguir"))

	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Pulsa cualquier tecla para volver.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
