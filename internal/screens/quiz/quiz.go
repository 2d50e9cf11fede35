// Package quiz implements the quiz setup and play screens.
package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/coach"
	"github.com/JeyrellT/pl300/internal/mastery"
	"github.com/JeyrellT/pl300/internal/progress"
	"github.com/JeyrellT/pl300/internal/router"
	"github.com/JeyrellT/pl300/internal/screen"
	"github.com/JeyrellT/pl300/internal/screens/summary"
	"github.com/JeyrellT/pl300/internal/selector"
	"github.com/JeyrellT/pl300/internal/tracker"
	"github.com/JeyrellT/pl300/internal/ui/components"
	"github.com/JeyrellT/pl300/internal/ui/layout"
)

// Quiz modes, recorded on the completion event.
const (
	ModeStandard = "standard"
	ModeWeakSpot = "weak-spot"
	ModeRetry    = "retry-incorrect"
)

// QuizScreen runs one quiz from selection to completion.
type QuizScreen struct {
	cat   *catalog.Catalog
	trk   *tracker.Tracker
	prog  *progress.Service
	coach *coach.Coach

	mode   string
	domain catalog.Domain
	level  catalog.Level
	count  int

	sessionID     string
	questions     []catalog.Question
	index         int
	correct       int
	mc            components.MultiChoice
	questionStart time.Time

	showingFeedback bool
	lastCorrect     bool
	masteredNow     bool
	quitConfirm     bool
	persistWarn     bool
	errMsg          string

	explanation    *coach.Explanation
	explainLoading bool
	explainErr     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// NewQuiz creates a quiz screen. ai may be nil when no LLM is configured.
func NewQuiz(cat *catalog.Catalog, trk *tracker.Tracker, prog *progress.Service, ai *coach.Coach, mode string, domain catalog.Domain, level catalog.Level, count int) *QuizScreen {
	return &QuizScreen{
		cat:    cat,
		trk:    trk,
		prog:   prog,
		coach:  ai,
		mode:   mode,
		domain: domain,
		level:  level,
		count:  count,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.startQuiz()
}

func (s *QuizScreen) Title() string {
	switch s.mode {
	case ModeWeakSpot:
		return "Puntos débiles"
	case ModeRetry:
		return "Repaso de fallos"
	default:
		return "Práctica"
	}
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Terminar"},
			{Key: "N", Description: "Continuar"},
		}
	}
	if s.showingFeedback {
		hints := []layout.KeyHint{}
		if s.coach != nil && s.explanation == nil && !s.explainLoading {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Explicación IA"})
		}
		return append(hints, layout.KeyHint{Key: "cualquier tecla", Description: "Continuar"})
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Responder"},
		{Key: "Esc", Description: "Salir"},
	}
}

// startQuiz selects the question list for the configured mode.
func (s *QuizScreen) startQuiz() tea.Cmd {
	return func() tea.Msg {
		tracking := s.trk.Snapshot()

		opts := selector.Options{}
		switch s.mode {
		case ModeStandard:
			opts.ExcludeMastered = true
		case ModeWeakSpot:
			opts.ExcludeMastered = true
			opts.PrioritizeWeak = true
		case ModeRetry:
			opts.IncludeSpecific = missedQuestionIDs(tracking)
		}

		qs := selector.Select(s.cat, s.domain, s.level, s.count, tracking, opts)
		if len(qs) == 0 {
			return quizStartedMsg{Err: errors.New("no hay preguntas disponibles con esos filtros")}
		}
		return quizStartedMsg{Questions: qs}
	}
}

// missedQuestionIDs returns the ids whose most recent answer was wrong.
// Archived questions stay out of the retry pool.
func missedQuestionIDs(tracking map[string]tracker.Entry) []string {
	var ids []string
	for id, e := range tracking {
		if e.Status == mastery.StatusRetired {
			continue
		}
		if e.TotalAttempts > 0 && e.ConsecutiveCorrect == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizStartedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.questions = msg.Questions
		s.sessionID = uuid.New().String()
		s.presentQuestion()
		return s, nil

	case quizDoneMsg:
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: summary.New(msg.Result, msg.Outcome, msg.SaveWarning),
			}
		}

	case explanationMsg:
		if s.index < len(s.questions) && msg.QuestionID == s.questions[s.index].ID {
			s.explainLoading = false
			if msg.Err != nil {
				s.explainErr = msg.Err.Error()
			} else {
				s.explanation = msg.Explanation
			}
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if len(s.questions) == 0 {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			if s.index == 0 && !s.showingFeedback {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return s, s.finishQuiz()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.showingFeedback {
		if (key == "e" || key == "E") && s.coach != nil && s.explanation == nil && !s.explainLoading {
			s.explainLoading = true
			s.explainErr = ""
			return s, s.requestExplanation()
		}
		return s.advance()
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	// Digit shortcuts select and submit in one stroke.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		i := int(key[0] - '1')
		if i < len(s.mc.Options) {
			s.mc.Selected = i
			s.mc.Submitted = true
			s.mc.ChosenIndex = i
			return s.recordAnswer()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if s.mc.Submitted {
		return s.recordAnswer()
	}
	return s, cmd
}

// presentQuestion resets the choice component for the current question.
func (s *QuizScreen) presentQuestion() {
	q := s.questions[s.index]
	s.mc = components.NewMultiChoice(q.Prompt, q.Options, q.CorrectIndex)
	s.questionStart = time.Now()
	s.explanation = nil
	s.explainLoading = false
	s.explainErr = ""
	s.masteredNow = false
}

// recordAnswer persists the attempt and switches to the feedback view.
func (s *QuizScreen) recordAnswer() (screen.Screen, tea.Cmd) {
	q := s.questions[s.index]
	wasCorrect := s.mc.IsCorrect()
	timeMs := time.Since(s.questionStart).Milliseconds()

	prev, _ := s.trk.GetEntry(q.ID)

	entry, err := s.trk.RecordAttempt(context.Background(), q.ID, q.Domain, q.Level, wasCorrect, timeMs)
	var persistErr *tracker.PersistError
	if err != nil {
		if !errors.As(err, &persistErr) {
			s.errMsg = err.Error()
			return s, nil
		}
		// Non-fatal: the attempt counted in memory, the write did not land.
		s.persistWarn = true
	}

	if wasCorrect {
		s.correct++
	}
	s.lastCorrect = wasCorrect
	s.masteredNow = entry.Status == mastery.StatusMastered && prev.Status != mastery.StatusMastered
	s.showingFeedback = true
	return s, nil
}

// advance moves to the next question or ends the quiz.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	if s.index+1 >= len(s.questions) {
		s.index++
		return s, s.finishQuiz()
	}
	s.index++
	s.presentQuestion()
	return s, nil
}

// finishQuiz records the completion for the questions actually answered.
func (s *QuizScreen) finishQuiz() tea.Cmd {
	answered := s.index
	if s.showingFeedback {
		answered++
	}
	result := progress.QuizResult{
		SessionID:      s.sessionID,
		Mode:           s.mode,
		Domain:         s.domain,
		Level:          s.level,
		TotalQuestions: answered,
		CorrectAnswers: s.correct,
		CompletedAt:    time.Now(),
	}
	attemptWarn := s.persistWarn
	return func() tea.Msg {
		outcome, err := s.prog.RecordQuizCompletion(context.Background(), result, s.trk.Snapshot())
		return quizDoneMsg{
			Outcome:     outcome,
			Result:      result,
			SaveWarning: attemptWarn || err != nil,
		}
	}
}

// requestExplanation asks the coach asynchronously.
func (s *QuizScreen) requestExplanation() tea.Cmd {
	q := s.questions[s.index]
	chosen := s.mc.ChosenIndex
	ai := s.coach
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		exp, err := ai.Explain(ctx, q, chosen)
		return explanationMsg{QuestionID: q.ID, Explanation: exp, Err: err}
	}
}
