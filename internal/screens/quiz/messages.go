package quiz

import (
	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/coach"
	"github.com/JeyrellT/pl300/internal/progress"
)

// quizStartedMsg is sent when the question list has been selected.
type quizStartedMsg struct {
	Questions []catalog.Question
	Err       error
}

// quizDoneMsg is sent when the completion has been recorded. SaveWarning is
// set when any store write failed along the way; the results still applied
// in memory.
type quizDoneMsg struct {
	Outcome     progress.Outcome
	Result      progress.QuizResult
	SaveWarning bool
}

// explanationMsg is sent when the coach explanation request finishes.
type explanationMsg struct {
	QuestionID  string
	Explanation *coach.Explanation
	Err         error
}
