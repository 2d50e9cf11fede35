package progress

import (
	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/mastery"
	"github.com/JeyrellT/pl300/internal/tracker"
)

// DomainStats is the rollup for one exam domain.
//
// Attempted and Correct count unique questions; a question is correct when
// its most recent answer was correct. Accuracy is Correct over Attempted,
// the one accuracy definition used everywhere. The raw attempt counters are
// carried for display only.
type DomainStats struct {
	Attempted       int
	Correct         int
	TotalAttempts   int
	CorrectAttempts int
	Mastered        int
	Accuracy        float64
}

// latestCorrect reports whether the question's most recent answer was
// correct, which is exactly a live streak.
func latestCorrect(e tracker.Entry) bool {
	return e.ConsecutiveCorrect > 0
}

// ComputeDomainStats folds the tracking snapshot into per-domain rollups.
// Domains with no attempted questions map to a zero value.
func ComputeDomainStats(tracking map[string]tracker.Entry) map[catalog.Domain]DomainStats {
	out := make(map[catalog.Domain]DomainStats, len(catalog.AllDomains()))
	for _, d := range catalog.AllDomains() {
		out[d] = DomainStats{}
	}

	for _, e := range tracking {
		if e.TotalAttempts == 0 {
			continue
		}
		s := out[e.Domain]
		s.Attempted++
		if latestCorrect(e) {
			s.Correct++
		}
		s.TotalAttempts += e.TotalAttempts
		s.CorrectAttempts += e.CorrectAttempts
		if e.Status == mastery.StatusMastered {
			s.Mastered++
		}
		out[e.Domain] = s
	}

	for d, s := range out {
		if s.Attempted > 0 {
			s.Accuracy = float64(s.Correct) / float64(s.Attempted)
			out[d] = s
		}
	}
	return out
}

// ComputeOverallAccuracy applies the same unique-question definition
// globally. Returns 0 with nothing attempted.
func ComputeOverallAccuracy(tracking map[string]tracker.Entry) float64 {
	attempted, correct := 0, 0
	for _, e := range tracking {
		if e.TotalAttempts == 0 {
			continue
		}
		attempted++
		if latestCorrect(e) {
			correct++
		}
	}
	if attempted == 0 {
		return 0
	}
	return float64(correct) / float64(attempted)
}

// MasteredCount returns how many tracked questions are currently mastered.
func MasteredCount(tracking map[string]tracker.Entry) int {
	n := 0
	for _, e := range tracking {
		if e.Status == mastery.StatusMastered {
			n++
		}
	}
	return n
}
