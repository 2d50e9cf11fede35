package progress

import "time"

// dayFormat is the granularity of the usage streak.
const dayFormat = "2006-01-02"

// DailyStreak tracks consecutive days with at least one completed quiz.
type DailyStreak struct {
	Current    int    `json:"current"`
	Longest    int    `json:"longest"`
	LastActive string `json:"last_active,omitempty"`
}

// Touch registers activity at now. Same-day activity is a no-op; the day
// after the last active day extends the streak; any gap restarts it at 1.
func (s *DailyStreak) Touch(now time.Time) {
	today := now.Format(dayFormat)
	if s.LastActive == today {
		return
	}

	yesterday := now.AddDate(0, 0, -1).Format(dayFormat)
	if s.LastActive == yesterday {
		s.Current++
	} else {
		s.Current = 1
	}
	s.LastActive = today

	if s.Current > s.Longest {
		s.Longest = s.Current
	}
}
