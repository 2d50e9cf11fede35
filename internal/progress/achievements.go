package progress

// Achievement is a one-time unlock shown on the summary and stats screens.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// achievementInput is the state a rule inspects after a completed quiz has
// been applied.
type achievementInput struct {
	quizzesCompleted int
	perfectQuiz      bool
	masteredCount    int
	streakDays       int
	levelNumber      int
}

type achievementRule struct {
	Achievement
	unlocked func(in achievementInput) bool
}

var achievementRules = []achievementRule{
	{
		Achievement: Achievement{
			ID: "first-quiz", Name: "Primer paso", Icon: "🚀",
			Description: "Completa tu primer quiz",
		},
		unlocked: func(in achievementInput) bool { return in.quizzesCompleted >= 1 },
	},
	{
		Achievement: Achievement{
			ID: "perfect-quiz", Name: "Sin fallos", Icon: "💯",
			Description: "Completa un quiz con todas las respuestas correctas",
		},
		unlocked: func(in achievementInput) bool { return in.perfectQuiz },
	},
	{
		Achievement: Achievement{
			ID: "mastered-10", Name: "Coleccionista", Icon: "🎯",
			Description: "Domina 10 preguntas",
		},
		unlocked: func(in achievementInput) bool { return in.masteredCount >= 10 },
	},
	{
		Achievement: Achievement{
			ID: "mastered-25", Name: "Dominio amplio", Icon: "🏅",
			Description: "Domina 25 preguntas",
		},
		unlocked: func(in achievementInput) bool { return in.masteredCount >= 25 },
	},
	{
		Achievement: Achievement{
			ID: "streak-3", Name: "Constancia", Icon: "🔥",
			Description: "Practica 3 días seguidos",
		},
		unlocked: func(in achievementInput) bool { return in.streakDays >= 3 },
	},
	{
		Achievement: Achievement{
			ID: "streak-7", Name: "Semana completa", Icon: "📅",
			Description: "Practica 7 días seguidos",
		},
		unlocked: func(in achievementInput) bool { return in.streakDays >= 7 },
	},
	{
		Achievement: Achievement{
			ID: "level-3", Name: "Analista en marcha", Icon: "📊",
			Description: "Alcanza el nivel 3",
		},
		unlocked: func(in achievementInput) bool { return in.levelNumber >= 3 },
	},
	{
		Achievement: Achievement{
			ID: "level-6", Name: "Maestría PL-300", Icon: "👑",
			Description: "Alcanza el nivel máximo",
		},
		unlocked: func(in achievementInput) bool { return in.levelNumber >= 6 },
	},
}

// evaluateAchievements returns the rules newly satisfied by in, skipping ids
// already in unlocked.
func evaluateAchievements(in achievementInput, unlocked map[string]bool) []Achievement {
	var out []Achievement
	for _, rule := range achievementRules {
		if unlocked[rule.ID] {
			continue
		}
		if rule.unlocked(in) {
			out = append(out, rule.Achievement)
		}
	}
	return out
}

// AllAchievements returns the full rule list for display.
func AllAchievements() []Achievement {
	out := make([]Achievement, len(achievementRules))
	for i, rule := range achievementRules {
		out[i] = rule.Achievement
	}
	return out
}
