package progress

// Level is one tier of the XP progression table.
type Level struct {
	Number int
	Name   string
	Icon   string
	MinXP  int
}

// NextMinXP is 0 for the top tier.
type LevelProgress struct {
	Level
	PercentToNext float64
	NextMinXP     int
}

var levelTable = []Level{
	{Number: 1, Name: "Novato", Icon: "🌱", MinXP: 0},
	{Number: 2, Name: "Aprendiz", Icon: "📘", MinXP: 500},
	{Number: 3, Name: "Analista", Icon: "📊", MinXP: 1200},
	{Number: 4, Name: "Especialista", Icon: "📈", MinXP: 2500},
	{Number: 5, Name: "Experto", Icon: "🏆", MinXP: 5000},
	{Number: 6, Name: "Maestro", Icon: "👑", MinXP: 10000},
}

// LevelForXP returns the tier reached at totalXP and the progress toward the
// next tier. At the top tier PercentToNext is 100.
func LevelForXP(totalXP int) LevelProgress {
	if totalXP < 0 {
		totalXP = 0
	}

	idx := 0
	for i, lvl := range levelTable {
		if totalXP >= lvl.MinXP {
			idx = i
		}
	}

	out := LevelProgress{Level: levelTable[idx]}
	if idx == len(levelTable)-1 {
		out.PercentToNext = 100
		return out
	}

	next := levelTable[idx+1]
	out.NextMinXP = next.MinXP
	span := next.MinXP - out.MinXP
	out.PercentToNext = float64(totalXP-out.MinXP) / float64(span) * 100
	return out
}
