package evaluator

// CEFRLevel is a Common European Framework of Reference proficiency level.
type CEFRLevel string

const (
	A1 CEFRLevel = "A1"
	A2 CEFRLevel = "A2"
	B1 CEFRLevel = "B1"
	B2 CEFRLevel = "B2"
	C1 CEFRLevel = "C1"
	C2 CEFRLevel = "C2"
)

var cefrDescriptions = map[CEFRLevel]string{
	A1: "Beginner - Can understand and use basic phrases",
	A2: "Elementary - Can communicate in simple routine tasks",
	B1: "Intermediate - Can handle most situations while traveling",
	B2: "Upper Intermediate - Can interact with native speakers fluently",
	C1: "Advanced - Can use language flexibly and effectively",
	C2: "Proficient - Can understand virtually everything with ease",
}

// Description returns a one-line description of the level.
func (l CEFRLevel) Description() string {
	if d, ok := cefrDescriptions[l]; ok {
		return d
	}
	return "Unknown level"
}

// cefrGate is the minimum overall and grammar score for a level.
type cefrGate struct {
	level   CEFRLevel
	overall int
	grammar int
}

// Checked top down; grammar gates the level even when the overall score is
// high.
var cefrGates = []cefrGate{
	{C2, 95, 95},
	{C1, 85, 85},
	{B2, 75, 70},
	{B1, 60, 55},
	{A2, 45, 40},
}

// EstimateCEFR maps an overall score and a grammar score to a CEFR level.
func EstimateCEFR(overall, grammar int) CEFRLevel {
	for _, g := range cefrGates {
		if overall >= g.overall && grammar >= g.grammar {
			return g.level
		}
	}
	return A1
}

// simpleCEFR is the coarse estimate used by EvaluateSimple.
func simpleCEFR(avg int) CEFRLevel {
	switch {
	case avg < 40:
		return A1
	case avg < 60:
		return A2
	case avg < 75:
		return B1
	default:
		return B2
	}
}
