package evaluator

// Sub-score weights in percent. They sum to 100.
const (
	weightGrammar     = 40
	weightVocabulary  = 25
	weightComplexity  = 20
	weightReadability = 15
)

// OverallScore combines the sub-scores with weights 0.40, 0.25, 0.20 and
// 0.15 and truncates the result. Integer arithmetic keeps the truncation
// exact.
func OverallScore(grammar, vocabulary, complexity, readability int) int {
	sum := grammar*weightGrammar +
		vocabulary*weightVocabulary +
		complexity*weightComplexity +
		readability*weightReadability
	return sum / 100
}

var gradeThresholds = []struct {
	min   int
	grade string
}{
	{90, "A+"},
	{85, "A"},
	{80, "B+"},
	{75, "B"},
	{70, "C+"},
	{65, "C"},
	{60, "D+"},
	{55, "D"},
}

// Grade returns the letter grade for an overall score.
func Grade(score int) string {
	for _, t := range gradeThresholds {
		if score >= t.min {
			return t.grade
		}
	}
	return "F"
}
