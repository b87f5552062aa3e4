// Package scoring turns sentences and their grammar analyses into the four
// sub-scores of an evaluation: grammar, vocabulary, complexity and
// readability. Every scorer is a pure function returning a score in [0, 100]
// together with the statistics it was derived from.
package scoring

import "math"

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func clampScore(s int) int {
	return min(100, max(0, s))
}
