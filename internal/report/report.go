// Package report renders evaluation results for the terminal.
package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/abhisek/fluentcheck/internal/evaluator"
	"github.com/abhisek/fluentcheck/internal/grammar"
	"github.com/abhisek/fluentcheck/internal/store"
	"github.com/abhisek/fluentcheck/internal/ui/components"
	"github.com/abhisek/fluentcheck/internal/ui/theme"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 72

// Evaluation renders a full evaluation: overall grade, sub-score bars,
// statistics, sentence annotations and recommendations.
func Evaluation(res evaluator.Result, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	var b strings.Builder

	b.WriteString(overallCard(res.Overall, width))
	b.WriteString("\n")

	b.WriteString(theme.Section.Render("Scores"))
	b.WriteString("\n")
	for _, s := range []struct {
		label string
		score int
	}{
		{"Grammar", res.Grammar.Score},
		{"Vocabulary", res.Vocabulary.Score},
		{"Complexity", res.Complexity.Score},
		{"Readability", res.Readability.Score},
	} {
		b.WriteString(components.NewScoreBar(s.label, s.score, width).View())
		b.WriteString("\n")
	}

	b.WriteString(theme.Section.Render("Statistics"))
	b.WriteString("\n")
	stats := res.BasicStats
	lines := [][2]string{
		{"Sentences", fmt.Sprintf("%d", stats.TotalSentences)},
		{"Words", fmt.Sprintf("%d (%d unique)", stats.TotalWords, stats.UniqueWords)},
		{"Avg length", fmt.Sprintf("%.2f words", stats.AvgSentenceLength)},
		{"Grammar errors", fmt.Sprintf("%d (%.2f per sentence)", res.Grammar.TotalErrors, res.Grammar.ErrorRate)},
		{"Type/token", fmt.Sprintf("%.2f", res.Vocabulary.TypeTokenRatio)},
		{"Reading ease", fmt.Sprintf("%.1f (%s, grade %.1f)", res.Readability.FleschReadingEase, res.Readability.ReadabilityLevel, res.Readability.FleschKincaidGrade)},
	}
	if stats.Language.Code != "" {
		lines = append(lines, [2]string{"Language", languageLabel(stats)})
	}
	for _, l := range lines {
		b.WriteString(keyValue(l[0], l[1]))
	}

	if len(res.Sentences) > 0 {
		b.WriteString(theme.Section.Render("Sentences"))
		b.WriteString("\n")
		b.WriteString(Analyses(res.Sentences, width))
	}

	b.WriteString(theme.Section.Render("Recommendations"))
	b.WriteString("\n")
	wrap := lipgloss.NewStyle().Width(width - 2)
	for _, r := range res.Recommendations {
		b.WriteString(wrap.Render("• " + r))
		b.WriteString("\n")
	}

	return b.String()
}

func overallCard(o evaluator.Overall, width int) string {
	head := theme.Title.Render("Overall ") +
		theme.ScoreColor(o.Score).Bold(true).Render(fmt.Sprintf("%d/100", o.Score)) +
		theme.Label.Render("  grade ") + theme.Body.Bold(true).Render(o.Grade) +
		theme.Label.Render("  CEFR ") + theme.Body.Bold(true).Render(string(o.EstimatedCEFR))

	return theme.Card.Width(width).Render(head + "\n" + theme.Hint.Render(o.LevelDescription))
}

func languageLabel(stats evaluator.BasicStats) string {
	return fmt.Sprintf("%s (%.0f%%)", stats.Language.Name, stats.Language.Confidence*100)
}

func keyValue(k, v string) string {
	return theme.Label.Width(16).Render(k) + theme.Body.Render(v) + "\n"
}

// Analyses renders per-sentence annotations.
func Analyses(analyses []grammar.SentenceAnalysis, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	wrap := lipgloss.NewStyle().Width(width - 4)

	var b strings.Builder
	for i, a := range analyses {
		mark := theme.Correct.Render("✓")
		if !a.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}
		fmt.Fprintf(&b, "%s %s %s\n", mark, theme.Label.Render(fmt.Sprintf("%d.", i+1)), theme.Body.Render(a.Sentence))

		for _, e := range a.Errors {
			line := severityStyle(e.Severity).Render(string(e.Type)) + " " + theme.Body.Render(e.Description)
			if e.Position != nil {
				line += theme.Label.Render(fmt.Sprintf(" (word %d)", *e.Position))
			}
			if e.Suggestion != nil {
				line += "\n" + theme.Hint.Render("→ "+*e.Suggestion)
			}
			b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(wrap.Render(line)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func severityStyle(s grammar.Severity) lipgloss.Style {
	switch s {
	case grammar.SeverityHigh:
		return theme.Incorrect
	case grammar.SeverityLow:
		return theme.Label
	default:
		return theme.Warning
	}
}

// Simple renders the compact evaluation.
func Simple(res evaluator.SimpleResult) string {
	var b strings.Builder
	b.WriteString(keyValue("Sentences", fmt.Sprintf("%d", res.TotalSentences)))
	b.WriteString(keyValue("Grammar", fmt.Sprintf("%d (%.2f errors per sentence)", res.GrammarScore, res.GrammarErrorRate)))
	b.WriteString(keyValue("Vocabulary", fmt.Sprintf("%d", res.VocabularyScore)))
	b.WriteString(keyValue("CEFR", string(res.EstimatedCEFR)))

	if len(res.ErrorCounts) > 0 {
		types := lo.Keys(res.ErrorCounts)
		sortErrorTypes(types, res.ErrorCounts)
		parts := lo.Map(types, func(t grammar.ErrorType, _ int) string {
			return fmt.Sprintf("%s×%d", t, res.ErrorCounts[t])
		})
		b.WriteString(keyValue("Errors", strings.Join(parts, ", ")))
	}
	return b.String()
}

// sortErrorTypes orders types by count, most frequent first, then by name.
func sortErrorTypes(types []grammar.ErrorType, counts map[grammar.ErrorType]int) {
	slices.SortFunc(types, func(a, b grammar.ErrorType) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

// History renders stored evaluations as a table, newest first.
func History(records []store.EvaluationRecord) string {
	if len(records) == 0 {
		return theme.Hint.Render("No evaluations recorded yet.") + "\n"
	}

	var b strings.Builder
	header := fmt.Sprintf("%-8s  %-16s  %5s  %-6s  %-4s  %5s  %5s  %5s  %5s  %s",
		"ID", "Time", "Sent", "Score", "CEFR", "Gram", "Vocab", "Cplx", "Read", "Classifier")
	b.WriteString(theme.Title.Render(header))
	b.WriteString("\n")
	b.WriteString(theme.Label.Render(strings.Repeat("─", lipgloss.Width(header))))
	b.WriteString("\n")

	for _, r := range records {
		fmt.Fprintf(&b, "%-8s  %-16s  %5d  %s  %-4s  %5d  %5d  %5d  %5d  %s\n",
			r.ID[:min(8, len(r.ID))],
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.SentenceCount,
			theme.ScoreColor(r.OverallScore).Render(fmt.Sprintf("%3d %-2s", r.OverallScore, r.Grade)),
			r.CEFR,
			r.GrammarScore, r.VocabularyScore, r.ComplexityScore, r.ReadabilityScore,
			r.Classifier,
		)
	}
	return b.String()
}
