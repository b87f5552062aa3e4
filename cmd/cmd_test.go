package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fluentcheck/internal/evaluator"
	"github.com/abhisek/fluentcheck/internal/grammar"
	"github.com/abhisek/fluentcheck/internal/store"
)

// cli runs commands against a temp database with the classifier off.
type cli struct {
	t      *testing.T
	dbPath string
	env    string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("FLUENTCHECK_LLM_PROVIDER", "none")
	t.Setenv("FLUENTCHECK_DB", "")
	dir := t.TempDir()
	return &cli{
		t:      t,
		dbPath: filepath.Join(dir, "fluentcheck.db"),
		env:    filepath.Join(dir, "missing.env"),
	}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--db", c.dbPath, "--env-file", c.env))
	err := rootCmd.ExecuteContext(context.Background())
	return ansi.Strip(out.String()), err
}

func (c *cli) mustRun(stdin string, args ...string) string {
	c.t.Helper()
	out, err := c.run(stdin, args...)
	require.NoError(c.t, err)
	return out
}

// resetFlags restores every flag to its default so runs do not leak into
// each other through the package-level commands.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func (c *cli) history() []store.EvaluationRecord {
	c.t.Helper()
	var records []store.EvaluationRecord
	require.NoError(c.t, json.Unmarshal([]byte(c.mustRun("", "history", "--json")), &records))
	return records
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	require.Equal(t, "fluentcheck (devel)\n", c.mustRun("", "version"))
}

func TestEvaluateRendersReportAndSavesHistory(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("", "evaluate", "Yesterday I go to the park.", "She reads books every day.")
	require.Contains(t, out, "Overall")
	require.Contains(t, out, "/100")
	require.Contains(t, out, "Change 'go' to 'went'")
	require.Contains(t, out, "Recommendations")

	records := c.history()
	require.Len(t, records, 1)
	require.Equal(t, 2, records[0].SentenceCount)
	require.Equal(t, classifierRules, records[0].Classifier)

	table := c.mustRun("", "history")
	require.Contains(t, table, records[0].ID[:8])

	var res evaluator.Result
	shown := c.mustRun("", "history", "show", records[0].ID[:8], "--json")
	require.NoError(t, json.Unmarshal([]byte(shown), &res))
	require.Equal(t, records[0].OverallScore, res.Overall.Score)
	require.Len(t, res.Sentences, 2)

	report := c.mustRun("", "history", "show", records[0].ID)
	require.Contains(t, report, "classifier: rules")
	require.Contains(t, report, "Overall")
}

func TestEvaluateNoSave(t *testing.T) {
	c := newCLI(t)
	c.mustRun("", "evaluate", "--no-save", "I am agree with you.")
	require.Empty(t, c.history())
	require.Contains(t, c.mustRun("", "history"), "No evaluations recorded yet.")
}

func TestEvaluateJSON(t *testing.T) {
	c := newCLI(t)

	var res evaluator.Result
	out := c.mustRun("", "evaluate", "--json", "I am agree with you.")
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, 1, res.BasicStats.TotalSentences)
	require.Equal(t, 1, res.Grammar.TotalErrors)
}

func TestAnalyzeJSON(t *testing.T) {
	c := newCLI(t)

	var analyses []grammar.SentenceAnalysis
	out := c.mustRun("", "analyze", "--json", "I am agree with you.", "She reads books every day.")
	require.NoError(t, json.Unmarshal([]byte(out), &analyses))
	require.Len(t, analyses, 2)
	require.False(t, analyses[0].IsCorrect)
	require.Equal(t, grammar.VerbPattern, analyses[0].Errors[0].Type)
	require.True(t, analyses[1].IsCorrect)
	require.Empty(t, analyses[1].Errors)
}

func TestSimpleFromStdin(t *testing.T) {
	c := newCLI(t)

	var res evaluator.SimpleResult
	stdin := "Yesterday I go to the park.\n\n  She don't like apples.  \n"
	out := c.mustRun(stdin, "simple", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, 2, res.TotalSentences)
	require.Equal(t, 1, res.ErrorCounts[grammar.VerbTense])
	require.Equal(t, 1, res.ErrorCounts[grammar.Agreement])

	text := c.mustRun(stdin, "simple")
	require.Contains(t, text, "agreement×1")
}

func TestReadFromFileWithSplit(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(t.TempDir(), "essay.txt")
	require.NoError(t, os.WriteFile(path, []byte("I like tea. My brother\nlikes coffee!\n"), 0o644))

	var lines []grammar.SentenceAnalysis
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("", "analyze", "--json", "--file", path)), &lines))
	require.Len(t, lines, 2)
	require.Equal(t, "I like tea. My brother", lines[0].Sentence)

	var split []grammar.SentenceAnalysis
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("", "analyze", "--json", "--split", "-f", path)), &split))
	require.Len(t, split, 2)
	require.Equal(t, "I like tea.", split[0].Sentence)
	require.Equal(t, "My brother likes coffee!", split[1].Sentence)
}

func TestReadSentencesErrors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "evaluate", "--file", "x.txt", "A sentence.")
	require.ErrorContains(t, err, "not both")

	_, err = c.run("", "evaluate", "--file", filepath.Join(t.TempDir(), "absent.txt"))
	require.ErrorContains(t, err, "open input")
}

func TestInvalidConfig(t *testing.T) {
	c := newCLI(t)
	t.Setenv("FLUENTCHECK_LLM_PROVIDER", "watson")

	_, err := c.run("", "version")
	require.ErrorContains(t, err, "invalid configuration")
}

func TestLLMCommands(t *testing.T) {
	c := newCLI(t)
	require.Contains(t, c.mustRun("", "llm", "list"), "No LLM events found.")
	require.Contains(t, c.mustRun("", "llm", "stats"), "No LLM usage recorded yet.")

	s, err := store.Open(c.dbPath)
	require.NoError(t, err)
	repo := s.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "grammar-classify",
		InputTokens: 1000, OutputTokens: 200, LatencyMs: 300, Success: true,
		RequestBody: "[user]\nSentences", ResponseBody: `{"results":[[]]}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "mock", Model: "mock-model", Purpose: "adhoc",
		ErrorMessage: "boom",
	}))
	require.NoError(t, s.Close())

	list := c.mustRun("", "llm", "list", "--purpose", "grammar-classify")
	require.Contains(t, list, "gpt-4o-mini")
	require.NotContains(t, list, "mock-model")

	view := c.mustRun("", "llm", "view", "2")
	require.Contains(t, view, "Error:     boom")
	require.Contains(t, view, "(not captured)")

	stats := c.mustRun("", "llm", "stats")
	require.Contains(t, stats, "grammar-classify")
	require.Contains(t, stats, "TOTAL (partial)")
	require.Contains(t, stats, "Pricing unavailable for: mock-model")

	_, err = c.run("", "llm", "view", "99")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = c.run("", "llm", "view", "abc")
	require.ErrorContains(t, err, "invalid ID")
}

func TestFormatCost(t *testing.T) {
	require.Equal(t, "$0.0003", formatCost(0.00027))
	require.Equal(t, "$1.50", formatCost(1.5))
	require.Equal(t, "abc", truncate("abcdef", 3))
	require.Equal(t, "ab", truncate("ab", 3))
}
