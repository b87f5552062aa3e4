package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/fluentcheck/internal/report"
	"github.com/abhisek/fluentcheck/internal/text"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [sentence...]",
	Short: "Score sentences and estimate a CEFR level",
	Long: `Score sentences for grammar, vocabulary, complexity and readability.

Sentences come from the arguments, from --file (one per line, "-" for stdin),
or from stdin when neither is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sentences, err := readSentences(cmd, args)
		if err != nil {
			return err
		}

		e, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		res := e.evaluator.Evaluate(ctx, sentences)
		if rec, err := e.save(ctx, res); err != nil {
			logger.Warn("evaluation not saved", "error", err)
		} else if rec != nil {
			logger.Debug("evaluation saved", "id", rec.ID)
		}

		if asJSON(cmd) {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		fmt.Fprint(cmd.OutOrStdout(), report.Evaluation(res, report.DefaultWidth))
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [sentence...]",
	Short: "List grammar errors sentence by sentence",
	RunE: func(cmd *cobra.Command, args []string) error {
		sentences, err := readSentences(cmd, args)
		if err != nil {
			return err
		}

		e, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		analyses := e.analyzer.Analyze(cmd.Context(), sentences)
		if asJSON(cmd) {
			return writeJSON(cmd.OutOrStdout(), analyses)
		}
		fmt.Fprint(cmd.OutOrStdout(), report.Analyses(analyses, report.DefaultWidth))
		return nil
	},
}

var simpleCmd = &cobra.Command{
	Use:   "simple [sentence...]",
	Short: "Print a compact evaluation",
	RunE: func(cmd *cobra.Command, args []string) error {
		sentences, err := readSentences(cmd, args)
		if err != nil {
			return err
		}

		e, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		res := e.evaluator.EvaluateSimple(cmd.Context(), sentences)
		if asJSON(cmd) {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		fmt.Fprint(cmd.OutOrStdout(), report.Simple(res))
		return nil
	},
}

// readSentences collects input from args, --file or stdin. With --split
// the input is treated as free text and broken into sentences; otherwise
// each non-blank line (or argument) is one sentence.
func readSentences(cmd *cobra.Command, args []string) ([]string, error) {
	path, _ := cmd.Flags().GetString("file")
	split, _ := cmd.Flags().GetBool("split")

	var lines []string
	switch {
	case len(args) > 0 && path != "":
		return nil, fmt.Errorf("pass sentences as arguments or with --file, not both")
	case len(args) > 0:
		lines = args
	default:
		var r io.Reader = cmd.InOrStdin()
		if path != "" && path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("open input: %w", err)
			}
			defer f.Close()
			r = f
		}
		var err error
		if lines, err = scanLines(r); err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
	}

	if split {
		return text.SplitSentences(strings.Join(lines, " ")), nil
	}
	return lines, nil
}

// scanLines returns the trimmed, non-blank lines of r.
func scanLines(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, scanner.Err()
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{evaluateCmd, analyzeCmd, simpleCmd} {
		c.Flags().StringP("file", "f", "", `Read sentences from a file ("-" for stdin)`)
		c.Flags().Bool("split", false, "Split the input into sentences instead of reading one per line")
		c.Flags().Bool("json", false, "Print the result as JSON")
		addEngineFlags(c)
	}
}
