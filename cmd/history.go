package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/fluentcheck/internal/evaluator"
	"github.com/abhisek/fluentcheck/internal/report"
	"github.com/abhisek/fluentcheck/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past evaluations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.EvaluationRepo().List(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list evaluations: %w", err)
		}
		if asJSON(cmd) {
			return writeJSON(cmd.OutOrStdout(), records)
		}
		fmt.Fprint(cmd.OutOrStdout(), report.History(records))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the full report of a past evaluation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.EvaluationRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get evaluation: %w", err)
		}

		var res evaluator.Result
		if err := json.Unmarshal(rec.Payload, &res); err != nil {
			return fmt.Errorf("decode evaluation %s: %w", rec.ID, err)
		}
		if asJSON(cmd) {
			return writeJSON(cmd.OutOrStdout(), res)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Evaluation %s  %s  classifier: %s\n\n",
			rec.ID, rec.CreatedAt.Local().Format(timestampLayout), rec.Classifier)
		fmt.Fprint(out, report.Evaluation(res, report.DefaultWidth))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of evaluations to show")
	historyCmd.PersistentFlags().Bool("json", false, "Print the result as JSON")
	historyCmd.AddCommand(historyShowCmd)
}
