package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/fluentcheck/internal/evaluator"
	"github.com/abhisek/fluentcheck/internal/interactive"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Type sentences and see their evaluation in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		return interactive.Run(interactive.Options{
			Evaluate: e.evaluator.Evaluate,
			OnResult: func(_ []string, res evaluator.Result) error {
				_, err := e.save(context.WithoutCancel(ctx), res)
				return err
			},
		})
	},
}

func init() {
	addEngineFlags(interactiveCmd)
}
