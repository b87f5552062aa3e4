package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abhisek/fluentcheck/internal/config"
	"github.com/abhisek/fluentcheck/internal/logging"
	"github.com/abhisek/fluentcheck/internal/store"
)

// settings and logger are loaded once per invocation by the root
// PersistentPreRunE.
var (
	settings config.Config
	logger   = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "fluentcheck",
	Short: "Estimate English writing proficiency",
	Long: `fluentcheck scores a set of English sentences for grammar, vocabulary,
sentence complexity and readability, and estimates a CEFR level (A1-C2).

Grammar errors come from an LLM classifier when one is configured
(FLUENTCHECK_LLM_PROVIDER or a vendor API key such as OPENAI_API_KEY) and
from built-in rules otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.LogLevel = lvl
		}
		settings = cfg
		logger = logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
		return nil
	},
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FLUENTCHECK_DB)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to a .env file to load")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides FLUENTCHECK_LOG_LEVEL)")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(simpleCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FLUENTCHECK_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if settings.DBPath != "" {
		return settings.DBPath, store.EnsureDir(settings.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the database chosen by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
