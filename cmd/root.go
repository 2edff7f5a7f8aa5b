package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/config"
	"github.com/abhisek/edupath/internal/logger"
	"github.com/abhisek/edupath/internal/store"
)

// cfg is the configuration loaded before every command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "edupath",
	Short: "SHS program guidance for junior high students",
	Long: `edupath helps junior high school students in Ghana choose a Senior High School
program. Take the quiz, chat with EduBot, browse study tips and more.

LLM answers are optional. Set llm.provider in config.yaml, or one of
GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY,
to let EduBot answer with a language model.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(config.Options{File: file})
		if err != nil {
			return err
		}
		cfg = loaded
		if err := logger.Initialize(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger.Get().Debug("starting",
			zap.String("command", cmd.CommandPath()),
			zap.String("config", cfg.File),
			zap.String("version", version),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml (default: search XDG config dirs and the current directory)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EDUPATH_DB env var)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(tipsCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the db config key (EDUPATH_DB), then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(logger.Named("store")))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
