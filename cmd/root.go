package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/dsai/internal/config"
	"github.com/abhisek/dsai/internal/store"
)

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "dsai",
	Short: "DSA question assistant",
	Long: "dsai answers data structures and algorithms questions with a language model, " +
		"generates practice problems, and rejects questions outside the domain.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides DSAI_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DSAI_DB env var)")
	rootCmd.PersistentFlags().String("topics", "", "Path to a YAML topic catalog (overrides DSAI_TOPICS_FILE env var)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: ollama, anthropic, openai, gemini, openrouter, mock, auto")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env, the config file and flag overrides, then builds the
// logger. Flags win over the environment, which wins over the file.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("db"); v != "" {
		loaded.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("topics"); v != "" {
		loaded.TopicsFile = v
	}
	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		loaded.LLM.Provider = v
	}
	cfg = loaded

	verbose, _ := cmd.Flags().GetBool("verbose")
	l, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	logger = l
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zc.Build()
}

// resolveDBPath returns the database path using --db flag or DSAI_DB
// (both land in cfg.DBPath), then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
