package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"codechat/config"
	"codechat/internal/observability"
	"codechat/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	logger  zerolog.Logger
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "codechat",
	Short: "Programming chatbot - answers beginner questions about Python, Java and C",
	Long: `codechat answers free-text programming questions. Each question goes through
language comparisons, language syntax facts and topic keywords, and falls back
to a TF-IDF classifier when no rule applies.

Example usage:
  codechat ask -q "python for loop"      # One-shot answer
  codechat chat                          # Interactive chat
  codechat serve --addr :8080            # HTTP API
  codechat mcp                           # MCP server on stdio`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		// a missing .env file is fine
		_ = godotenv.Load()

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ApplyEnv(); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		return setupLogger(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logFile != nil {
			return logFile.Close()
		}
		return nil
	},
}

// setupLogger writes logs to the configured file, or to stderr. The chat
// screen owns the terminal, so it discards logs unless a file is configured.
func setupLogger(cmd *cobra.Command) error {
	var out io.Writer = os.Stderr
	if cfg.Logging.File != "" {
		f, err := observability.OpenLogFile(cfg.Logging.File)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		out = f
	} else if cmd.Name() == "chat" {
		out = io.Discard
	}

	logger = observability.NewLogger(observability.LogConfig{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      out,
		ServiceName: "codechat",
	})
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./codechat.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

// buildEngine provisions data and trains the resolver for a command.
func buildEngine(ctx context.Context, progress io.Writer) (*usecase.Engine, error) {
	return usecase.NewEngine(ctx, GetConfig(), usecase.EngineOptions{
		RootDir:  GetRootDir(),
		Progress: progress,
	}, logger)
}
