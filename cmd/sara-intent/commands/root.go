package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/miguelAagelcruzvargas/sara-intent/cmd/sara-intent/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Set by the root command before any subcommand runs
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sara-intent",
	Short: "Hybrid intent classifier for Spanish voice commands",
	Long: `sara-intent - classify Spanish voice commands into assistant intents.

Each utterance runs through a cascade:
  pattern   fixed regular expressions for the most frequent commands
  ml        nearest corpus example by embedding similarity
  ai        an OpenAI-compatible chat model, when enabled
  fallback  CONVERSACION with the raw text

Configuration is read from sara-intent.yaml in the working directory or
~/.config/sara, then from SARA_* environment variables. A .env file in the
working directory is loaded first.

Examples:
  sara-intent classify "sube el volumen" "cuánto es 50 por 3"
  echo "abre chrome" | sara-intent classify
  sara-intent warm --verbose`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default sara-intent.yaml)")
}

func setup(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction(zap.IncreaseLevel(zap.WarnLevel))
	}
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	cfg, err = config.Load(configPath)
	return err
}
