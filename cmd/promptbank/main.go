// Package main implements the promptbank CLI: it mines recorded
// coding-assistant session transcripts for recurring user preferences
// and turns them into a reviewable knowledge bank.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/promptbank/internal/config"
	"github.com/fyrsmithlabs/promptbank/internal/logging"
)

var (
	// persistent flags
	flagConfig   string
	flagRoot     string
	flagLimit    int
	flagLogLevel string

	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "promptbank",
	Short: "Mine coding-assistant transcripts for your recurring preferences",
	Long: `promptbank extracts the prompts you have given a coding assistant,
sends them through model-based pattern discovery, and builds a
human-reviewed knowledge bank of your preferences.

Typical flow:
  promptbank stats              # what's in the corpus
  promptbank analyze            # discover patterns (needs ANTHROPIC_API_KEY)
  promptbank review             # accept/reject discovered patterns
  promptbank render             # write the Markdown artifacts`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default ~/.config/promptbank/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "Projects root containing session transcripts")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", -1, "Maximum sessions to process (0 = all)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(renderCmd)
}

// loadConfig merges file/env config with command-line overrides and
// builds the logger.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	if flagRoot != "" {
		cfg.ProjectsRoot = flagRoot
	}
	if flagLimit >= 0 {
		cfg.SessionLimit = flagLimit
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
