package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/promptbank/internal/analyze"
	"github.com/fyrsmithlabs/promptbank/internal/extract"
)

var (
	// analyze command flags
	anBatchSize int
	anMinLength int
	anModel     string
	anSnapshot  string
)

func init() {
	analyzeCmd.Flags().IntVar(&anBatchSize, "batch-size", 0, "Prompts per model call (default from config)")
	analyzeCmd.Flags().IntVar(&anMinLength, "min-length", 0, "Minimum prompt length for analysis (default from config)")
	analyzeCmd.Flags().StringVar(&anModel, "model", "", "Model to use for analysis (default from config)")
	analyzeCmd.Flags().StringVar(&anSnapshot, "output", "", "Snapshot path for the analysis result (default from config)")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run model-based pattern discovery over the prompt corpus",
	Long: `Collect prompts from all sessions, batch them, and submit each
batch to the model for preference-pattern discovery. The merged result
is persisted as a JSON snapshot for later review.

Requires ANTHROPIC_API_KEY in the environment.

Examples:
  promptbank analyze
  promptbank analyze --limit 100 --batch-size 50
  promptbank analyze --output ./analysis.json`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if anBatchSize > 0 {
		cfg.BatchSize = anBatchSize
	}
	if anMinLength > 0 {
		cfg.MinPromptLength = anMinLength
	}
	if anModel != "" {
		cfg.Model = anModel
	}
	if anSnapshot != "" {
		cfg.SnapshotPath = anSnapshot
	}

	// Credential check happens before any extraction or batch work so a
	// misconfigured environment fails immediately, not mid-run.
	apiKey, err := analyze.APIKeyFromEnv()
	if err != nil {
		return err
	}

	collector := extract.NewCollector(logger)
	prompts, err := collector.CollectForAnalysis(cfg.ProjectsRoot, cfg.SessionLimit, cfg.MinPromptLength)
	if err != nil {
		return fmt.Errorf("collecting prompts: %w", err)
	}
	if len(prompts) == 0 {
		fmt.Println("No prompts found to analyze.")
		return nil
	}
	fmt.Printf("Collected %d prompts for analysis\n", len(prompts))

	client, err := analyze.NewAnthropicClient(analyze.ClientConfig{
		APIKey: apiKey,
		Model:  cfg.Model,
	})
	if err != nil {
		return err
	}

	analyzer := analyze.NewAnalyzer(client, logger, analyze.WithBatchSize(cfg.BatchSize))
	result, err := analyzer.AnalyzeAll(cmd.Context(), prompts, func(current, total int) {
		fmt.Printf("Analyzing batch %d/%d...\n", current, total)
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := result.Save(cfg.SnapshotPath); err != nil {
		return err
	}

	logger.Info("analysis snapshot written",
		zap.String("path", cfg.SnapshotPath),
		zap.Int("patterns", len(result.Patterns)))
	fmt.Fprintf(os.Stdout, "Discovered %d patterns across %d sessions; saved to %s\n",
		len(result.Patterns), result.SessionsAnalyzed, cfg.SnapshotPath)
	fmt.Println("Next: promptbank review")
	return nil
}
