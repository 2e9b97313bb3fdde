package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/promptbank/internal/analyze"
	"github.com/fyrsmithlabs/promptbank/internal/review"
)

var (
	// review command flags
	rvSnapshot  string
	rvAcceptAll bool
	rvHighOnly  bool
)

func init() {
	reviewCmd.Flags().StringVar(&rvSnapshot, "state", "", "Snapshot path to review (default from config)")
	reviewCmd.Flags().BoolVar(&rvAcceptAll, "yes", false, "Accept every unreviewed pattern without prompting")
	reviewCmd.Flags().BoolVar(&rvHighOnly, "high-only", false, "Accept only unreviewed high-confidence patterns")
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review discovered patterns and record approval decisions",
	Long: `Walk through unreviewed patterns one at a time, accepting,
rejecting, editing, or recategorizing each. Progress is saved to the
snapshot on exit, so a review session can be resumed later.

Examples:
  promptbank review
  promptbank review --yes          # accept everything pending
  promptbank review --high-only    # accept only high-confidence patterns`,
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if rvSnapshot != "" {
		cfg.SnapshotPath = rvSnapshot
	}

	result, err := analyze.LoadAnalysisResult(cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("loading snapshot (run 'promptbank analyze' first): %w", err)
	}

	if rvAcceptAll || rvHighOnly {
		if rvAcceptAll {
			review.QuickApproveAll(result)
		} else {
			review.QuickApproveHighConfidence(result)
		}
		if err := result.Save(cfg.SnapshotPath); err != nil {
			return err
		}
		fmt.Printf("Approval state saved to %s\n", cfg.SnapshotPath)
		fmt.Println("Next: promptbank render")
		return nil
	}

	engine := review.NewEngine(result, review.NewTerminalPrompter(), cfg.SnapshotPath, logger)
	if err := engine.Run(); err != nil {
		return err
	}
	fmt.Println("Next: promptbank render")
	return nil
}
