package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/promptbank/internal/analyze"
	"github.com/fyrsmithlabs/promptbank/internal/render"
)

var (
	// render command flags
	rdSnapshot string
	rdBank     string
	rdPrefs    string
	rdStdout   bool
)

func init() {
	renderCmd.Flags().StringVar(&rdSnapshot, "state", "", "Snapshot path to render from (default from config)")
	renderCmd.Flags().StringVar(&rdBank, "bank", "", "Knowledge bank output path (default from config)")
	renderCmd.Flags().StringVar(&rdPrefs, "preferences", "", "Compact preference file output path (default from config)")
	renderCmd.Flags().BoolVar(&rdStdout, "stdout", false, "Print the knowledge bank to stdout instead of writing files")
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the knowledge bank and compact preference file",
	Long: `Project the reviewed analysis result into two Markdown artifacts:
the full knowledge bank (approved and not-yet-reviewed patterns,
grouped by category) and a compact preference file (approved
high-confidence patterns only, suitable for a project root).

Examples:
  promptbank render
  promptbank render --bank ./KNOWLEDGE.md --preferences ./PREFERENCES.md
  promptbank render --stdout`,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if rdSnapshot != "" {
		cfg.SnapshotPath = rdSnapshot
	}
	if rdBank != "" {
		cfg.BankPath = rdBank
	}
	if rdPrefs != "" {
		cfg.PreferencesPath = rdPrefs
	}

	result, err := analyze.LoadAnalysisResult(cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("loading snapshot (run 'promptbank analyze' first): %w", err)
	}

	bank := render.KnowledgeBank(result, time.Now())
	prefs := render.PreferenceFile(result)

	if rdStdout {
		fmt.Fprintln(os.Stdout, bank)
		return nil
	}

	if err := render.WriteFile(cfg.BankPath, bank); err != nil {
		return err
	}
	if err := render.WriteFile(cfg.PreferencesPath, prefs); err != nil {
		return err
	}

	fmt.Printf("Knowledge bank written to %s\n", cfg.BankPath)
	fmt.Printf("Preference file written to %s\n", cfg.PreferencesPath)
	return nil
}
