package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/promptbank/internal/classify"
	"github.com/fyrsmithlabs/promptbank/internal/extract"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the prompt corpus without running analysis",
	Long: `Summarize the prompt corpus: how many sessions and prompts were
found, the split between corrections, instructions, and general
prompts, and which projects contributed.

Examples:
  promptbank stats
  promptbank stats --root ~/.claude/projects --limit 50`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	collector := extract.NewCollector(logger)
	stats, err := collector.Stats(cfg.ProjectsRoot, cfg.SessionLimit)
	if err != nil {
		return fmt.Errorf("collecting stats: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Sessions:\t%d\n", stats.TotalSessions)
	fmt.Fprintf(w, "Prompts:\t%d\n", stats.TotalPrompts)
	for _, ptype := range []classify.PromptType{classify.TypeCorrection, classify.TypeInstruction, classify.TypeGeneral} {
		fmt.Fprintf(w, "  %s:\t%d\n", ptype, stats.ByType[ptype])
	}
	fmt.Fprintf(w, "Projects:\t%s\n", strings.Join(stats.Projects, ", "))
	return w.Flush()
}
