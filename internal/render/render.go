// Package render projects an analysis result into Markdown artifacts.
// Both projections are pure functions of their input and produce
// byte-identical output across runs, aside from the generation
// timestamp embedded in the knowledge bank header.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fyrsmithlabs/promptbank/internal/analyze"
)

const (
	maxExamplesPerPattern = 3
	maxExampleLength      = 100
)

// confidenceGlyph maps a confidence tier to its marker. Unrecognized
// tiers render with the neutral marker.
func confidenceGlyph(c analyze.Confidence) string {
	switch c {
	case analyze.ConfidenceHigh:
		return "🟢"
	case analyze.ConfidenceMedium:
		return "🟡"
	default:
		return "⚪"
	}
}

// KnowledgeBank renders the full knowledge bank. It includes every
// pattern that is approved or still unreviewed — unreviewed patterns
// are shown optimistically so the artifact stays useful before a full
// review pass completes. Only explicit rejections are excluded.
func KnowledgeBank(result *analyze.AnalysisResult, now time.Time) string {
	var lines []string

	lines = append(lines,
		"# My Coding Assistant Patterns",
		"",
		fmt.Sprintf("> Auto-generated from %d sessions", result.SessionsAnalyzed),
		fmt.Sprintf("> %d prompts analyzed", result.TotalPromptsAnalyzed),
		fmt.Sprintf("> Last updated: %s", now.Format("2006-01-02 15:04")),
		"",
	)

	var included []*analyze.Pattern
	for _, p := range result.Patterns {
		if p.Approved == nil || *p.Approved {
			included = append(included, p)
		}
	}

	if len(included) == 0 {
		lines = append(lines, "*No patterns discovered yet. Run more sessions to build your knowledge bank.*")
		return strings.Join(lines, "\n")
	}

	byCategory := groupByCategory(included)

	// Category lookup merges both sources at render time; a category in
	// neither falls back to its raw label with no description.
	descriptions := make(map[string]string, len(analyze.PredefinedCategories)+len(result.CustomCategories))
	for name, desc := range analyze.PredefinedCategories {
		descriptions[name] = desc
	}
	for name, desc := range result.CustomCategories {
		descriptions[name] = desc
	}

	for _, category := range orderedCategories(byCategory) {
		patterns := byCategory[category]

		lines = append(lines, fmt.Sprintf("## %s", categoryTitle(category)))
		if desc := descriptions[category]; desc != "" {
			lines = append(lines, fmt.Sprintf("*%s*", desc))
		}
		lines = append(lines, "")

		sort.SliceStable(patterns, func(i, j int) bool {
			return patterns[i].Confidence.Rank() < patterns[j].Confidence.Rank()
		})

		for _, pattern := range patterns {
			lines = append(lines, fmt.Sprintf("- **%s** %s", pattern.Summary, confidenceGlyph(pattern.Confidence)))
			examples := pattern.Examples
			if len(examples) > maxExamplesPerPattern {
				examples = examples[:maxExamplesPerPattern]
			}
			for _, example := range examples {
				if len(example) > maxExampleLength {
					example = example[:maxExampleLength-3] + "..."
				}
				lines = append(lines, fmt.Sprintf("  - _%q_", example))
			}
			lines = append(lines, "")
		}
	}

	lines = append(lines,
		"---",
		"",
		"**Confidence:** 🟢 High (3+ occurrences) | 🟡 Medium (2 occurrences) | ⚪ Low (inferred)",
	)

	return strings.Join(lines, "\n")
}

// PreferenceFile renders the compact artifact suitable for dropping
// into a project root: only approved high-confidence patterns,
// summary-only, categories in encounter order.
func PreferenceFile(result *analyze.AnalysisResult) string {
	lines := []string{
		"# Project Preferences",
		"",
		"<!-- Auto-generated from coding assistant session analysis -->",
		"",
	}

	var included []*analyze.Pattern
	for _, p := range result.Patterns {
		if p.Approved != nil && *p.Approved && p.Confidence == analyze.ConfidenceHigh {
			included = append(included, p)
		}
	}

	if len(included) == 0 {
		lines = append(lines, "*No high-confidence patterns discovered yet.*")
		return strings.Join(lines, "\n")
	}

	var order []string
	byCategory := make(map[string][]*analyze.Pattern)
	for _, p := range included {
		if _, ok := byCategory[p.Category]; !ok {
			order = append(order, p.Category)
		}
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	for _, category := range order {
		lines = append(lines, fmt.Sprintf("## %s", categoryTitle(category)), "")
		for _, pattern := range byCategory[category] {
			lines = append(lines, fmt.Sprintf("- %s", pattern.Summary))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// WriteFile writes rendered content to path, creating parent
// directories as needed.
func WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}

// groupByCategory buckets patterns by their category label, preserving
// stored order within each bucket.
func groupByCategory(patterns []*analyze.Pattern) map[string][]*analyze.Pattern {
	grouped := make(map[string][]*analyze.Pattern)
	for _, p := range patterns {
		grouped[p.Category] = append(grouped[p.Category], p)
	}
	return grouped
}

// orderedCategories lists the populated categories: predefined ones in
// their fixed declared order, then everything else alphabetically.
func orderedCategories(byCategory map[string][]*analyze.Pattern) []string {
	var ordered []string
	for _, name := range analyze.PredefinedCategoryOrder {
		if _, ok := byCategory[name]; ok {
			ordered = append(ordered, name)
		}
	}

	var custom []string
	for name := range byCategory {
		if !analyze.IsPredefinedCategory(name) {
			custom = append(custom, name)
		}
	}
	sort.Strings(custom)

	return append(ordered, custom...)
}

// categoryTitle formats a snake_case category key as a section title.
func categoryTitle(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
