// Package review walks a human through the patterns the analyzer
// discovered. The engine owns the approval state machine; the terminal
// widgets sit behind the Prompter interface so the state machine is
// testable without a TTY.
//
// Approval transitions: unset → true (accept), unset → false (reject),
// unset → unset (skip, edit). Accept and reject are terminal; a pattern
// is never deleted, so rejections stay visible as audit history.
package review

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/promptbank/internal/analyze"
)

// ErrCancelled is returned by a Prompter when the user declines to
// choose. The engine treats it identically to an explicit save.
var ErrCancelled = errors.New("review cancelled")

// Review actions.
const (
	actionAccept   = "accept"
	actionReject   = "reject"
	actionEdit     = "edit"
	actionCategory = "category"
	actionSkip     = "skip"
	actionSave     = "save"

	customCategoryChoice = "(custom)"
)

// Choice is one selectable option.
type Choice struct {
	Label string
	Value string
}

// Prompter abstracts the interactive terminal widgets.
type Prompter interface {
	// Select asks the user to pick one choice and returns its value.
	Select(title string, choices []Choice) (string, error)
	// Input asks the user for a line of text, pre-filled with initial.
	Input(title, initial string) (string, error)
}

// Engine drives an interactive review session over an AnalysisResult.
type Engine struct {
	result    *analyze.AnalysisResult
	prompter  Prompter
	logger    *zap.Logger
	out       io.Writer
	statePath string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithOutput redirects the engine's card and summary output.
func WithOutput(w io.Writer) EngineOption {
	return func(e *Engine) { e.out = w }
}

// NewEngine creates a review engine. statePath may be empty to skip
// persistence; a nil logger is replaced with a nop.
func NewEngine(result *analyze.AnalysisResult, prompter Prompter, statePath string, logger *zap.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		result:    result,
		prompter:  prompter,
		logger:    logger,
		out:       os.Stdout,
		statePath: statePath,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run presents every unreviewed pattern in stored order and applies the
// user's decisions. Save (or prompter cancellation) persists the entire
// result and halts, preserving order and all prior decisions for later
// resumption.
func (e *Engine) Run() error {
	total := 0
	for _, p := range e.result.Patterns {
		if !p.Reviewed() {
			total++
		}
	}
	if total == 0 {
		fmt.Fprintln(e.out, "All patterns have been reviewed.")
		return nil
	}

	fmt.Fprintf(e.out, "\n%d patterns to review\n\n", total)

	seen := 0
	for _, pattern := range e.result.Patterns {
		if pattern.Reviewed() {
			continue
		}
		seen++
		e.printCard(pattern, seen, total)

		if done, err := e.reviewOne(pattern); err != nil {
			return err
		} else if done {
			break
		}
	}

	if err := e.save(); err != nil {
		return err
	}

	e.printSummary()
	return nil
}

// reviewOne runs the action loop for a single pattern. It returns
// done=true when the session should halt (save or cancellation).
// Edit and category changes loop back so the same pattern can still be
// accepted or rejected afterwards.
func (e *Engine) reviewOne(pattern *analyze.Pattern) (bool, error) {
	for {
		action, err := e.prompter.Select("What would you like to do?", []Choice{
			{Label: "Accept", Value: actionAccept},
			{Label: "Reject", Value: actionReject},
			{Label: "Edit summary", Value: actionEdit},
			{Label: "Change category", Value: actionCategory},
			{Label: "Skip (review later)", Value: actionSkip},
			{Label: "Save & exit", Value: actionSave},
		})
		if errors.Is(err, ErrCancelled) {
			return true, nil
		}
		if err != nil {
			return false, err
		}

		switch action {
		case actionSave:
			return true, nil
		case actionAccept:
			approved := true
			pattern.Approved = &approved
			fmt.Fprintln(e.out, "  accepted")
			return false, nil
		case actionReject:
			approved := false
			pattern.Approved = &approved
			fmt.Fprintln(e.out, "  rejected")
			return false, nil
		case actionEdit:
			if err := e.editSummary(pattern); err != nil {
				return false, err
			}
		case actionCategory:
			if err := e.changeCategory(pattern); err != nil {
				return false, err
			}
		case actionSkip:
			return false, nil
		}
	}
}

// editSummary rewrites the pattern summary. It never advances approval.
func (e *Engine) editSummary(pattern *analyze.Pattern) error {
	summary, err := e.prompter.Input("New summary:", pattern.Summary)
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}
	if summary != "" {
		pattern.Summary = summary
		fmt.Fprintf(e.out, "  updated: %s\n", summary)
	}
	return nil
}

// changeCategory reassigns the pattern's category. A new custom
// category entered here is merged into the result immediately so it is
// offered as a choice for subsequent patterns in the same session.
func (e *Engine) changeCategory(pattern *analyze.Pattern) error {
	choices := make([]Choice, 0, len(analyze.PredefinedCategoryOrder)+len(e.result.CustomCategories)+1)
	for _, name := range analyze.PredefinedCategoryOrder {
		choices = append(choices, Choice{Label: categoryTitle(name), Value: name})
	}
	for _, name := range sortedKeys(e.result.CustomCategories) {
		choices = append(choices, Choice{Label: categoryTitle(name), Value: name})
	}
	choices = append(choices, Choice{Label: customCategoryChoice, Value: customCategoryChoice})

	selected, err := e.prompter.Select("Select category:", choices)
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	if selected == customCategoryChoice {
		name, err := e.prompter.Input("Custom category name:", "")
		if errors.Is(err, ErrCancelled) || name == "" {
			return nil
		}
		if err != nil {
			return err
		}
		desc, err := e.prompter.Input(fmt.Sprintf("Description for %q:", name), "")
		if err != nil && !errors.Is(err, ErrCancelled) {
			return err
		}
		if desc != "" {
			e.result.CustomCategories[name] = desc
		}
		selected = name
	}

	pattern.Category = selected
	fmt.Fprintf(e.out, "  category changed to: %s\n", selected)
	return nil
}

// save persists the entire result, not just reviewed items.
func (e *Engine) save() error {
	if e.statePath == "" {
		return nil
	}
	if err := e.result.Save(e.statePath); err != nil {
		return err
	}
	e.logger.Info("review progress saved", zap.String("path", e.statePath))
	fmt.Fprintf(e.out, "\nProgress saved to %s\n", e.statePath)
	return nil
}

// printCard renders one pattern for review.
func (e *Engine) printCard(pattern *analyze.Pattern, seen, total int) {
	fmt.Fprintf(e.out, "\n--- Pattern %d/%d ---\n", seen, total)
	fmt.Fprintf(e.out, "\n%s\n", summaryStyle.Render(pattern.Summary))
	fmt.Fprintf(e.out, "  Category:   %s\n", categoryTitle(pattern.Category))
	fmt.Fprintf(e.out, "  Confidence: %s\n", string(pattern.Confidence))
	if len(pattern.Examples) > 0 {
		fmt.Fprintln(e.out, "  Examples:")
		for _, example := range truncateExamples(pattern.Examples, 3, 80) {
			fmt.Fprintf(e.out, "    %s\n", exampleStyle.Render(fmt.Sprintf("%q", example)))
		}
	}
	fmt.Fprintln(e.out)
}

// printSummary prints the per-state counts at session end.
func (e *Engine) printSummary() {
	var accepted, rejected, pending int
	for _, p := range e.result.Patterns {
		switch {
		case p.Approved == nil:
			pending++
		case *p.Approved:
			accepted++
		default:
			rejected++
		}
	}
	fmt.Fprintf(e.out, "\nReview summary: %d accepted, %d rejected, %d pending\n", accepted, rejected, pending)
}

// QuickApproveAll accepts every unreviewed pattern. Idempotent:
// patterns that already carry a decision are untouched.
func QuickApproveAll(result *analyze.AnalysisResult) {
	for _, p := range result.Patterns {
		if p.Approved == nil {
			approved := true
			p.Approved = &approved
		}
	}
}

// QuickApproveHighConfidence accepts only unreviewed high-confidence
// patterns; all others stay pending. Idempotent.
func QuickApproveHighConfidence(result *analyze.AnalysisResult) {
	for _, p := range result.Patterns {
		if p.Approved == nil && p.Confidence == analyze.ConfidenceHigh {
			approved := true
			p.Approved = &approved
		}
	}
}

// categoryTitle formats a snake_case category key as a display title.
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

// truncateExamples limits count and per-example length.
func truncateExamples(examples []string, max, width int) []string {
	if len(examples) > max {
		examples = examples[:max]
	}
	out := make([]string, 0, len(examples))
	for _, ex := range examples {
		if len(ex) > width {
			ex = ex[:width-3] + "..."
		}
		out = append(out, ex)
	}
	return out
}

// sortedKeys returns map keys in sorted order for stable choice lists.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
