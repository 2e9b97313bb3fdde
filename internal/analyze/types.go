// Package analyze runs batched model analysis over an extracted prompt
// corpus and folds the per-batch responses into a single reviewable
// result. The model boundary is deliberately narrow: a batch of
// formatted prompts goes in, free text expected to contain JSON comes
// out, and anything unparseable becomes a per-batch sentinel rather
// than a failure of the whole run.
package analyze

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Common errors for analysis operations.
var (
	// ErrMissingAPIKey means the credential environment variable is not
	// set. Raised before any batch work begins.
	ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY environment variable not set")

	// ErrNoClient means analysis was invoked without a configured model
	// client. Distinct from the credential error.
	ErrNoClient = errors.New("model client not configured")
)

// Confidence is the model-assigned strength tier for a pattern.
type Confidence string

const (
	// ConfidenceHigh means the pattern appeared 3+ times explicitly.
	ConfidenceHigh Confidence = "high"

	// ConfidenceMedium means the pattern appeared twice or implicitly.
	ConfidenceMedium Confidence = "medium"

	// ConfidenceLow means the pattern was inferred from a single occurrence.
	ConfidenceLow Confidence = "low"
)

// Rank orders confidence tiers for rendering: high sorts first,
// unrecognized values last.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 0
	case ConfidenceMedium:
		return 1
	case ConfidenceLow:
		return 2
	default:
		return 3
	}
}

// Pattern is a discovered, human-reviewable preference statement.
//
// Approved is tri-state: nil means not yet reviewed, true/false is the
// reviewer's decision. Patterns are never deleted; rejection is a
// state, not a removal, so the audit history survives repeated runs.
type Pattern struct {
	Summary    string     `json:"summary"`
	Examples   []string   `json:"examples"`
	Confidence Confidence `json:"confidence"`
	Category   string     `json:"category"`
	Approved   *bool      `json:"approved"`
}

// Reviewed reports whether an approval decision has been made.
func (p *Pattern) Reviewed() bool {
	return p.Approved != nil
}

// AnalysisResult is the sole unit of persisted state. It round-trips
// losslessly through its JSON snapshot, including each pattern's
// tri-state approval.
type AnalysisResult struct {
	Patterns             []*Pattern        `json:"patterns"`
	CustomCategories     map[string]string `json:"custom_categories"`
	TotalPromptsAnalyzed int               `json:"total_prompts_analyzed"`
	SessionsAnalyzed     int               `json:"sessions_analyzed"`
}

// NewAnalysisResult returns an empty result with initialized maps.
func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Patterns:         []*Pattern{},
		CustomCategories: map[string]string{},
	}
}

// Save writes the result snapshot as indented JSON, creating parent
// directories as needed.
func (r *AnalysisResult) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding analysis result: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// LoadAnalysisResult reads a snapshot written by Save.
func LoadAnalysisResult(path string) (*AnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var result AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if result.Patterns == nil {
		result.Patterns = []*Pattern{}
	}
	if result.CustomCategories == nil {
		result.CustomCategories = map[string]string{}
	}
	return &result, nil
}

// RawPattern is a pattern object as the model reported it, before
// defaulting and approval tracking are applied by the merger.
type RawPattern struct {
	Summary    string   `json:"summary"`
	Examples   []string `json:"examples"`
	Confidence string   `json:"confidence"`
	Category   string   `json:"category"`
}

// RawCategory is a custom-category object as the model reported it.
type RawCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BatchResult is the raw outcome of one batch call. Either the parsed
// payload is populated, or RawResponse/ParseError carry the undecodable
// reply so the run can continue without it.
type BatchResult struct {
	Patterns         []RawPattern  `json:"patterns,omitempty"`
	CustomCategories []RawCategory `json:"custom_categories,omitempty"`
	RawResponse      string        `json:"raw_response,omitempty"`
	ParseError       string        `json:"parse_error,omitempty"`
}

// Failed reports whether this batch's reply could not be parsed.
func (b BatchResult) Failed() bool {
	return b.ParseError != ""
}
