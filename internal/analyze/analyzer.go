package analyze

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/promptbank/internal/extract"
)

// DefaultBatchSize bounds how many prompts go into one model call.
const DefaultBatchSize = 100

// ProgressFunc is called as each batch is dispatched with the 1-based
// batch index and the total batch count. Advisory only: it must not
// affect control flow.
type ProgressFunc func(current, total int)

// Analyzer partitions a prompt corpus into batches and runs each
// through the model.
type Analyzer struct {
	client    LLMClient
	logger    *zap.Logger
	batchSize int
	runID     string
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithBatchSize overrides the default batch size.
func WithBatchSize(size int) AnalyzerOption {
	return func(a *Analyzer) {
		if size > 0 {
			a.batchSize = size
		}
	}
}

// NewAnalyzer creates an Analyzer. A nil logger is replaced with a nop.
func NewAnalyzer(client LLMClient, logger *zap.Logger, opts ...AnalyzerOption) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Analyzer{
		client:    client,
		logger:    logger,
		batchSize: DefaultBatchSize,
		runID:     uuid.New().String(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs every batch through the model in input order, one call
// in flight at a time. A reply that cannot be decoded becomes a
// sentinel BatchResult and the run continues; a transport-level error
// aborts the run, since a broken connection likely affects all
// remaining batches equally.
func (a *Analyzer) Analyze(ctx context.Context, prompts []extract.AnalysisPrompt, progress ProgressFunc) ([]BatchResult, error) {
	if a.client == nil {
		return nil, ErrNoClient
	}

	batches := batchPrompts(prompts, a.batchSize)
	results := make([]BatchResult, 0, len(batches))

	for i, batch := range batches {
		if progress != nil {
			progress(i+1, len(batches))
		}

		a.logger.Debug("dispatching batch",
			zap.String("run_id", a.runID),
			zap.Int("batch", i+1),
			zap.Int("total_batches", len(batches)),
			zap.Int("prompts", len(batch)))

		reply, err := a.client.Complete(ctx, discoverySystemPrompt, buildUserMessage(batch))
		if err != nil {
			return nil, err
		}

		result := decodeBatchReply(reply)
		if result.Failed() {
			a.logger.Warn("batch reply not parseable, keeping sentinel",
				zap.String("run_id", a.runID),
				zap.Int("batch", i+1),
				zap.String("parse_error", result.ParseError))
		}
		results = append(results, result)
	}

	return results, nil
}

// AnalyzeAll is the full discovery pipeline: batch, call, merge, and
// compute aggregate counts from the original input prompt list.
func (a *Analyzer) AnalyzeAll(ctx context.Context, prompts []extract.AnalysisPrompt, progress ProgressFunc) (*AnalysisResult, error) {
	results, err := a.Analyze(ctx, prompts, progress)
	if err != nil {
		return nil, err
	}

	merged := Merge(results)
	merged.TotalPromptsAnalyzed = len(prompts)
	merged.SessionsAnalyzed = countSessions(prompts)

	a.logger.Info("analysis complete",
		zap.String("run_id", a.runID),
		zap.Int("prompts", merged.TotalPromptsAnalyzed),
		zap.Int("sessions", merged.SessionsAnalyzed),
		zap.Int("patterns", len(merged.Patterns)))
	return merged, nil
}

// batchPrompts splits the corpus into contiguous batches of at most
// size, preserving input order. Batch boundaries do not respect
// session boundaries.
func batchPrompts(prompts []extract.AnalysisPrompt, size int) [][]extract.AnalysisPrompt {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var batches [][]extract.AnalysisPrompt
	for start := 0; start < len(prompts); start += size {
		end := start + size
		if end > len(prompts) {
			end = len(prompts)
		}
		batches = append(batches, prompts[start:end])
	}
	return batches
}

// countSessions counts distinct session identifiers in the corpus.
func countSessions(prompts []extract.AnalysisPrompt) int {
	seen := make(map[string]struct{})
	for _, p := range prompts {
		seen[p.SessionID] = struct{}{}
	}
	return len(seen)
}

// decodeBatchReply parses a model reply into a BatchResult. The reply
// is expected to contain a JSON object, possibly wrapped in a fenced
// code block. If the JSON is malformed, a repair pass is attempted;
// if that also fails the raw text and parse error are kept as a
// sentinel so the run can continue.
func decodeBatchReply(text string) BatchResult {
	candidate := extractFencedBlock(text)

	var result BatchResult
	err := json.Unmarshal([]byte(candidate), &result)
	if err == nil {
		return result
	}

	if repaired, repairErr := jsonrepair.JSONRepair(candidate); repairErr == nil {
		var repairedResult BatchResult
		if json.Unmarshal([]byte(repaired), &repairedResult) == nil {
			return repairedResult
		}
	}

	return BatchResult{RawResponse: text, ParseError: err.Error()}
}

// extractFencedBlock returns the innermost fenced code block content if
// the text embeds one, otherwise the text itself.
func extractFencedBlock(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(text)
}
