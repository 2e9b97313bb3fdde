package analyze

// Merge folds per-batch raw results into one structurally unified
// result. Batches flagged with a parse error are skipped entirely; no
// partial pattern extraction happens from malformed replies. Patterns
// are kept in batch order with no cross-batch deduplication: collapsing
// semantically similar patterns needs judgment this layer does not
// attempt, and the confidence tiers assume the model aggregates counts
// within a batch only.
//
// Aggregate counts are not set here; they are computed by the caller
// from the original input prompt list.
func Merge(results []BatchResult) *AnalysisResult {
	merged := NewAnalysisResult()

	for _, result := range results {
		if result.Failed() {
			continue
		}

		for _, raw := range result.Patterns {
			confidence := Confidence(raw.Confidence)
			if raw.Confidence == "" {
				// The merger never invents confidence beyond what the
				// model reported.
				confidence = ConfidenceLow
			}
			category := raw.Category
			if category == "" {
				category = CategoryGeneral
			}
			merged.Patterns = append(merged.Patterns, &Pattern{
				Summary:    raw.Summary,
				Examples:   raw.Examples,
				Confidence: confidence,
				Category:   category,
				Approved:   nil,
			})
		}

		// Last write wins on duplicate custom category names across
		// batches; no conflict detection.
		for _, cat := range result.CustomCategories {
			if cat.Name == "" {
				continue
			}
			merged.CustomCategories[cat.Name] = cat.Description
		}
	}

	return merged
}
