// Package extract turns raw session transcripts into classified prompt
// records and flattens them into an analysis-ready corpus. Extraction
// is best-effort: a corrupt session yields zero prompts and never
// aborts the corpus walk.
package extract

import (
	"time"

	"github.com/fyrsmithlabs/promptbank/internal/classify"
)

// PromptRecord is a single user-authored prompt. Immutable once
// created by the extractor.
type PromptRecord struct {
	Text      string              `json:"text"`
	Type      classify.PromptType `json:"type"`
	Timestamp string              `json:"timestamp"`
}

// SessionBundle groups the prompts extracted from one session file.
// Sessions with no surviving prompts are discarded before bundling.
type SessionBundle struct {
	SessionID   string         `json:"session_id"`
	Project     string         `json:"project"`
	SessionPath string         `json:"session_path"`
	MTime       time.Time      `json:"mtime"`
	Prompts     []PromptRecord `json:"prompts"`
}

// AnalysisPrompt is a flattened prompt record carrying just enough
// provenance for post-hoc counting. Session grouping is dropped
// intentionally; the batch analyzer only needs flat records.
type AnalysisPrompt struct {
	Text      string              `json:"text"`
	Type      classify.PromptType `json:"type"`
	Project   string              `json:"project"`
	SessionID string              `json:"session_id"`
}

// CorpusStats summarizes a prompt corpus without invoking analysis.
type CorpusStats struct {
	TotalSessions int                         `json:"total_sessions"`
	TotalPrompts  int                         `json:"total_prompts"`
	ByType        map[classify.PromptType]int `json:"by_type"`
	Projects      []string                    `json:"projects"`
}
