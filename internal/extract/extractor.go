package extract

import (
	"strings"

	"github.com/fyrsmithlabs/promptbank/internal/classify"
	"github.com/fyrsmithlabs/promptbank/internal/session"
)

// minPromptLength is the validity floor: anything shorter is a bare
// confirmation ("ok", "yes"), not an authored prompt.
const minPromptLength = 5

// ExtractPrompts filters a session's log entries down to classified
// user prompts. Skipped outright: non-user entries, content lists made
// entirely of tool results, empty or sub-5-character text, and text
// opening with a markup tag (injected system content, not authored).
func ExtractPrompts(entries []session.LogEntry) []PromptRecord {
	var prompts []PromptRecord

	for _, entry := range entries {
		if entry.Type != "user" {
			continue
		}

		if entry.Structured && allToolResults(entry.Blocks) {
			continue
		}

		text := entryText(entry)
		if text == "" || len(text) < minPromptLength {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(text), "<") {
			continue
		}

		prompts = append(prompts, PromptRecord{
			Text:      text,
			Type:      classify.Classify(text),
			Timestamp: entry.Timestamp,
		})
	}

	return prompts
}

// extractFromFile parses and extracts a single session. Any parse
// failure is recovered as zero prompts for that session.
func extractFromFile(path string) []PromptRecord {
	entries, err := session.ParseFile(path)
	if err != nil {
		return nil
	}
	return ExtractPrompts(entries)
}

// allToolResults reports whether every block in a non-empty content
// list is a tool result. Such entries are machine-injected.
func allToolResults(blocks []session.ContentBlock) bool {
	if len(blocks) == 0 {
		return false
	}
	for _, b := range blocks {
		if b.Type != "tool_result" {
			return false
		}
	}
	return true
}

// entryText flattens an entry's content into plain text. Structured
// content contributes only its text blocks, joined by newlines.
func entryText(entry session.LogEntry) string {
	if !entry.Structured {
		return entry.Text
	}

	var parts []string
	for _, b := range entry.Blocks {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}
