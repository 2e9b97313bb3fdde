package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/promptbank/internal/classify"
	"github.com/fyrsmithlabs/promptbank/internal/session"
)

func userEntry(text string) session.LogEntry {
	return session.LogEntry{Type: "user", Timestamp: "2025-01-01T10:00:00Z", Text: text}
}

func TestExtractPrompts(t *testing.T) {
	entries := []session.LogEntry{
		{Type: "assistant", Text: "I updated the file."},
		userEntry("wait, actually use camelCase instead"),
		userEntry("ok"), // below the 5-character floor
		userEntry(""),
		userEntry("<local-command-stdout>something</local-command-stdout>"),
		{
			Type:       "user",
			Structured: true,
			Blocks:     []session.ContentBlock{{Type: "tool_result"}, {Type: "tool_result"}},
		},
		userEntry("always run gofmt before committing"),
	}

	prompts := ExtractPrompts(entries)
	require.Len(t, prompts, 2)

	assert.Equal(t, "wait, actually use camelCase instead", prompts[0].Text)
	assert.Equal(t, classify.TypeCorrection, prompts[0].Type)
	assert.Equal(t, "2025-01-01T10:00:00Z", prompts[0].Timestamp)

	assert.Equal(t, classify.TypeInstruction, prompts[1].Type)
}

func TestExtractPromptsNeverEmitsShortText(t *testing.T) {
	entries := []session.LogEntry{
		userEntry("a"), userEntry("ab"), userEntry("abc"), userEntry("abcd"),
	}
	assert.Empty(t, ExtractPrompts(entries))
}

func TestExtractPromptsStructuredText(t *testing.T) {
	entries := []session.LogEntry{
		{
			Type:       "user",
			Structured: true,
			Blocks: []session.ContentBlock{
				{Type: "text", Text: "never use global state"},
				{Type: "tool_result"},
			},
		},
	}
	prompts := ExtractPrompts(entries)
	require.Len(t, prompts, 1, "mixed blocks are not a pure tool result")
	assert.Equal(t, "never use global state", prompts[0].Text)
	assert.Equal(t, classify.TypeInstruction, prompts[0].Type)
}

func TestExtractPromptsLeadingTag(t *testing.T) {
	entries := []session.LogEntry{
		userEntry("  <system-reminder>injected</system-reminder>"),
	}
	assert.Empty(t, ExtractPrompts(entries), "tag-prefixed content is system-injected")
}

func TestExtractFromFileCorrupt(t *testing.T) {
	// A missing file is the extreme case of a corrupt session: zero
	// prompts, no error surfaces.
	assert.Empty(t, extractFromFile("/does/not/exist.jsonl"))
}
