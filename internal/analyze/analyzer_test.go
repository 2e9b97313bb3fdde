package analyze

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/promptbank/internal/extract"
)

// fakeClient replays canned replies in call order and records the
// messages it was asked to complete.
type fakeClient struct {
	replies []string
	err     error
	calls   []string
}

func (f *fakeClient) Complete(_ context.Context, _ string, user string) (string, error) {
	f.calls = append(f.calls, user)
	if f.err != nil {
		return "", f.err
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func corpus(n int) []extract.AnalysisPrompt {
	prompts := make([]extract.AnalysisPrompt, 0, n)
	for i := 0; i < n; i++ {
		prompts = append(prompts, extract.AnalysisPrompt{
			Text:      fmt.Sprintf("prompt %d", i),
			Type:      "general",
			Project:   "webapp",
			SessionID: fmt.Sprintf("sess-%d", i%3),
		})
	}
	return prompts
}

const validReply = `{
	"patterns": [
		{"summary": "Prefers tabs", "examples": ["use tabs"], "confidence": "high", "category": "coding_style"}
	],
	"custom_categories": []
}`

func TestAnalyzeNoClient(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)
	_, err := analyzer.Analyze(context.Background(), corpus(1), nil)
	assert.ErrorIs(t, err, ErrNoClient)
}

func TestAnalyzeBatching(t *testing.T) {
	client := &fakeClient{replies: []string{validReply}}
	analyzer := NewAnalyzer(client, nil, WithBatchSize(10))

	var progress [][2]int
	results, err := analyzer.Analyze(context.Background(), corpus(25), func(cur, total int) {
		progress = append(progress, [2]int{cur, total})
	})
	require.NoError(t, err)

	assert.Len(t, results, 3, "25 prompts at batch size 10 makes 3 batches")
	assert.Len(t, client.calls, 3)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progress)

	// The last batch carries the remainder only.
	assert.Contains(t, client.calls[2], "Analyze these 5 user prompts")
	assert.Contains(t, client.calls[0], "[1] (general, webapp) prompt 0")
}

func TestAnalyzeTransportErrorAborts(t *testing.T) {
	boom := errors.New("connection reset")
	client := &fakeClient{err: boom}
	analyzer := NewAnalyzer(client, nil, WithBatchSize(10))

	_, err := analyzer.Analyze(context.Background(), corpus(25), nil)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, client.calls, 1, "no further batches after a transport failure")
}

func TestAnalyzeSentinelContinues(t *testing.T) {
	client := &fakeClient{replies: []string{
		validReply,
		"I could not find any patterns, sorry!",
		validReply,
	}}
	analyzer := NewAnalyzer(client, nil, WithBatchSize(1))

	results, err := analyzer.Analyze(context.Background(), corpus(3), nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.False(t, results[0].Failed())
	assert.True(t, results[1].Failed())
	assert.Equal(t, "I could not find any patterns, sorry!", results[1].RawResponse)
	assert.False(t, results[2].Failed())
}

func TestAnalyzeAllTotalsFromInput(t *testing.T) {
	// An unparseable middle batch must not shrink the aggregate counts.
	client := &fakeClient{replies: []string{validReply, "garbage", validReply}}
	analyzer := NewAnalyzer(client, nil, WithBatchSize(4))

	prompts := corpus(12) // sessions sess-0..sess-2
	result, err := analyzer.AnalyzeAll(context.Background(), prompts, nil)
	require.NoError(t, err)

	assert.Equal(t, 12, result.TotalPromptsAnalyzed)
	assert.Equal(t, 3, result.SessionsAnalyzed)
	assert.Len(t, result.Patterns, 2, "the failed batch contributes nothing")
}

func TestDecodeBatchReplyFenced(t *testing.T) {
	reply := "Here is my analysis:\n```json\n" + validReply + "\n```\nLet me know if you need more."
	result := decodeBatchReply(reply)
	require.False(t, result.Failed())
	require.Len(t, result.Patterns, 1)
	assert.Equal(t, "Prefers tabs", result.Patterns[0].Summary)
}

func TestDecodeBatchReplyBareFence(t *testing.T) {
	reply := "```\n" + validReply + "\n```"
	result := decodeBatchReply(reply)
	require.False(t, result.Failed())
	require.Len(t, result.Patterns, 1)
}

func TestDecodeBatchReplyRepair(t *testing.T) {
	// Trailing comma: invalid JSON that the repair pass can fix.
	reply := `{"patterns": [{"summary": "Prefers tabs", "examples": ["a"], "confidence": "high", "category": "coding_style"},]}`
	result := decodeBatchReply(reply)
	require.False(t, result.Failed())
	require.Len(t, result.Patterns, 1)
}

func TestDecodeBatchReplyUnrepairable(t *testing.T) {
	result := decodeBatchReply("no json here at all")
	assert.True(t, result.Failed())
	assert.Equal(t, "no json here at all", result.RawResponse)
	assert.NotEmpty(t, result.ParseError)
	assert.Empty(t, result.Patterns)
}

func TestBatchPrompts(t *testing.T) {
	batches := batchPrompts(corpus(5), 2)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[2], 1)

	assert.Nil(t, batchPrompts(nil, 10))
}

func TestFormatPrompts(t *testing.T) {
	prompts := []extract.AnalysisPrompt{
		{Text: "always use tabs", Type: "instruction", Project: "webapp"},
		{Text: "hello"},
	}
	got := FormatPrompts(prompts)
	assert.Equal(t, "[1] (instruction, webapp) always use tabs\n[2] (general, unknown) hello", got)
}
