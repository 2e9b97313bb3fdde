package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSession(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	projectDir := filepath.Join(root, "-home-alice-code-myapp")
	require.NoError(t, os.Mkdir(projectDir, 0o755))

	older := writeSession(t, projectDir, "aaa-111.jsonl", "{}\n")
	newer := writeSession(t, projectDir, "bbb-222.jsonl", "{}\n")
	writeSession(t, projectDir, "agent-ccc.jsonl", "{}\n")

	// Stagger mtimes so the order assertion is meaningful.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	files, err := Discover(root, false)
	require.NoError(t, err)
	require.Len(t, files, 2, "agent transcripts should be skipped")

	assert.Equal(t, "bbb-222", files[0].ID, "newest session first")
	assert.Equal(t, "aaa-111", files[1].ID)
	assert.Equal(t, "myapp", files[0].Project)
	assert.Equal(t, newer, files[0].Path)
}

func TestDiscoverIncludeAgents(t *testing.T) {
	root := t.TempDir()
	projectDir := filepath.Join(root, "proj")
	require.NoError(t, os.Mkdir(projectDir, 0o755))
	writeSession(t, projectDir, "agent-abc.jsonl", "{}\n")

	files, err := Discover(root, true)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "agent-abc", files[0].ID)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), false)
	assert.Error(t, err)
}

func TestProjectDisplayName(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"-home-alice-code-myapp", "myapp"},
		{"-Users-bob-contextd", "contextd"},
		{"plain", "plain"},
		{"-single", "single"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProjectDisplayName(tt.dir), "dir %q", tt.dir)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	content := `{"type":"user","timestamp":"2025-01-01T10:00:00Z","message":{"content":"always use tabs please"}}
{"type":"assistant","timestamp":"2025-01-01T10:00:05Z","message":{"content":[{"type":"text","text":"Done."}]}}

{"type":"user","timestamp":"2025-01-01T10:01:00Z","message":{"content":[{"type":"tool_result","text":""}]}}
not valid json at all
{"type":"user","timestamp":"2025-01-01T10:02:00Z","message":{"content":[{"type":"text","text":"part one"},{"type":"text","text":"part two"}]}}
`
	path := writeSession(t, dir, "sess.jsonl", content)

	entries, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 4, "blank and unparseable lines are skipped")

	assert.Equal(t, "user", entries[0].Type)
	assert.False(t, entries[0].Structured)
	assert.Equal(t, "always use tabs please", entries[0].Text)
	assert.Equal(t, "2025-01-01T10:00:00Z", entries[0].Timestamp)

	assert.Equal(t, "assistant", entries[1].Type)
	assert.True(t, entries[1].Structured)

	assert.True(t, entries[2].Structured)
	assert.Equal(t, "tool_result", entries[2].Blocks[0].Type)

	require.Len(t, entries[3].Blocks, 2)
	assert.Equal(t, "part two", entries[3].Blocks[1].Text)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}
