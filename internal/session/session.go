// Package session discovers and parses recorded coding-assistant
// transcripts. A projects root contains one directory per project, each
// holding *.jsonl session files; every line of a session file is one
// log entry. Transcripts are not schema-guaranteed, so parsing is
// best-effort: unreadable lines are skipped, never fatal.
package session

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// File identifies one discovered session transcript.
type File struct {
	// ID is the session identifier, taken from the file name stem.
	ID string
	// Project is the human-readable project name derived from the
	// project directory name.
	Project string
	// Path is the absolute path to the transcript file.
	Path string
	// MTime is the transcript's last modification time.
	MTime time.Time
}

// Discover walks the projects root and returns all session files,
// newest first. Agent transcripts (agent-*.jsonl) are skipped unless
// includeAgents is set.
func Discover(root string, includeAgents bool) ([]File, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		project := ProjectDisplayName(entry.Name())
		dir := filepath.Join(root, entry.Name())

		matches, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
		if err != nil {
			continue
		}
		for _, path := range matches {
			base := filepath.Base(path)
			if !includeAgents && strings.HasPrefix(base, "agent-") {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			files = append(files, File{
				ID:      strings.TrimSuffix(base, ".jsonl"),
				Project: project,
				Path:    path,
				MTime:   info.ModTime(),
			})
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].MTime.After(files[j].MTime)
	})
	return files, nil
}

// ProjectDisplayName converts an encoded project directory name into a
// readable label. Claude-style roots encode the project path with
// dashes ("-home-alice-code-myapp"); the last segment is the project.
func ProjectDisplayName(dir string) string {
	if !strings.HasPrefix(dir, "-") {
		return dir
	}
	trimmed := strings.Trim(dir, "-")
	if idx := strings.LastIndex(trimmed, "-"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
