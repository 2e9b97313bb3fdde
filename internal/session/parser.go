package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ContentBlock is one element of a structured message content list.
// Only the fields the pipeline inspects are decoded.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// LogEntry is one normalized transcript line.
type LogEntry struct {
	// Type is the entry type ("user", "assistant", "summary", ...).
	Type string
	// Timestamp is the entry's original timestamp string, kept verbatim.
	Timestamp string
	// Text holds the message content when it was a plain string.
	Text string
	// Blocks holds the message content when it was a structured list.
	Blocks []ContentBlock
	// Structured reports whether the content was a list of blocks.
	Structured bool
}

// jsonlLine is the raw wire shape of one transcript line.
type jsonlLine struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp,omitempty"`
	Message   struct {
		Content json.RawMessage `json:"content"`
	} `json:"message,omitempty"`
}

// maxScanTokenSize bounds a single transcript line. Tool results can
// carry whole files, so the default bufio limit is far too small.
const maxScanTokenSize = 10 * 1024 * 1024

// ParseFile reads a JSONL transcript and returns its log entries.
// Individual lines that fail to decode are skipped; only I/O-level
// failures return an error.
func ParseFile(path string) ([]LogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	var entries []LogEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, maxScanTokenSize), maxScanTokenSize)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var raw jsonlLine
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			continue
		}

		entry := LogEntry{Type: raw.Type, Timestamp: raw.Timestamp}
		decodeContent(raw.Message.Content, &entry)
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning transcript: %w", err)
	}
	return entries, nil
}

// decodeContent fills the entry from message.content, which may be a
// plain string or a list of content blocks.
func decodeContent(raw json.RawMessage, entry *LogEntry) {
	if len(raw) == 0 {
		return
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		entry.Text = text
		return
	}

	var blocks []ContentBlock
	if err := json.Unmarshal(raw, &blocks); err == nil {
		entry.Blocks = blocks
		entry.Structured = true
	}
}
