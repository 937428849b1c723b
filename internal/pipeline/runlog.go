package pipeline

import "fmt"

// Entry is one run-log line: which stage did what.
type Entry struct {
	Stage   string `json:"stage"`
	Action  string `json:"action"`
	Message string `json:"message"`
}

// Log is an append-only, run-scoped log. Each pipeline run gets its own
// instance; nothing is shared process-wide.
type Log struct {
	entries []Entry
}

// NewLog creates an empty run log.
func NewLog() *Log {
	return &Log{}
}

// Append adds one entry.
func (l *Log) Append(stage, action, message string) {
	l.entries = append(l.entries, Entry{Stage: stage, Action: action, Message: message})
}

// Appendf adds one entry with a formatted message.
func (l *Log) Appendf(stage, action, format string, args ...any) {
	l.Append(stage, action, fmt.Sprintf(format, args...))
}

// Entries returns a copy of the recorded entries.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
