// Package testutil holds shared test doubles for the service packages.
package testutil

import (
	"sync"

	"service-dispatch/internal/logx"
)

// LogEntry is one captured log call.
type LogEntry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// LogRecorder implements logx.Logger and captures entries for assertions.
type LogRecorder struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewLogRecorder() *LogRecorder { return &LogRecorder{} }

func (r *LogRecorder) record(level, msg string, fields []logx.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, LogEntry{Level: level, Msg: msg, Fields: fields})
}

func (r *LogRecorder) Debug(msg string, fields ...logx.Field) { r.record("debug", msg, fields) }
func (r *LogRecorder) Info(msg string, fields ...logx.Field)  { r.record("info", msg, fields) }
func (r *LogRecorder) Warn(msg string, fields ...logx.Field)  { r.record("warn", msg, fields) }
func (r *LogRecorder) Error(msg string, fields ...logx.Field) { r.record("error", msg, fields) }
func (r *LogRecorder) With(_ ...logx.Field) logx.Logger       { return r }
func (r *LogRecorder) Sync() error                            { return nil }

// Entries returns a copy of everything logged so far.
func (r *LogRecorder) Entries() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Contains reports whether any entry's message equals msg.
func (r *LogRecorder) Contains(msg string) bool {
	for _, e := range r.Entries() {
		if e.Msg == msg {
			return true
		}
	}
	return false
}
