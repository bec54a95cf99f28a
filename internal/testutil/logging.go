package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// TestLogHandler captures records in memory. Handlers derived with WithAttrs
// share the same record list.
type TestLogHandler struct {
	state *logState
	attrs []slog.Attr
}

type logState struct {
	mu      sync.Mutex
	records []TestLogRecord
}

type TestLogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

func NewTestLogHandler() *TestLogHandler {
	return &TestLogHandler{
		state: &logState{records: make([]TestLogRecord, 0)},
	}
}

func (h *TestLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (h *TestLogHandler) Handle(ctx context.Context, record slog.Record) error {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	attrs := make(map[string]any)
	for _, attr := range h.attrs {
		attrs[attr.Key] = attr.Value.Any()
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.Any()
		return true
	})
	h.state.records = append(h.state.records, TestLogRecord{
		Level:   record.Level,
		Message: record.Message,
		Attrs:   attrs,
	})

	return nil
}

func (h *TestLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &TestLogHandler{state: h.state, attrs: merged}
}

func (h *TestLogHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *TestLogHandler) GetRecords() []TestLogRecord {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	return append([]TestLogRecord(nil), h.state.records...)
}

func (h *TestLogHandler) GetRecordsByLevel(level slog.Level) []TestLogRecord {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	var filtered []TestLogRecord
	for _, record := range h.state.records {
		if record.Level == level {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func (h *TestLogHandler) Reset() {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.records = h.state.records[:0]
}

func (h *TestLogHandler) ContainsMessage(level slog.Level, message string) bool {
	records := h.GetRecordsByLevel(level)
	for _, record := range records {
		if record.Message == message {
			return true
		}
	}
	return false
}

func (h *TestLogHandler) CountByLevel(level slog.Level) int {
	return len(h.GetRecordsByLevel(level))
}
