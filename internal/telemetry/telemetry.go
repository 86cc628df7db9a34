// Package telemetry provides a JSONL event stream for recording what the
// polaris service did: every analyze/suggest call, validation rejection,
// server lifecycle change, and watch reload is recorded as a structured
// JSON event, making deployments auditable and analyzable.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event kinds identify the type of telemetry event.
const (
	KindServerStart      = "server_start"
	KindServerStop       = "server_stop"
	KindAnalyze          = "analyze"
	KindSuggest          = "suggest"
	KindValidationFailed = "validation_failed"
	KindWatchReload      = "watch_reload"
	KindHistoryRecorded  = "history_recorded"
	KindHistoryFailed    = "history_failed"
)

// Event represents a single telemetry record. Each event carries a
// timestamp and a kind tag along with the request dimensions that matter
// for a scoring service: how many tasks came in, how many cycles were
// found, and how long the call took.
type Event struct {
	Timestamp  time.Time `json:"ts"`
	Kind       string    `json:"kind"`
	Op         string    `json:"op,omitempty"`
	TaskCount  int       `json:"tasks,omitempty"`
	CycleCount int       `json:"cycles,omitempty"`
	DurationMS int64     `json:"duration_ms,omitempty"`
	Remote     string    `json:"remote,omitempty"`
	Detail     string    `json:"detail,omitempty"`
}

// Emitter writes telemetry events to a JSONL file. It is safe for
// concurrent use by multiple goroutines. A nil *Emitter is a valid no-op
// emitter, so callers never need to branch on whether telemetry is enabled.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
}

// NewEmitter creates a new Emitter that writes JSONL events to the file at
// path. The file is created if it does not exist, or appended to if it does.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
	}, nil
}

// Emit writes a single event to the JSONL file, stamping the current time
// if the event has none. Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file. Calling Close on a nil
// Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
