// Package logging appends error lines and optional JSON trace entries to a
// single log file shared by the whole process.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "notebook-menubar.log"

type sink struct {
	mu    sync.Mutex
	path  string
	trace bool
	now   func() time.Time
}

var out = &sink{path: defaultLogFile, now: time.Now}

// entry is one trace line. Errors use the same shape with Level "error" so
// a trace log can be read back with a single decoder.
type entry struct {
	Time    time.Time   `json:"time"`
	Level   string      `json:"level"`
	Event   string      `json:"event,omitempty"`
	Error   string      `json:"error,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// Error appends err to the log. With tracing on the line is a JSON entry,
// otherwise a timestamped plain line.
func Error(err error) {
	if err == nil {
		return
	}
	out.mu.Lock()
	defer out.mu.Unlock()
	ts := out.now().UTC()
	if out.trace {
		out.append(func(w io.Writer) error {
			return json.NewEncoder(w).Encode(entry{Time: ts, Level: "error", Error: err.Error()})
		})
		return
	}
	out.append(func(w io.Writer) error {
		_, werr := fmt.Fprintf(w, "%s error: %v\n", ts.Format(time.RFC3339), err)
		return werr
	})
}

// SetTraceEnabled toggles emission of trace entries.
func SetTraceEnabled(enabled bool) {
	out.mu.Lock()
	out.trace = enabled
	out.mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.trace
}

// Trace appends a JSON entry for event when tracing is enabled.
func Trace(event string, payload interface{}) {
	out.mu.Lock()
	defer out.mu.Unlock()
	if !out.trace {
		return
	}
	e := entry{Time: out.now().UTC(), Level: "trace", Event: event, Payload: payload}
	out.append(func(w io.Writer) error {
		return json.NewEncoder(w).Encode(e)
	})
}

// Configure sets the log destination. An empty path selects the default
// file in the working directory. Missing directories are created.
func Configure(path string) {
	out.mu.Lock()
	defer out.mu.Unlock()
	path = strings.TrimSpace(path)
	if path == "" {
		out.path = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		out.path = defaultLogFile
		return
	}
	out.path = path
}

// Path returns the current log destination.
func Path() string {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.path
}

// append opens the log for one write. The caller holds s.mu.
func (s *sink) append(write func(io.Writer) error) {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
	}
}
