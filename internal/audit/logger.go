package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded API action, written as a single JSON line.
type Entry struct {
	ID        uuid.UUID  `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Username  string     `json:"username"`
	Action    string     `json:"action"`
	RunID     *uuid.UUID `json:"run_id,omitempty"`
	Algorithm string     `json:"algorithm,omitempty"`
	Success   bool       `json:"success"`
	Error     string     `json:"error,omitempty"`
}

// Logger appends audit entries to a writer. A nil Logger discards
// everything, so callers never have to guard their calls.
type Logger struct {
	w      io.Writer
	closer io.Closer
	mu     sync.Mutex
}

func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w}
}

// NewFileLogger opens (or creates) an append-only JSON-lines audit file.
func NewFileLogger(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating audit log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening audit log file: %w", err)
	}
	return &Logger{w: f, closer: f}, nil
}

func (l *Logger) Record(e Entry) {
	if l == nil {
		return
	}
	e.ID = uuid.New()
	e.Timestamp = time.Now().UTC()

	data, err := json.Marshal(e)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(data)
	l.w.Write([]byte("\n"))
}

func (l *Logger) LoginAttempt(username string, success bool) {
	e := Entry{Username: username, Action: "login", Success: success}
	if !success {
		e.Error = "authentication failed"
	}
	l.Record(e)
}

func (l *Logger) SimulationCreated(username, algorithm string, runID uuid.UUID) {
	l.Record(Entry{
		Username:  username,
		Action:    "simulation.create",
		RunID:     &runID,
		Algorithm: algorithm,
		Success:   true,
	})
}

func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
