package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/franz/softball-stats/internal/model"
)

// EventType represents the type of event
type EventType string

const (
	EventRun       EventType = "run"
	EventParse     EventType = "parse"
	EventSave      EventType = "save"
	EventReplace   EventType = "replace"
	EventDuplicate EventType = "duplicate"
	EventWarning   EventType = "warning"
	EventExport    EventType = "export"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

// levelPriority maps event levels to numeric priorities for comparison
var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event represents a single event in the pipeline
type Event struct {
	Timestamp   time.Time         `json:"ts"`
	Level       EventLevel        `json:"level"`
	Event       EventType         `json:"event"`
	RunID       string            `json:"run_id,omitempty"`
	GameKey     string            `json:"game_key,omitempty"`
	SrcPath     string            `json:"src_path,omitempty"`
	DestPath    string            `json:"dest_path,omitempty"`
	Player      string            `json:"player,omitempty"`
	Players     int               `json:"players,omitempty"`
	Appearances int               `json:"appearances,omitempty"`
	Reason      string            `json:"reason,omitempty"`
	Duration    int64             `json:"duration_ms,omitempty"` // in milliseconds
	Error       string            `json:"error,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	minLevel EventLevel
	runID    string
}

// NewEventLogger creates a new event logger with a minimum log level
// minLevel determines which events are written (e.g., LevelInfo skips LevelDebug)
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("events-%s.jsonl", timestamp)
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		minLevel: minLevel,
	}, nil
}

// SetRunID tags every following event with the processing run
func (l *EventLogger) SetRunID(id string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runID = id
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil // Silently ignore if logger not initialized
	}

	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RunID == "" {
		event.RunID = l.runID
	}

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return nil
}

// LogRun logs the start or end of a processing run
func (l *EventLogger) LogRun(mode string, files int, finished bool) error {
	phase := "start"
	if finished {
		phase = "finish"
	}
	return l.Log(&Event{
		Level: LevelInfo,
		Event: EventRun,
		Extra: map[string]string{
			"mode":  mode,
			"phase": phase,
			"files": fmt.Sprintf("%d", files),
		},
	})
}

// LogParse logs a parsed scoresheet
func (l *EventLogger) LogParse(srcPath string, key model.GameKey, players, appearances int) error {
	return l.Log(&Event{
		Level:       LevelDebug,
		Event:       EventParse,
		GameKey:     key.String(),
		SrcPath:     srcPath,
		Players:     players,
		Appearances: appearances,
	})
}

// LogSave logs a stored game; replaced games are logged as replace events
func (l *EventLogger) LogSave(srcPath string, key model.GameKey, players, appearances int, replaced bool) error {
	event := EventSave
	if replaced {
		event = EventReplace
	}
	return l.Log(&Event{
		Level:       LevelInfo,
		Event:       event,
		GameKey:     key.String(),
		SrcPath:     srcPath,
		Players:     players,
		Appearances: appearances,
	})
}

// LogDuplicate logs a rejected re-upload
func (l *EventLogger) LogDuplicate(srcPath string, key model.GameKey, reason string) error {
	return l.Log(&Event{
		Level:   LevelWarning,
		Event:   EventDuplicate,
		GameKey: key.String(),
		SrcPath: srcPath,
		Reason:  reason,
	})
}

// LogWarning logs a parse assumption
func (l *EventLogger) LogWarning(srcPath string, key model.GameKey, w model.Warning) error {
	return l.Log(&Event{
		Level:   LevelWarning,
		Event:   EventWarning,
		GameKey: key.String(),
		SrcPath: srcPath,
		Player:  w.Player,
		Reason:  w.Assumption,
		Extra: map[string]string{
			"row":      fmt.Sprintf("%d", w.Row),
			"column":   fmt.Sprintf("%d", w.Column),
			"original": w.Original,
		},
	})
}

// LogExport logs a written workbook
func (l *EventLogger) LogExport(destPath string, sheets int, duration time.Duration, err error) error {
	level := LevelInfo
	errMsg := ""
	if err != nil {
		level = LevelError
		errMsg = err.Error()
	}

	return l.Log(&Event{
		Level:    level,
		Event:    EventExport,
		DestPath: destPath,
		Duration: duration.Milliseconds(),
		Error:    errMsg,
		Extra: map[string]string{
			"sheets": fmt.Sprintf("%d", sheets),
		},
	})
}

// LogError logs an error event
func (l *EventLogger) LogError(event EventType, srcPath string, err error) error {
	return l.Log(&Event{
		Level:   LevelError,
		Event:   event,
		SrcPath: srcPath,
		Error:   err.Error(),
	})
}

// Close closes the event log file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}

// Path returns the path to the event log file
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// NullLogger returns a no-op event logger
func NullLogger() *EventLogger {
	return nil
}
