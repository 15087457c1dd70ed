package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/franz/softball-stats/internal/model"
)

var testKey = model.GameKey{League: "fray", Team: "cyclones", Season: "winter", Game: 1}

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	var events []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var decoded Event
		if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
			t.Fatalf("Failed to decode line %d: %v", len(events)+1, err)
		}
		events = append(events, decoded)
	}
	return events
}

func TestNewEventLogger(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := NewEventLogger(filepath.Join(tmpDir, "artifacts"), LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(logger.Path()); os.IsNotExist(err) {
		t.Errorf("Event log file was not created at %s", logger.Path())
	}

	filename := filepath.Base(logger.Path())
	if len(filename) < len("events-20060102-150405.jsonl") {
		t.Errorf("Event log filename format incorrect: %s", filename)
	}
}

func TestEventLogger_PipelineEvents(t *testing.T) {
	logger, err := NewEventLogger(t.TempDir(), LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}
	logger.SetRunID("run-1")

	path := "data/input/fray-cyclones-winter-01.csv"
	logger.LogRun("files", 1, false)
	logger.LogParse(path, testKey, 9, 31)
	logger.LogWarning(path, testKey, model.Warning{Player: "Bob", Row: 3, Column: 2, Original: "HR", Assumption: "HR solo"})
	logger.LogSave(path, testKey, 9, 31, true)
	logger.LogDuplicate(path, testKey, "already recorded")
	logger.LogExport("out/stats.xlsx", 6, 250*time.Millisecond, nil)
	logger.LogError(EventParse, path, errors.New("bad row"))
	logger.Close()

	events := readEvents(t, logger.Path())
	if len(events) != 7 {
		t.Fatalf("Expected 7 events, got %d", len(events))
	}

	want := []EventType{EventRun, EventParse, EventWarning, EventReplace, EventDuplicate, EventExport, EventParse}
	for i, e := range events {
		if e.Event != want[i] {
			t.Errorf("Event %d: expected %s, got %s", i, want[i], e.Event)
		}
		if e.RunID != "run-1" {
			t.Errorf("Event %d: expected run_id run-1, got %q", i, e.RunID)
		}
		if e.Timestamp.IsZero() {
			t.Errorf("Event %d: timestamp not set", i)
		}
	}

	if events[1].GameKey != "fray-cyclones-winter-01" || events[1].Appearances != 31 {
		t.Errorf("Unexpected parse event: %+v", events[1])
	}
	if events[2].Extra["original"] != "HR" || events[2].Player != "Bob" {
		t.Errorf("Unexpected warning event: %+v", events[2])
	}
	if events[5].Duration != 250 {
		t.Errorf("Expected duration 250 ms, got %d ms", events[5].Duration)
	}
	// errors keep the event type of the stage that failed
	if events[6].Level != LevelError || events[6].Error != "bad row" {
		t.Errorf("Unexpected error event: %+v", events[6])
	}
}

func TestEventLogger_LevelFilter(t *testing.T) {
	logger, err := NewEventLogger(t.TempDir(), LevelWarning)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}

	logger.LogParse("a.csv", testKey, 1, 1)       // debug
	logger.LogSave("a.csv", testKey, 1, 1, false) // info
	logger.LogDuplicate("a.csv", testKey, "dup")  // warning
	logger.LogExport("x.xlsx", 0, 0, errors.New("denied"))
	logger.Close()

	events := readEvents(t, logger.Path())
	if len(events) != 2 {
		t.Fatalf("Expected 2 events at warning and above, got %d", len(events))
	}
	if events[1].Level != LevelError {
		t.Errorf("Expected failed export at error level, got %s", events[1].Level)
	}
}

func TestEventLogger_ConcurrentWrites(t *testing.T) {
	logger, err := NewEventLogger(t.TempDir(), LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}

	const numGoroutines = 10
	const eventsPerGoroutine = 20

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				if err := logger.LogSave("a.csv", testKey, 1, 2, false); err != nil {
					t.Errorf("Concurrent log failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()
	logger.Close()

	if got := len(readEvents(t, logger.Path())); got != numGoroutines*eventsPerGoroutine {
		t.Errorf("Expected %d events, got %d", numGoroutines*eventsPerGoroutine, got)
	}
}

func TestEventLogger_NullLogger(t *testing.T) {
	logger := NullLogger()

	if err := logger.Log(&Event{Level: LevelInfo, Event: EventSave}); err != nil {
		t.Errorf("NullLogger.Log should not return error, got: %v", err)
	}
	if err := logger.LogSave("key", testKey, 1, 1, false); err != nil {
		t.Errorf("NullLogger.LogSave should not return error, got: %v", err)
	}
	logger.SetRunID("ignored")
	if err := logger.Close(); err != nil {
		t.Errorf("NullLogger.Close should not return error, got: %v", err)
	}
	if path := logger.Path(); path != "" {
		t.Errorf("NullLogger.Path should return empty string, got: %s", path)
	}
}
