package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/franz/softball-stats/internal/model"
	"github.com/franz/softball-stats/internal/store"
)

func TestGenerateSummaryReport(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	game := &model.GameFile{GameKey: testKey, Path: "fray-cyclones-winter-01.csv"}
	rows := []model.PlateAppearance{
		{Player: "Alice", Outcome: model.HomeRun, Notation: "HR", RBIs: 1, Runs: 1, Row: 2, Column: 2},
		{Player: "Bob", Outcome: model.Walk, Notation: "BB", Row: 3, Column: 2},
	}
	warnings := []model.Warning{{Player: "Alice", Row: 2, Column: 2, Original: "HR", Assumption: "HR solo (assumed 1 RBI, 1 run scored)"}}
	if _, err := db.Save(game, rows, warnings, store.SaveOptions{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	run, err := db.CreateRun("files")
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	db.RecordRunFile(&store.RunFile{RunID: run.ID, Path: "fray-cyclones-winter-01.csv", GameKey: testKey.String(), Status: store.RunFileOK, Appearances: 2, Warnings: 1})
	db.RecordRunFile(&store.RunFile{RunID: run.ID, Path: "bad.csv", Status: store.RunFileFailed, Error: "invalid filename format"})
	run.Files, run.Succeeded, run.Failed = 2, 1, 1
	db.FinishRun(run)

	report, err := GenerateSummaryReport(db, "test-events.jsonl")
	if err != nil {
		t.Fatalf("GenerateSummaryReport failed: %v", err)
	}

	if report.Counts.Games != 1 || report.Counts.Appearances != 2 || report.Counts.Players != 2 {
		t.Errorf("Unexpected counts: %+v", report.Counts)
	}
	if len(report.Leagues) != 1 || report.Leagues[0].Name != "fray" {
		t.Errorf("Unexpected leagues: %+v", report.Leagues)
	}
	if report.LatestRun == nil || report.LatestRun.ID != run.ID {
		t.Fatalf("Expected latest run %s, got %+v", run.ID, report.LatestRun)
	}
	if len(report.RunFiles) != 2 {
		t.Errorf("Expected 2 run files, got %d", len(report.RunFiles))
	}
	if len(report.TopErrors) != 1 || report.TopErrors[0].Error != "invalid filename format" {
		t.Errorf("Unexpected top errors: %+v", report.TopErrors)
	}
	if len(report.Assumptions) != 1 || report.Assumptions[0].Key != testKey {
		t.Errorf("Unexpected assumptions: %+v", report.Assumptions)
	}
	if report.EventLogPath != "test-events.jsonl" {
		t.Errorf("Expected event log path 'test-events.jsonl', got '%s'", report.EventLogPath)
	}
}

func TestWriteMarkdownReport(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "reports", "summary.md")

	started := time.Now().Add(-2 * time.Hour)
	report := &SummaryReport{
		GeneratedAt: time.Now(),
		Counts:      store.Counts{Leagues: 1, Teams: 2, Players: 24, Games: 10, Appearances: 312, Warnings: 3},
		Leagues:     []store.League{{Name: "fray", Teams: 2, Seasons: 1, Games: 10}},
		LatestRun: &store.Run{
			ID: "0b7c", Mode: "all", StartedAt: started, FinishedAt: started.Add(1500 * time.Millisecond),
			Files: 11, Succeeded: 10, Failed: 1,
		},
		RunFiles: []*store.RunFile{
			{Path: "data/input/fray-cyclones-winter-01.csv", GameKey: "fray-cyclones-winter-01", Status: "ok", Appearances: 31},
			{Path: "data/input/oops.csv", Status: "failed", Error: "bad | name"},
		},
		TopErrors: []ErrorSummary{{Error: "bad | name", Count: 1}},
		Assumptions: []store.StoredWarning{{
			Key:     testKey,
			Warning: model.Warning{Player: "Bob", Row: 3, Column: 4, Original: "HR", Assumption: "HR solo"},
		}},
		DatabasePath: "/test/stats.db",
		EventLogPath: "/test/events.jsonl",
	}

	if err := WriteMarkdownReport(report, outputPath); err != nil {
		t.Fatalf("WriteMarkdownReport failed: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read report file: %v", err)
	}
	contentStr := string(content)

	for _, want := range []string{
		"# Softball Stats - Summary Report",
		"## 📊 Overview",
		"| Plate Appearances | 312 |",
		"## 🥎 Leagues",
		"| fray | 2 | 1 | 10 |",
		"## ⚡ Latest Run",
		"2 hours ago",
		"| Duration | 1.5s |",
		"fray-cyclones-winter-01",
		"## ⚠️ Top Errors",
		`bad \| name`,
		"## 📝 Parse Assumptions",
		"R3C4",
		"/test/stats.db",
	} {
		if !strings.Contains(contentStr, want) {
			t.Errorf("Report missing %q", want)
		}
	}
}

func TestWriteMarkdownReportEmptyDatabase(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "summary.md")
	if err := WriteMarkdownReport(&SummaryReport{GeneratedAt: time.Now()}, outputPath); err != nil {
		t.Fatalf("WriteMarkdownReport failed: %v", err)
	}

	content, _ := os.ReadFile(outputPath)
	if strings.Contains(string(content), "Latest Run") {
		t.Error("Empty report should not have a Latest Run section")
	}
}

func TestGatherTopErrors(t *testing.T) {
	if got := gatherTopErrors(nil, 10); len(got) != 0 {
		t.Errorf("Expected 0 errors, got %d", len(got))
	}

	var files []*store.RunFile
	for msg, count := range map[string]int{"unrecognized outcome": 3, "duplicate": 2, "storage unavailable": 1} {
		for i := 0; i < count; i++ {
			files = append(files, &store.RunFile{Status: store.RunFileFailed, Error: msg})
		}
	}
	files = append(files, &store.RunFile{Status: store.RunFileOK})

	top := gatherTopErrors(files, 2)
	if len(top) != 2 {
		t.Fatalf("Expected 2 errors after limit, got %d", len(top))
	}
	if top[0].Error != "unrecognized outcome" || top[0].Count != 3 {
		t.Errorf("Unexpected first error: %+v", top[0])
	}
	if top[1].Count != 2 {
		t.Errorf("Expected second error count 2, got %d", top[1].Count)
	}
}

func TestTruncatePath(t *testing.T) {
	testCases := []struct {
		name   string
		path   string
		maxLen int
	}{
		{"Short path - no truncation", "data/input/a-b-c-1.csv", 50},
		{"Long path - truncate middle", "/very/long/path/to/some/league/archive/fray-cyclones-winter-01.csv", 30},
		{"Exactly at limit", "data/a-b-c-1.csv", 16},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := truncatePath(tc.path, tc.maxLen)

			if len(result) > tc.maxLen {
				t.Errorf("Result length %d exceeds maxLen %d", len(result), tc.maxLen)
			}
			if len(tc.path) > tc.maxLen && !strings.Contains(result, "...") {
				t.Error("Expected truncated path to contain '...'")
			}
			if len(tc.path) <= tc.maxLen && result != tc.path {
				t.Errorf("Expected %q unchanged, got %q", tc.path, result)
			}
		})
	}
}
