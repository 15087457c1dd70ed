package report

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/franz/softball-stats/internal/store"
	"github.com/franz/softball-stats/internal/util"
)

// SummaryReport represents a complete summary report
type SummaryReport struct {
	GeneratedAt time.Time

	// Database contents
	Counts  store.Counts
	Leagues []store.League

	// Latest processing run
	LatestRun *store.Run
	RunFiles  []*store.RunFile

	// Details
	TopErrors   []ErrorSummary
	Assumptions []store.StoredWarning

	// Metadata
	DatabasePath string
	EventLogPath string
}

// ErrorSummary represents an error with its count
type ErrorSummary struct {
	Error string
	Count int
}

// GenerateSummaryReport creates a summary report from the database
func GenerateSummaryReport(db *store.Store, eventLogPath string) (*SummaryReport, error) {
	report := &SummaryReport{
		GeneratedAt:  time.Now(),
		EventLogPath: eventLogPath,
		TopErrors:    make([]ErrorSummary, 0),
	}

	counts, err := db.Counts()
	if err != nil {
		return nil, err
	}
	report.Counts = *counts

	if report.Leagues, err = db.ListLeagues(); err != nil {
		return nil, err
	}

	if report.LatestRun, err = db.LatestRun(); err != nil {
		return nil, err
	}
	if report.LatestRun != nil {
		if report.RunFiles, err = db.RunFiles(report.LatestRun.ID); err != nil {
			return nil, err
		}
	}

	report.TopErrors = gatherTopErrors(report.RunFiles, 10)

	if report.Assumptions, err = db.AllWarnings(25); err != nil {
		return nil, err
	}

	return report, nil
}

// gatherTopErrors counts identical error messages among failed files
func gatherTopErrors(files []*store.RunFile, limit int) []ErrorSummary {
	errorCounts := make(map[string]int)
	for _, f := range files {
		if f.Error != "" {
			errorCounts[f.Error]++
		}
	}

	errors := make([]ErrorSummary, 0, len(errorCounts))
	for err, count := range errorCounts {
		errors = append(errors, ErrorSummary{
			Error: err,
			Count: count,
		})
	}

	// Most frequent first, ties alphabetically
	sort.Slice(errors, func(i, j int) bool {
		if errors[i].Count != errors[j].Count {
			return errors[i].Count > errors[j].Count
		}
		return errors[i].Error < errors[j].Error
	})

	if len(errors) > limit {
		errors = errors[:limit]
	}

	return errors
}

// WriteMarkdownReport writes the summary report as Markdown
func WriteMarkdownReport(report *SummaryReport, outputPath string) error {
	if err := util.EnsureParentDir(outputPath); err != nil {
		return err
	}

	var md strings.Builder

	md.WriteString("# Softball Stats - Summary Report\n\n")
	md.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))

	if report.DatabasePath != "" {
		md.WriteString(fmt.Sprintf("**Database:** `%s`\n\n", report.DatabasePath))
	}
	if report.EventLogPath != "" {
		md.WriteString(fmt.Sprintf("**Event Log:** `%s`\n\n", report.EventLogPath))
	}

	md.WriteString("---\n\n")

	// Overview
	md.WriteString("## 📊 Overview\n\n")
	md.WriteString("| Metric | Value |\n")
	md.WriteString("|--------|-------|\n")
	md.WriteString(fmt.Sprintf("| Leagues | %d |\n", report.Counts.Leagues))
	md.WriteString(fmt.Sprintf("| Teams | %d |\n", report.Counts.Teams))
	md.WriteString(fmt.Sprintf("| Players | %d |\n", report.Counts.Players))
	md.WriteString(fmt.Sprintf("| Games | %d |\n", report.Counts.Games))
	md.WriteString(fmt.Sprintf("| Plate Appearances | %d |\n", report.Counts.Appearances))
	if report.Counts.Warnings > 0 {
		md.WriteString(fmt.Sprintf("| Parse Assumptions | %d |\n", report.Counts.Warnings))
	}
	md.WriteString("\n")

	// Leagues
	if len(report.Leagues) > 0 {
		md.WriteString("## 🥎 Leagues\n\n")
		md.WriteString("| League | Teams | Seasons | Games |\n")
		md.WriteString("|--------|-------|---------|-------|\n")
		for _, l := range report.Leagues {
			md.WriteString(fmt.Sprintf("| %s | %d | %d | %d |\n", l.Name, l.Teams, l.Seasons, l.Games))
		}
		md.WriteString("\n")
	}

	// Latest run
	if run := report.LatestRun; run != nil {
		md.WriteString("## ⚡ Latest Run\n\n")
		md.WriteString("| Metric | Value |\n")
		md.WriteString("|--------|-------|\n")
		md.WriteString(fmt.Sprintf("| Run | `%s` |\n", run.ID))
		md.WriteString(fmt.Sprintf("| Mode | %s |\n", run.Mode))
		md.WriteString(fmt.Sprintf("| Started | %s (%s) |\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"), util.FormatAgo(run.StartedAt)))
		if !run.FinishedAt.IsZero() {
			md.WriteString(fmt.Sprintf("| Duration | %s |\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)))
		}
		md.WriteString(fmt.Sprintf("| Files | %d |\n", run.Files))
		md.WriteString(fmt.Sprintf("| Succeeded | %d |\n", run.Succeeded))
		if run.Failed > 0 {
			md.WriteString(fmt.Sprintf("| Failed | %d |\n", run.Failed))
		}
		md.WriteString("\n")

		if len(report.RunFiles) > 0 {
			md.WriteString("| File | Game | Status | Appearances | Warnings | Error |\n")
			md.WriteString("|------|------|--------|-------------|----------|-------|\n")
			for _, f := range report.RunFiles {
				md.WriteString(fmt.Sprintf("| `%s` | %s | %s | %d | %d | %s |\n",
					truncatePath(f.Path, 60), f.GameKey, f.Status, f.Appearances, f.Warnings, escapeCell(f.Error)))
			}
			md.WriteString("\n")
		}
	}

	// Errors
	if len(report.TopErrors) > 0 {
		md.WriteString("## ⚠️ Top Errors\n\n")
		md.WriteString("| Count | Error |\n")
		md.WriteString("|-------|-------|\n")
		for _, err := range report.TopErrors {
			md.WriteString(fmt.Sprintf("| %d | %s |\n", err.Count, escapeCell(err.Error)))
		}
		md.WriteString("\n")
	}

	// Assumptions
	if len(report.Assumptions) > 0 {
		md.WriteString("## 📝 Parse Assumptions\n\n")
		md.WriteString("| Game | Player | Cell | Original | Assumption |\n")
		md.WriteString("|------|--------|------|----------|------------|\n")
		for _, w := range report.Assumptions {
			md.WriteString(fmt.Sprintf("| %s | %s | R%dC%d | `%s` | %s |\n",
				w.Key, w.Player, w.Row, w.Column, w.Original, escapeCell(w.Assumption)))
		}
		md.WriteString("\n")
	}

	md.WriteString("---\n\n")
	md.WriteString("*Generated by sbstats*\n")

	if err := os.WriteFile(outputPath, []byte(md.String()), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// truncatePath truncates a file path to a maximum length
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	// Truncate from the middle, keeping start and end
	start := maxLen/2 - 2
	end := len(path) - (maxLen/2 - 2)
	return path[:start] + "..." + path[end:]
}
