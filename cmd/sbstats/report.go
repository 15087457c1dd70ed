package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/franz/softball-stats/internal/report"
	"github.com/franz/softball-stats/internal/store"
	"github.com/franz/softball-stats/internal/util"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a summary report from the database",
	Long: `Generate a summary report in Markdown format.

The report includes:
- Database overview (leagues, teams, players, games, plate appearances)
- The latest processing run with per-file outcomes
- Top errors of that run
- Parse assumptions stored with recorded games

The report is saved to <artifacts>/reports/<timestamp>/summary.md`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("out", "", "Output directory for report (default: <artifacts>/reports/<timestamp>)")
	reportCmd.Flags().String("event-log", "", "Path to event log file (optional)")
}

func runReport(cmd *cobra.Command, args []string) error {
	dbPath := GetConfigString("db", "data/softball.db")

	util.InfoLog("=== Generating Summary Report ===")
	util.InfoLog("Database: %s", dbPath)

	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	eventLogPath, _ := cmd.Flags().GetString("event-log")

	summaryReport, err := report.GenerateSummaryReport(db, eventLogPath)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	summaryReport.DatabasePath = dbPath

	outputDir, _ := cmd.Flags().GetString("out")
	if outputDir == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputDir = filepath.Join(GetConfigString("artifacts", "artifacts"), "reports", timestamp)
	}
	outputPath := filepath.Join(outputDir, "summary.md")

	util.InfoLog("Writing report to: %s", outputPath)
	if err := report.WriteMarkdownReport(summaryReport, outputPath); err != nil {
		return err
	}

	util.SuccessLog("Report generated successfully!")
	util.InfoLog("")
	util.InfoLog("Summary:")
	util.InfoLog("  Leagues: %d", summaryReport.Counts.Leagues)
	util.InfoLog("  Games: %d", summaryReport.Counts.Games)
	util.InfoLog("  Plate appearances: %d", summaryReport.Counts.Appearances)
	if run := summaryReport.LatestRun; run != nil {
		util.InfoLog("  Latest run: %s, %d files (%s)", run.Mode, run.Files, util.FormatAgo(run.StartedAt))
		if run.Failed > 0 {
			util.WarnLog("  Failed files: %d", run.Failed)
		}
	}

	return nil
}
