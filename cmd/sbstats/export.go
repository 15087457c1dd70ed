package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/franz/softball-stats/internal/export"
	"github.com/franz/softball-stats/internal/report"
	"github.com/franz/softball-stats/internal/store"
	"github.com/franz/softball-stats/internal/util"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded games to an Excel workbook",
	Long: `Export recorded games to an Excel workbook.

The workbook holds a legend, a league summary, season and career sheets and
one sheet per team with a TEAM TOTALS row. --league, --team and --season
restrict which games are exported.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("league", "", "only export this league")
	exportCmd.Flags().String("team", "", "only export this team")
	exportCmd.Flags().String("season", "", "only export this season")
}

func runExport(cmd *cobra.Command, args []string) error {
	scope := store.Scope{}
	scope.League, _ = cmd.Flags().GetString("league")
	scope.Team, _ = cmd.Flags().GetString("team")
	scope.Season, _ = cmd.Flags().GetString("season")

	db, err := store.Open(GetConfigString("db", "data/softball.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	logger := openEventLogger()
	defer logger.Close()

	return exportWorkbook(db, scope, GetConfigString("output", "data/output/stats.xlsx"), logger)
}

// exportWorkbook writes the games matching scope to path
func exportWorkbook(repo store.Repository, scope store.Scope, path string, logger *report.EventLogger) error {
	lines, err := repo.Query(scope)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		util.WarnLog("No recorded games match; nothing exported")
		return nil
	}

	start := time.Now()
	wb := export.Build(lines)
	err = export.Write(path, wb)
	logger.LogExport(path, len(wb.Sheets), time.Since(start), err)
	if err != nil {
		return err
	}

	util.SuccessLog("Statistics exported to %s (%d sheets)", path, len(wb.Sheets))
	return nil
}
