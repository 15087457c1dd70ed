package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/softball-stats/internal/ingest"
	"github.com/franz/softball-stats/internal/store"
	"github.com/franz/softball-stats/internal/util"
)

var processCmd = &cobra.Command{
	Use:   "process [file.csv...]",
	Short: "Record scoresheets and export the workbook",
	Long: `Parse scoresheets, record them in the database and export the workbook.

Each file must be named league-team-season-game.csv (an optional _YYYY-MM-DD
date suffix is allowed). A game that is already recorded is rejected unless
--replace is given; on a terminal you are asked whether to replace it.

With --all every *.csv in the input directory is processed. A failing file
never stops the batch; the exit code reflects the most severe failure.
--rebuild wipes the database before processing the input directory.`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().Bool("all", false, "process every scoresheet in the input directory")
	processCmd.Flags().Bool("replace", false, "replace games that are already recorded")
	processCmd.Flags().Bool("rebuild", false, "wipe the database and reprocess the input directory")
	processCmd.Flags().Bool("force", false, "skip confirmation prompts")
	processCmd.Flags().Bool("no-export", false, "do not export the workbook afterwards")

	viper.BindPFlag("replace", processCmd.Flags().Lookup("replace"))
}

func runProcess(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	rebuild, _ := cmd.Flags().GetBool("rebuild")
	force, _ := cmd.Flags().GetBool("force")
	noExport, _ := cmd.Flags().GetBool("no-export")
	replace := GetConfigBool("replace")

	if rebuild {
		all = true
	}
	if all && len(args) > 0 {
		return fmt.Errorf("--all and file arguments are mutually exclusive")
	}
	if !all && len(args) == 0 {
		return fmt.Errorf("no scoresheets given (pass files or use --all)")
	}

	dbPath := GetConfigString("db", "data/softball.db")
	inputDir := GetConfigString("input", "data/input")
	outputPath := GetConfigString("output", "data/output/stats.xlsx")

	util.DebugLog("Opening database: %s", dbPath)
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	logger := openEventLogger()
	defer logger.Close()

	mode := ingest.ModeFiles
	if all {
		mode = ingest.ModeAll
	}

	if rebuild {
		if !force {
			if !util.Interactive() {
				return fmt.Errorf("--rebuild wipes the database; pass --force to confirm")
			}
			if !confirm(os.Stdin, os.Stderr, fmt.Sprintf("This will wipe %s and reprocess %s. Continue?", dbPath, inputDir)) {
				util.InfoLog("Operation cancelled.")
				return nil
			}
		}
		util.InfoLog("Wiping database...")
		if err := db.Reset(); err != nil {
			return err
		}
		mode = ingest.ModeRebuild
	}

	pipeline := ingest.New(&ingest.Config{
		Repo:         db,
		Runs:         db,
		Logger:       logger,
		ShowProgress: util.IsTerminal(os.Stderr.Fd()) && !util.IsQuiet(),
	})

	opts := ingest.Options{Replace: replace}
	if !replace && !all && util.Interactive() {
		opts.Confirm = replacePrompt(os.Stdin, os.Stderr)
	}

	var result *ingest.BatchResult
	if all {
		util.InfoLog("Processing scoresheets in %s", inputDir)
		result, err = pipeline.ProcessAll(inputDir, mode, opts)
	} else {
		result, err = pipeline.ProcessFiles(args, mode, opts)
	}
	if err != nil {
		return err
	}

	printBatch(result)

	var exportErr error
	if !noExport && result.Succeeded > 0 {
		exportErr = exportWorkbook(db, store.Scope{}, outputPath, logger)
	}

	return worstError(result.Err(), exportErr)
}

// printBatch logs the per-file outcome and the run totals
func printBatch(result *ingest.BatchResult) {
	for _, f := range result.Files {
		if f.Err != nil {
			continue
		}
		verb := "Recorded"
		if f.Replaced {
			verb = "Replaced"
		}
		util.SuccessLog("%s %s (%d players, %d plate appearances)", verb, f.Key, f.Players, f.Appearances)
		for _, w := range f.Warnings {
			util.WarnLog("  %s", w)
		}
	}

	if len(result.Files) <= 1 {
		return
	}

	util.InfoLog("")
	util.InfoLog("Processed %d files in %v", len(result.Files), result.Duration.Round(time.Millisecond))
	util.InfoLog("  Recorded: %d", result.Succeeded)
	if result.Replaced > 0 {
		util.InfoLog("  Replaced: %d", result.Replaced)
	}
	if result.Duplicates > 0 {
		util.WarnLog("  Duplicates: %d (use --replace to overwrite)", result.Duplicates)
	}
	if result.Failed > 0 {
		util.WarnLog("  Failed: %d", result.Failed)
		for _, f := range result.Files {
			if f.Err != nil && f.Status == store.RunFileFailed {
				util.WarnLog("    %s", filepath.Base(f.Path))
			}
		}
	}
}
