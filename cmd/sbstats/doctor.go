package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/franz/softball-stats/internal/parse"
	"github.com/franz/softball-stats/internal/store"
	"github.com/franz/softball-stats/internal/util"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the environment and configuration",
	Long: `Run diagnostic checks to ensure sbstats can operate correctly.

This command checks:
- SQLite availability
- Database accessibility, schema version, integrity and the last run
- Scoresheet names in the input directory
- Output and artifacts directories (writable)
- Disk space at the output location`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// lowDiskSpace is the free space below which the output location is flagged
const lowDiskSpace = 100 * 1024 * 1024

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func passed(name, format string, args ...any) checkResult {
	return checkResult{name: name, message: fmt.Sprintf(format, args...)}
}

func warned(name, format string, args ...any) checkResult {
	return checkResult{name: name, message: fmt.Sprintf(format, args...), warning: true}
}

func failed(name, format string, args ...any) checkResult {
	return checkResult{name: name, message: fmt.Sprintf(format, args...), error: true}
}

func runDoctor(cmd *cobra.Command, args []string) error {
	util.InfoLog("=== sbstats doctor ===")
	util.InfoLog("")

	outputDir := filepath.Dir(GetConfigString("output", "data/output/stats.xlsx"))

	results := []checkResult{
		checkSQLite(),
		checkDatabase(GetConfigString("db", "data/softball.db")),
		checkInputDirectory(GetConfigString("input", "data/input")),
		checkWritable("Output directory", outputDir),
		checkWritable("Artifacts directory", GetConfigString("artifacts", "artifacts")),
		checkDiskSpace(outputDir, "output"),
	}

	var errs, warnings int
	for _, r := range results {
		switch {
		case r.error:
			errs++
			util.ErrorLog("[✗] %s: %s", r.name, r.message)
		case r.warning:
			warnings++
			util.WarnLog("[⚠] %s: %s", r.name, r.message)
		default:
			util.SuccessLog("[✓] %s: %s", r.name, r.message)
		}
	}

	util.InfoLog("")
	switch {
	case errs > 0:
		util.ErrorLog("%d of %d checks failed", errs, len(results))
		return errors.New("system diagnostics failed")
	case warnings > 0:
		util.WarnLog("%d of %d checks produced warnings", warnings, len(results))
	default:
		util.SuccessLog("All %d checks passed", len(results))
	}
	return nil
}

func checkSQLite() checkResult {
	if v := store.SQLiteVersion(); v != "" {
		return passed("SQLite", "version %s (built-in)", v)
	}
	return failed("SQLite", "unable to determine version")
}

// checkDatabase opens an existing database and reports what it holds. A
// missing file is fine; the first run creates it.
func checkDatabase(dbPath string) checkResult {
	const name = "Database"
	if dbPath == "" {
		return warned(name, "no database path specified (use --db flag or config)")
	}

	info, err := os.Stat(dbPath)
	switch {
	case os.IsNotExist(err):
		return passed(name, "%s (will be created on first run)", dbPath)
	case err != nil:
		return failed(name, "cannot access %s: %v", dbPath, err)
	case !info.Mode().IsRegular():
		return failed(name, "%s is not a regular file", dbPath)
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return failed(name, "cannot open %s: %v", dbPath, err)
	}
	defer db.Close()

	if err := db.CheckIntegrity(); err != nil {
		return failed(name, "integrity check failed: %v", err)
	}
	counts, err := db.Counts()
	if err != nil {
		return failed(name, "cannot read %s: %v", dbPath, err)
	}
	version, _ := db.SchemaVersion()

	summary := fmt.Sprintf("%s (%s, schema v%d, %d leagues, %d teams, %d games, %d plate appearances)",
		dbPath, util.FormatBytes(info.Size()), version, counts.Leagues, counts.Teams, counts.Games, counts.Appearances)

	// a run that never finished was interrupted; its games may be partial
	run, err := db.LatestRun()
	if err == nil && run != nil && run.FinishedAt.IsZero() {
		return warned(name, "%s; last run %s (%s) did not finish", summary, run.ID, run.Mode)
	}
	return passed(name, "%s", summary)
}

// checkInputDirectory counts scoresheets and flags names that processing
// would reject or that map two files onto the same game.
func checkInputDirectory(path string) checkResult {
	const name = "Input directory"

	entries, err := os.ReadDir(path)
	if err != nil {
		if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
			return failed(name, "%s is not a directory", path)
		}
		return warned(name, "cannot read %s: %v", path, err)
	}

	var misnamed []string
	games := make(map[string][]string)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		game, err := parse.ParseFilename(e.Name())
		if err != nil {
			misnamed = append(misnamed, e.Name())
			continue
		}
		key := game.GameKey.String()
		games[key] = append(games[key], e.Name())
	}

	var clashes []string
	sheets := len(misnamed)
	for key, files := range games {
		sheets += len(files)
		if len(files) > 1 {
			clashes = append(clashes, fmt.Sprintf("%s (%s)", key, strings.Join(files, ", ")))
		}
	}
	sort.Strings(clashes)

	switch {
	case sheets == 0:
		return warned(name, "%s (no scoresheets)", path)
	case len(misnamed) > 0:
		return warned(name, "%s (%d scoresheets, %d misnamed: %s)", path, sheets, len(misnamed), strings.Join(misnamed, ", "))
	case len(clashes) > 0:
		return warned(name, "%s (%d scoresheets, same game in several files: %s)", path, sheets, strings.Join(clashes, "; "))
	}
	return passed(name, "%s (%d scoresheets, %d games)", path, sheets, len(games))
}

func checkWritable(name, path string) checkResult {
	if err := util.CheckWritableDir(path); err != nil {
		return failed(name, "cannot write to %s: %v", path, err)
	}
	return passed(name, "%s (writable)", path)
}

func checkDiskSpace(path string, label string) checkResult {
	name := fmt.Sprintf("Disk space (%s)", label)

	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return warned(name, "cannot determine disk space: %v", err)
	}

	avail := int64(stat.Bavail) * int64(stat.Bsize)
	total := int64(stat.Blocks) * int64(stat.Bsize)
	if avail < lowDiskSpace {
		return warned(name, "%s of %s available (low space!)", util.FormatBytes(avail), util.FormatBytes(total))
	}
	return passed(name, "%s of %s available", util.FormatBytes(avail), util.FormatBytes(total))
}
