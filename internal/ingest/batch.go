package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"

	"github.com/franz/softball-stats/internal/model"
	"github.com/franz/softball-stats/internal/store"
	"github.com/franz/softball-stats/internal/util"
)

// Run modes recorded with each batch
const (
	ModeFiles   = "files"
	ModeAll     = "all"
	ModeRebuild = "rebuild"
)

// BatchResult summarises a multi-file run
type BatchResult struct {
	RunID      string
	Mode       string
	Files      []*FileResult
	Succeeded  int
	Replaced   int
	Duplicates int
	Failed     int
	Duration   time.Duration
}

// Err returns the most severe failure of the batch, or nil when every file
// was recorded. Severity: storage > export > duplicate > validation > other.
func (b *BatchResult) Err() error {
	var worst error
	worstRank := -1
	for _, f := range b.Files {
		if f.Err == nil {
			continue
		}
		if r := Severity(f.Err); r > worstRank {
			worst, worstRank = f.Err, r
		}
	}
	return worst
}

// Severity ranks an error class for batch reporting. Higher is worse; nil
// and unclassified errors rank 0.
func Severity(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, util.ErrStorageUnavailable):
		return 4
	case errors.Is(err, util.ErrExportTargetUnavailable):
		return 3
	case errors.Is(err, util.ErrDuplicateGame):
		return 2
	case util.IsValidationError(err):
		return 1
	default:
		return 0
	}
}

// FindScoresheets lists the *.csv files directly inside dir, sorted by name
func (p *Pipeline) FindScoresheets(dir string) ([]string, error) {
	entries, err := afero.ReadDir(p.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	// afero.ReadDir returns entries sorted by name
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// ProcessAll processes every scoresheet in dir. A failing file never aborts
// the batch; failures are collected in the result.
func (p *Pipeline) ProcessAll(dir string, mode string, opts Options) (*BatchResult, error) {
	paths, err := p.FindScoresheets(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		util.WarnLog("No CSV files found in %s", dir)
	}
	return p.ProcessFiles(paths, mode, opts)
}

// ProcessFiles processes the given files in order as one run
func (p *Pipeline) ProcessFiles(paths []string, mode string, opts Options) (*BatchResult, error) {
	start := time.Now()
	result := &BatchResult{
		Mode:  mode,
		Files: make([]*FileResult, 0, len(paths)),
	}

	var run *store.Run
	if p.runs != nil {
		var err error
		if run, err = p.runs.CreateRun(mode); err != nil {
			return nil, err
		}
		result.RunID = run.ID
		p.logger.SetRunID(run.ID)
	}
	p.logger.LogRun(mode, len(paths), false)

	var bar *progressbar.ProgressBar
	if p.showProgress && len(paths) > 1 {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetDescription("Processing"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	for _, path := range paths {
		if bar != nil {
			bar.Describe(fmt.Sprintf("Processing %s", filepath.Base(path)))
		}

		fr, err := p.ProcessFile(path, opts)
		result.Files = append(result.Files, fr)

		switch {
		case err == nil && fr.Replaced:
			result.Succeeded++
			result.Replaced++
		case err == nil:
			result.Succeeded++
		case fr.Status == store.RunFileDuplicate:
			result.Duplicates++
			util.WarnLog("%s: %v", filepath.Base(path), err)
		default:
			result.Failed++
			util.ErrorLog("%s: %v", filepath.Base(path), err)
		}

		if run != nil {
			p.record(run, fr)
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	if bar != nil {
		bar.Finish()
	}

	result.Duration = time.Since(start)

	if run != nil {
		run.Files = len(paths)
		run.Succeeded = result.Succeeded
		run.Failed = result.Failed + result.Duplicates
		if err := p.runs.FinishRun(run); err != nil {
			util.WarnLog("Failed to finish run %s: %v", run.ID, err)
		}
	}
	p.logger.LogRun(mode, len(paths), true)

	return result, nil
}

func (p *Pipeline) record(run *store.Run, fr *FileResult) {
	rf := &store.RunFile{
		RunID:       run.ID,
		Path:        fr.Path,
		Status:      fr.Status,
		Appearances: fr.Appearances,
		Warnings:    len(fr.Warnings),
	}
	if fr.Key != (model.GameKey{}) {
		rf.GameKey = fr.Key.String()
	}
	if fr.Err != nil {
		rf.Error = fr.Err.Error()
	}
	if err := p.runs.RecordRunFile(rf); err != nil {
		util.WarnLog("Failed to record %s in run history: %v", filepath.Base(fr.Path), err)
	}
}
