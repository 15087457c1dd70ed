// Package ingest turns scoresheet files into recorded games: parse,
// validate, save under the duplicate policy and log what happened.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/franz/softball-stats/internal/model"
	"github.com/franz/softball-stats/internal/parse"
	"github.com/franz/softball-stats/internal/report"
	"github.com/franz/softball-stats/internal/store"
	"github.com/franz/softball-stats/internal/util"
)

// RunRecorder keeps per-run bookkeeping. *store.Store implements it.
type RunRecorder interface {
	CreateRun(mode string) (*store.Run, error)
	RecordRunFile(f *store.RunFile) error
	FinishRun(run *store.Run) error
}

// Pipeline processes scoresheets into a repository
type Pipeline struct {
	repo         store.Repository
	runs         RunRecorder
	fs           afero.Fs
	logger       *report.EventLogger
	showProgress bool
}

// Config holds pipeline configuration
type Config struct {
	Repo store.Repository
	// Runs is optional; without it no run history is kept
	Runs   RunRecorder
	Fs     afero.Fs
	Logger *report.EventLogger
	// ShowProgress renders a progress bar during batch runs
	ShowProgress bool
}

// New creates a new Pipeline
func New(cfg *Config) *Pipeline {
	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &Pipeline{
		repo:         cfg.Repo,
		runs:         cfg.Runs,
		fs:           fs,
		logger:       cfg.Logger,
		showProgress: cfg.ShowProgress,
	}
}

// Options controls duplicate handling for one invocation
type Options struct {
	// Replace overwrites games that are already recorded
	Replace bool
	// Confirm is asked when a duplicate is found and Replace is off.
	// Returning true replaces the stored game.
	Confirm func(dup *store.DuplicateGameError) bool
}

// FileResult is the outcome of processing one file
type FileResult struct {
	Path        string
	Key         model.GameKey
	Players     int
	Appearances int
	Warnings    []model.Warning
	Replaced    bool
	Status      string // one of the store.RunFile* statuses
	Err         error
	Duration    time.Duration
}

// ProcessFile parses, validates and saves one scoresheet. The returned
// FileResult is always non-nil; its Err equals the returned error.
func (p *Pipeline) ProcessFile(path string, opts Options) (*FileResult, error) {
	start := time.Now()
	result := &FileResult{Path: path, Status: store.RunFileFailed}

	err := p.processFile(path, opts, result)
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err
		return result, err
	}

	util.DebugLog("Processed %s in %v", filepath.Base(path), result.Duration.Round(time.Millisecond))
	return result, nil
}

func (p *Pipeline) processFile(path string, opts Options, result *FileResult) error {
	sheet, err := parse.ParseScoresheet(p.fs, path)
	if err != nil {
		p.logger.LogError(report.EventParse, path, err)
		return err
	}

	key := sheet.Game.GameKey
	result.Key = key
	p.logger.LogParse(path, key, len(sheet.Players), len(sheet.Appearances))

	if rbis, runs := sheet.RBIs(), sheet.Runs(); rbis != runs {
		err := fmt.Errorf("%s: %w (RBI %d, runs %d)", filepath.Base(path), util.ErrRunsMismatch, rbis, runs)
		p.logger.LogError(report.EventParse, path, err)
		return err
	}

	saved, err := p.repo.Save(&sheet.Game, sheet.Appearances, sheet.Warnings, store.SaveOptions{Replace: opts.Replace})

	var dup *store.DuplicateGameError
	if errors.As(err, &dup) && !opts.Replace && opts.Confirm != nil && opts.Confirm(dup) {
		saved, err = p.repo.Save(&sheet.Game, sheet.Appearances, sheet.Warnings, store.SaveOptions{Replace: true})
	}

	if err != nil {
		if errors.As(err, &dup) {
			result.Status = store.RunFileDuplicate
			p.logger.LogDuplicate(path, key, duplicateReason(dup))
			return err
		}
		p.logger.LogError(report.EventSave, path, err)
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	result.Players = saved.Players
	result.Appearances = saved.Appearances
	result.Warnings = sheet.Warnings
	result.Replaced = saved.Replaced
	result.Status = store.RunFileOK
	if saved.Replaced {
		result.Status = store.RunFileReplaced
	}

	p.logger.LogSave(path, key, saved.Players, saved.Appearances, saved.Replaced)
	for _, w := range sheet.Warnings {
		p.logger.LogWarning(path, key, w)
	}

	return nil
}

func duplicateReason(dup *store.DuplicateGameError) string {
	if dup.SameContent {
		return "identical content already recorded"
	}
	return fmt.Sprintf("game already recorded with different content (stored sha1 %s)", util.ShortHash(dup.Checksum))
}
