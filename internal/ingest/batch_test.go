package ingest

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franz/softball-stats/internal/store"
	"github.com/franz/softball-stats/internal/util"
)

type fakeRuns struct {
	runs  []*store.Run
	files []*store.RunFile
	done  int
}

func (f *fakeRuns) CreateRun(mode string) (*store.Run, error) {
	run := &store.Run{ID: fmt.Sprintf("run-%d", len(f.runs)+1), Mode: mode}
	f.runs = append(f.runs, run)
	return run, nil
}

func (f *fakeRuns) RecordRunFile(rf *store.RunFile) error {
	f.files = append(f.files, rf)
	return nil
}

func (f *fakeRuns) FinishRun(*store.Run) error {
	f.done++
	return nil
}

func seedInput(t *testing.T, fs afero.Fs) {
	t.Helper()
	writeFile(t, fs, "/in/fray-owls-winter-01.csv", shortSheet)
	writeFile(t, fs, "/in/fray-cyclones-winter-02.csv", shortSheet)
	writeFile(t, fs, "/in/fray-cyclones-winter-01.csv", balancedSheet)
	writeFile(t, fs, "/in/cyclones-01.csv", shortSheet)
	writeFile(t, fs, "/in/notes.txt", "not a scoresheet")
	require.NoError(t, fs.MkdirAll("/in/archive.csv", 0o755))
}

func TestFindScoresheets(t *testing.T) {
	p, _, fs := newTestPipeline(t)
	seedInput(t, fs)

	paths, err := p.FindScoresheets("/in")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/in", "cyclones-01.csv"),
		filepath.Join("/in", "fray-cyclones-winter-01.csv"),
		filepath.Join("/in", "fray-cyclones-winter-02.csv"),
		filepath.Join("/in", "fray-owls-winter-01.csv"),
	}, paths)

	_, err = p.FindScoresheets("/missing")
	assert.Error(t, err)
}

func TestProcessAll(t *testing.T) {
	repo := store.NewMemory()
	fs := afero.NewMemMapFs()
	runs := &fakeRuns{}
	p := New(&Config{Repo: repo, Runs: runs, Fs: fs})
	seedInput(t, fs)

	res, err := p.ProcessAll("/in", ModeAll, Options{})
	require.NoError(t, err)

	require.Len(t, res.Files, 4)
	assert.Equal(t, 3, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 0, res.Duplicates)
	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, ModeAll, res.Mode)

	// a bad file does not stop the files after it
	assert.Equal(t, store.RunFileFailed, res.Files[0].Status)
	assert.ErrorIs(t, res.Err(), util.ErrInvalidFilenameFormat)

	leagues, err := repo.ListLeagues()
	require.NoError(t, err)
	require.Len(t, leagues, 1)
	assert.Equal(t, 3, leagues[0].Games)

	require.Len(t, runs.files, 4)
	assert.Equal(t, "", runs.files[0].GameKey)
	assert.NotEmpty(t, runs.files[0].Error)
	assert.Equal(t, "fray-cyclones-winter-01", runs.files[1].GameKey)
	assert.Equal(t, 9, runs.files[1].Appearances)
	assert.Equal(t, 1, runs.files[1].Warnings)
	assert.Equal(t, 1, runs.done)
	assert.Equal(t, 4, runs.runs[0].Files)
	assert.Equal(t, 3, runs.runs[0].Succeeded)
	assert.Equal(t, 1, runs.runs[0].Failed)

	t.Run("second pass reports duplicates", func(t *testing.T) {
		res, err := p.ProcessAll("/in", ModeAll, Options{})
		require.NoError(t, err)
		assert.Equal(t, 0, res.Succeeded)
		assert.Equal(t, 3, res.Duplicates)
		assert.Equal(t, 1, res.Failed)
		assert.ErrorIs(t, res.Err(), util.ErrDuplicateGame)
		assert.Equal(t, "run-2", res.RunID)
	})

	t.Run("replace", func(t *testing.T) {
		res, err := p.ProcessAll("/in", ModeAll, Options{Replace: true})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Succeeded)
		assert.Equal(t, 3, res.Replaced)
		assert.Equal(t, store.RunFileReplaced, res.Files[1].Status)
	})
}

func TestProcessAllEmptyDirectory(t *testing.T) {
	p, _, fs := newTestPipeline(t)
	require.NoError(t, fs.MkdirAll("/in", 0o755))

	res, err := p.ProcessAll("/in", ModeAll, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.NoError(t, res.Err())
}

func TestProcessAllMissingDirectory(t *testing.T) {
	p, _, _ := newTestPipeline(t)

	_, err := p.ProcessAll("/nowhere", ModeAll, Options{})
	assert.Error(t, err)
}

func TestBatchResultErrPrecedence(t *testing.T) {
	validation := fmt.Errorf("a.csv: %w", util.ErrInvalidNumericValue)
	duplicate := fmt.Errorf("b: %w", util.ErrDuplicateGame)
	export := fmt.Errorf("%w: out.xlsx: permission denied", util.ErrExportTargetUnavailable)
	storage := fmt.Errorf("save: %w: disk full", util.ErrStorageUnavailable)
	other := fmt.Errorf("failed to read a.csv: permission denied")

	tests := []struct {
		name string
		errs []error
		want error
	}{
		{"all ok", []error{nil, nil}, nil},
		{"other only", []error{other}, other},
		{"validation over other", []error{other, validation}, validation},
		{"duplicate over validation", []error{validation, duplicate, nil}, duplicate},
		{"export over duplicate", []error{duplicate, export}, export},
		{"storage wins", []error{storage, validation, duplicate, export}, storage},
		{"first of equal rank", []error{validation, fmt.Errorf("c: %w", util.ErrRunsMismatch)}, validation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &BatchResult{}
			for _, err := range tt.errs {
				b.Files = append(b.Files, &FileResult{Err: err})
			}
			assert.Equal(t, tt.want, b.Err())
		})
	}
}
