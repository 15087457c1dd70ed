package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBookkeeping(t *testing.T) {
	s := openTestStore(t)

	latest, err := s.LatestRun()
	require.NoError(t, err)
	assert.Nil(t, latest)

	run, err := s.CreateRun("all")
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)

	require.NoError(t, s.RecordRunFile(&RunFile{
		RunID: run.ID, Path: "a-b-c-1.csv", GameKey: "a-b-c-01", Status: RunFileOK, Appearances: 12, Warnings: 1,
	}))
	require.NoError(t, s.RecordRunFile(&RunFile{
		RunID: run.ID, Path: "a-b-2.csv", Status: RunFileFailed, Error: "invalid filename format",
	}))

	run.Files, run.Succeeded, run.Failed = 2, 1, 1
	require.NoError(t, s.FinishRun(run))

	latest, err = s.LatestRun()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, run.ID, latest.ID)
	assert.Equal(t, "all", latest.Mode)
	assert.Equal(t, 2, latest.Files)
	assert.Equal(t, 1, latest.Failed)
	assert.False(t, latest.FinishedAt.IsZero())

	files, err := s.RunFiles(run.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	byPath := map[string]*RunFile{}
	for _, f := range files {
		byPath[f.Path] = f
	}
	assert.Equal(t, 12, byPath["a-b-c-1.csv"].Appearances)
	assert.Equal(t, RunFileFailed, byPath["a-b-2.csv"].Status)
	assert.Equal(t, "invalid filename format", byPath["a-b-2.csv"].Error)
}

func TestResetClearsEverything(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	_, err := s.CreateRun("files")
	require.NoError(t, err)

	c, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, 2, c.Leagues)
	assert.Equal(t, 3, c.Teams)
	assert.Equal(t, 5, c.Games)
	assert.Equal(t, 7, c.Appearances)

	require.NoError(t, s.Reset())

	c, err = s.Counts()
	require.NoError(t, err)
	assert.Equal(t, Counts{}, *c)

	latest, err := s.LatestRun()
	require.NoError(t, err)
	assert.Nil(t, latest)

	// schema survives a reset
	v, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, v)
}

func TestAllWarnings(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)

	all, err := s.AllWarnings(0)
	require.NoError(t, err)
	assert.Empty(t, all)
}
