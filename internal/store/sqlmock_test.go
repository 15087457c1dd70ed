package store

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franz/softball-stats/internal/model"
	"github.com/franz/softball-stats/internal/util"
)

var errDisk = errors.New("disk I/O error")

func mockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		mock.ExpectClose()
		require.NoError(t, db.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return &Store{db: db}, mock
}

func TestExistsStorageUnavailable(t *testing.T) {
	s, mock := mockStore(t)
	mock.ExpectQuery("SELECT g.id").WillReturnError(errDisk)

	_, err := s.Exists(model.GameKey{League: "a", Team: "b", Season: "c", Game: 1})
	require.ErrorIs(t, err, util.ErrStorageUnavailable)
	assert.ErrorIs(t, err, errDisk)
}

func TestSaveBeginFails(t *testing.T) {
	s, mock := mockStore(t)
	mock.ExpectBegin().WillReturnError(errDisk)

	_, err := s.Save(gameFile("a", "b", "c", 1), nil, nil, SaveOptions{})
	require.ErrorIs(t, err, util.ErrStorageUnavailable)
}

func TestSaveInsertFailsRollsBack(t *testing.T) {
	s, mock := mockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT g.id").WillReturnRows(sqlmock.NewRows([]string{"id", "content_sha1", "imported_at"}))
	mock.ExpectQuery("SELECT id FROM leagues").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("SELECT id FROM teams").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectExec("INSERT INTO games").WillReturnError(errDisk)
	mock.ExpectRollback()

	_, err := s.Save(gameFile("a", "b", "c", 1), nil, nil, SaveOptions{})
	require.ErrorIs(t, err, util.ErrStorageUnavailable)
	assert.ErrorIs(t, err, errDisk)
}

func TestSaveDuplicateIsNotStorageFailure(t *testing.T) {
	s, mock := mockStore(t)
	imported := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT g.id").WillReturnRows(
		sqlmock.NewRows([]string{"id", "content_sha1", "imported_at"}).AddRow(7, "old", imported))
	mock.ExpectRollback()

	_, err := s.Save(gameFile("a", "b", "c", 1), nil, nil, SaveOptions{})
	require.ErrorIs(t, err, util.ErrDuplicateGame)
	assert.False(t, errors.Is(err, util.ErrStorageUnavailable))

	var dup *DuplicateGameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, imported, dup.ImportedAt)
	assert.False(t, dup.SameContent)
	assert.Contains(t, err.Error(), "2024-01-15 20:00")
}

func TestSaveCommitFails(t *testing.T) {
	s, mock := mockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT g.id").WillReturnRows(sqlmock.NewRows([]string{"id", "content_sha1", "imported_at"}))
	mock.ExpectQuery("SELECT id FROM leagues").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("SELECT id FROM teams").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectExec("INSERT INTO games").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit().WillReturnError(errDisk)

	_, err := s.Save(gameFile("a", "b", "c", 1), nil, nil, SaveOptions{})
	require.ErrorIs(t, err, util.ErrStorageUnavailable)
}

func TestQueryStorageUnavailable(t *testing.T) {
	s, mock := mockStore(t)
	mock.ExpectQuery("FROM plate_appearances").WillReturnError(errDisk)

	_, err := s.Query(Scope{League: "fray"})
	require.ErrorIs(t, err, util.ErrStorageUnavailable)
}

func TestListLeaguesStorageUnavailable(t *testing.T) {
	s, mock := mockStore(t)
	mock.ExpectQuery("FROM leagues").WillReturnError(errDisk)

	_, err := s.ListLeagues()
	require.ErrorIs(t, err, util.ErrStorageUnavailable)
}

func TestResetRollsBackOnFailure(t *testing.T) {
	s, mock := mockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM parsing_warnings").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM plate_appearances").WillReturnError(errDisk)
	mock.ExpectRollback()

	err := s.Reset()
	require.ErrorIs(t, err, util.ErrStorageUnavailable)
}
