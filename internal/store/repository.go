// Package store persists games and their plate appearances. Store is the
// SQLite implementation; Memory is an in-memory fake with the same semantics.
package store

import (
	"fmt"
	"time"

	"github.com/franz/softball-stats/internal/model"
	"github.com/franz/softball-stats/internal/stats"
	"github.com/franz/softball-stats/internal/util"
)

// Repository is the durable home of recorded games
type Repository interface {
	// Exists reports whether a game with this identity is recorded
	Exists(key model.GameKey) (bool, error)

	// Save records a game. Without opts.Replace an existing game yields a
	// *DuplicateGameError; with it the previous rows are replaced atomically.
	Save(game *model.GameFile, rows []model.PlateAppearance, warnings []model.Warning, opts SaveOptions) (SaveResult, error)

	// Appearances returns the stored rows of one game in source order
	Appearances(key model.GameKey) ([]model.PlateAppearance, error)

	// Query returns per-player game lines matching scope. No match is an
	// empty result, not an error.
	Query(scope Scope) ([]stats.GameLine, error)

	// Warnings returns the parse assumptions stored with a game
	Warnings(key model.GameKey) ([]model.Warning, error)

	ListLeagues() ([]League, error)
	ListTeams(league string) ([]Team, error)
}

// SaveOptions controls duplicate handling
type SaveOptions struct {
	Replace bool
}

// SaveResult describes a completed save
type SaveResult struct {
	GameID      int64
	Replaced    bool
	Players     int
	Appearances int
}

// Scope filters Query. Zero-valued fields match anything.
type Scope struct {
	League string
	Team   string
	Season string
	Player string
	Game   int
}

// Matches reports whether a game and player fall inside the scope
func (sc Scope) Matches(key model.GameKey, player string) bool {
	return (sc.League == "" || sc.League == key.League) &&
		(sc.Team == "" || sc.Team == key.Team) &&
		(sc.Season == "" || sc.Season == key.Season) &&
		(sc.Game == 0 || sc.Game == key.Game) &&
		(sc.Player == "" || sc.Player == player)
}

// League summarises one league
type League struct {
	Name    string
	Teams   int
	Seasons int
	Games   int
}

// Team summarises one team within a league
type Team struct {
	League  string
	Name    string
	Seasons int
	Games   int
	Players int
}

// DuplicateGameError is returned by Save when the game is already recorded
type DuplicateGameError struct {
	Key        model.GameKey
	ImportedAt time.Time
	Checksum   string
	// SameContent is set when the stored checksum matches the new upload
	SameContent bool
}

func (e *DuplicateGameError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Key, util.ErrDuplicateGame)
	if !e.ImportedAt.IsZero() {
		msg += fmt.Sprintf(" (imported %s)", e.ImportedAt.Format("2006-01-02 15:04"))
	}
	if e.SameContent {
		msg += ", identical content"
	}
	return msg
}

func (e *DuplicateGameError) Unwrap() error {
	return util.ErrDuplicateGame
}

// StoredWarning is a warning together with the game it belongs to
type StoredWarning struct {
	Key model.GameKey
	model.Warning
}

// Counts summarises database contents
type Counts struct {
	Leagues     int
	Teams       int
	Players     int
	Games       int
	Appearances int
	Warnings    int
}

// distinctPlayers counts the players appearing in rows
func distinctPlayers(rows []model.PlateAppearance) int {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		seen[r.Player] = struct{}{}
	}
	return len(seen)
}
