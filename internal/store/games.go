package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/franz/softball-stats/internal/model"
	"github.com/franz/softball-stats/internal/stats"
)

const gameByKey = `
	SELECT g.id, COALESCE(g.content_sha1, ''), g.imported_at
	FROM games g
	JOIN teams t ON t.id = g.team_id
	JOIN leagues l ON l.id = t.league_id
	WHERE l.name = ? AND t.name = ? AND g.season = ? AND g.game_number = ?
`

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

type gameRow struct {
	id         int64
	checksum   string
	importedAt time.Time
}

// lookupGame returns nil when the game is not recorded
func lookupGame(q querier, key model.GameKey) (*gameRow, error) {
	var g gameRow
	var importedAt sql.NullTime
	err := q.QueryRow(gameByKey, key.League, key.Team, key.Season, key.Game).
		Scan(&g.id, &g.checksum, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.importedAt = importedAt.Time
	return &g, nil
}

// Exists reports whether a game is recorded
func (s *Store) Exists(key model.GameKey) (bool, error) {
	g, err := lookupGame(s.db, key)
	if err != nil {
		return false, unavailable("look up game", err)
	}
	return g != nil, nil
}

// Save records a game with its appearances and warnings in one transaction
func (s *Store) Save(game *model.GameFile, rows []model.PlateAppearance, warnings []model.Warning, opts SaveOptions) (SaveResult, error) {
	var result SaveResult

	err := s.Transaction(func(tx *sql.Tx) error {
		existing, err := lookupGame(tx, game.GameKey)
		if err != nil {
			return unavailable("look up game", err)
		}

		if existing != nil && !opts.Replace {
			return &DuplicateGameError{
				Key:         game.GameKey,
				ImportedAt:  existing.importedAt,
				Checksum:    existing.checksum,
				SameContent: game.Checksum != "" && existing.checksum == game.Checksum,
			}
		}

		leagueID, err := ensureID(tx,
			"SELECT id FROM leagues WHERE name = ?",
			"INSERT INTO leagues (name) VALUES (?)",
			game.League)
		if err != nil {
			return unavailable("save league", err)
		}

		teamID, err := ensureID(tx,
			"SELECT id FROM teams WHERE league_id = ? AND name = ?",
			"INSERT INTO teams (league_id, name) VALUES (?, ?)",
			leagueID, game.Team)
		if err != nil {
			return unavailable("save team", err)
		}

		now := time.Now().UTC()
		var gameID int64
		if existing != nil {
			gameID = existing.id
			if err := clearGame(tx, gameID); err != nil {
				return unavailable("clear previous rows", err)
			}
			_, err := tx.Exec(`
				UPDATE games SET played_on = ?, source_path = ?, content_sha1 = ?, imported_at = ?
				WHERE id = ?
			`, nullable(game.Date), game.Path, game.Checksum, now, gameID)
			if err != nil {
				return unavailable("update game", err)
			}
		} else {
			res, err := tx.Exec(`
				INSERT INTO games (team_id, season, game_number, played_on, source_path, content_sha1, imported_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, teamID, game.Season, game.Game, nullable(game.Date), game.Path, game.Checksum, now)
			if err != nil {
				return unavailable("insert game", err)
			}
			if gameID, err = res.LastInsertId(); err != nil {
				return unavailable("insert game", err)
			}
		}

		players := make(map[string]int64)
		for i, pa := range rows {
			playerID, ok := players[pa.Player]
			if !ok {
				playerID, err = ensureID(tx,
					"SELECT id FROM players WHERE team_id = ? AND name = ?",
					"INSERT INTO players (team_id, name) VALUES (?, ?)",
					teamID, pa.Player)
				if err != nil {
					return unavailable("save player", err)
				}
				players[pa.Player] = playerID
			}

			_, err := tx.Exec(`
				INSERT INTO plate_appearances
				(game_id, player_id, seq, outcome, notation, rbis, runs_scored, row_num, col_num)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, gameID, playerID, i, pa.Outcome.Code(), pa.Notation, pa.RBIs, pa.Runs, pa.Row, pa.Column)
			if err != nil {
				return unavailable("insert plate appearance", err)
			}
		}

		for _, w := range warnings {
			_, err := tx.Exec(`
				INSERT INTO parsing_warnings
				(game_id, player_name, row_num, col_num, filename, original, assumption)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, gameID, w.Player, w.Row, w.Column, w.File, w.Original, w.Assumption)
			if err != nil {
				return unavailable("insert warning", err)
			}
		}

		if existing != nil {
			// players who only appeared in the replaced sheet
			_, err := tx.Exec(`
				DELETE FROM players WHERE team_id = ?
				AND id NOT IN (SELECT DISTINCT player_id FROM plate_appearances)
			`, teamID)
			if err != nil {
				return unavailable("prune players", err)
			}
		}

		result = SaveResult{
			GameID:      gameID,
			Replaced:    existing != nil,
			Players:     len(players),
			Appearances: len(rows),
		}
		return nil
	})

	return result, err
}

func clearGame(tx *sql.Tx, gameID int64) error {
	if _, err := tx.Exec("DELETE FROM parsing_warnings WHERE game_id = ?", gameID); err != nil {
		return err
	}
	_, err := tx.Exec("DELETE FROM plate_appearances WHERE game_id = ?", gameID)
	return err
}

// ensureID returns the id selected by selectQuery, inserting a row first
// when none exists. Both queries take the same arguments.
func ensureID(tx *sql.Tx, selectQuery, insertQuery string, args ...any) (int64, error) {
	var id int64
	err := tx.QueryRow(selectQuery, args...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	res, err := tx.Exec(insertQuery, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

const appearanceColumns = `
	SELECT l.name, t.name, g.season, g.game_number, COALESCE(g.played_on, ''),
	       p.name, pa.outcome, pa.notation, pa.rbis, pa.runs_scored,
	       COALESCE(pa.row_num, 0), COALESCE(pa.col_num, 0)
	FROM plate_appearances pa
	JOIN games g ON g.id = pa.game_id
	JOIN players p ON p.id = pa.player_id
	JOIN teams t ON t.id = g.team_id
	JOIN leagues l ON l.id = t.league_id
`

type storedAppearance struct {
	key  model.GameKey
	date string
	pa   model.PlateAppearance
}

func (s *Store) scanAppearances(where string, args ...any) ([]storedAppearance, error) {
	query := appearanceColumns
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY l.name, t.name, g.season, g.game_number, pa.seq"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []storedAppearance
	for rows.Next() {
		var sa storedAppearance
		var code string
		err := rows.Scan(
			&sa.key.League, &sa.key.Team, &sa.key.Season, &sa.key.Game, &sa.date,
			&sa.pa.Player, &code, &sa.pa.Notation, &sa.pa.RBIs, &sa.pa.Runs,
			&sa.pa.Row, &sa.pa.Column,
		)
		if err != nil {
			return nil, err
		}
		if sa.pa.Outcome, err = model.ParseOutcomeCode(code); err != nil {
			return nil, fmt.Errorf("%s: %w", sa.key, err)
		}
		out = append(out, sa)
	}

	return out, rows.Err()
}

// Appearances returns the stored rows of one game in source order
func (s *Store) Appearances(key model.GameKey) ([]model.PlateAppearance, error) {
	found, err := s.scanAppearances(
		"l.name = ? AND t.name = ? AND g.season = ? AND g.game_number = ?",
		key.League, key.Team, key.Season, key.Game)
	if err != nil {
		return nil, unavailable("load appearances", err)
	}

	out := make([]model.PlateAppearance, len(found))
	for i, sa := range found {
		out[i] = sa.pa
	}
	return out, nil
}

// Query returns per-player game lines for every game matching scope
func (s *Store) Query(scope Scope) ([]stats.GameLine, error) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		conds = append(conds, cond)
		args = append(args, v)
	}
	if scope.League != "" {
		add("l.name = ?", scope.League)
	}
	if scope.Team != "" {
		add("t.name = ?", scope.Team)
	}
	if scope.Season != "" {
		add("g.season = ?", scope.Season)
	}
	if scope.Game != 0 {
		add("g.game_number = ?", scope.Game)
	}
	if scope.Player != "" {
		add("p.name = ?", scope.Player)
	}

	found, err := s.scanAppearances(strings.Join(conds, " AND "), args...)
	if err != nil {
		return nil, unavailable("query appearances", err)
	}
	return foldStored(found), nil
}

// foldStored folds rows that arrive grouped by game
func foldStored(found []storedAppearance) []stats.GameLine {
	var lines []stats.GameLine
	for start := 0; start < len(found); {
		end := start
		for end < len(found) && found[end].key == found[start].key {
			end++
		}

		pas := make([]model.PlateAppearance, 0, end-start)
		for _, sa := range found[start:end] {
			pas = append(pas, sa.pa)
		}
		for _, gl := range stats.FoldAppearances(found[start].key, pas) {
			gl.Date = found[start].date
			lines = append(lines, gl)
		}
		start = end
	}
	return lines
}

// Warnings returns the parse assumptions stored with a game
func (s *Store) Warnings(key model.GameKey) ([]model.Warning, error) {
	all, err := s.loadWarnings(
		"WHERE l.name = ? AND t.name = ? AND g.season = ? AND g.game_number = ?", 0,
		key.League, key.Team, key.Season, key.Game)
	if err != nil {
		return nil, err
	}

	out := make([]model.Warning, len(all))
	for i, w := range all {
		out[i] = w.Warning
	}
	return out, nil
}

// AllWarnings returns stored warnings across every game, newest game first.
// limit <= 0 returns all of them.
func (s *Store) AllWarnings(limit int) ([]StoredWarning, error) {
	return s.loadWarnings("", limit)
}

func (s *Store) loadWarnings(where string, limit int, args ...any) ([]StoredWarning, error) {
	query := `
		SELECT l.name, t.name, g.season, g.game_number,
		       w.player_name, COALESCE(w.row_num, 0), COALESCE(w.col_num, 0),
		       COALESCE(w.filename, ''), COALESCE(w.original, ''), w.assumption
		FROM parsing_warnings w
		JOIN games g ON g.id = w.game_id
		JOIN teams t ON t.id = g.team_id
		JOIN leagues l ON l.id = t.league_id
	` + where + " ORDER BY g.imported_at DESC, w.id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, unavailable("load warnings", err)
	}
	defer rows.Close()

	var out []StoredWarning
	for rows.Next() {
		var w StoredWarning
		err := rows.Scan(
			&w.Key.League, &w.Key.Team, &w.Key.Season, &w.Key.Game,
			&w.Player, &w.Row, &w.Column, &w.File, &w.Original, &w.Assumption,
		)
		if err != nil {
			return nil, unavailable("scan warning", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("load warnings", err)
	}
	return out, nil
}
