package store

import (
	"database/sql"
)

// ListLeagues returns every league with team, season and game counts
func (s *Store) ListLeagues() ([]League, error) {
	rows, err := s.db.Query(`
		SELECT l.name,
		       COUNT(DISTINCT t.id),
		       COUNT(DISTINCT g.season),
		       COUNT(DISTINCT g.id)
		FROM leagues l
		LEFT JOIN teams t ON t.league_id = l.id
		LEFT JOIN games g ON g.team_id = t.id
		GROUP BY l.id
		ORDER BY l.name
	`)
	if err != nil {
		return nil, unavailable("list leagues", err)
	}
	defer rows.Close()

	var leagues []League
	for rows.Next() {
		var l League
		if err := rows.Scan(&l.Name, &l.Teams, &l.Seasons, &l.Games); err != nil {
			return nil, unavailable("scan league", err)
		}
		leagues = append(leagues, l)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list leagues", err)
	}
	return leagues, nil
}

// ListTeams returns the teams of one league. An unknown league has no teams.
func (s *Store) ListTeams(league string) ([]Team, error) {
	rows, err := s.db.Query(`
		SELECT l.name, t.name,
		       (SELECT COUNT(DISTINCT season) FROM games WHERE team_id = t.id),
		       (SELECT COUNT(*) FROM games WHERE team_id = t.id),
		       (SELECT COUNT(*) FROM players WHERE team_id = t.id)
		FROM teams t
		JOIN leagues l ON l.id = t.league_id
		WHERE l.name = ?
		ORDER BY t.name
	`, league)
	if err != nil {
		return nil, unavailable("list teams", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.League, &t.Name, &t.Seasons, &t.Games, &t.Players); err != nil {
			return nil, unavailable("scan team", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list teams", err)
	}
	return teams, nil
}

// Counts returns row counts for the main tables
func (s *Store) Counts() (*Counts, error) {
	var c Counts
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM leagues),
			(SELECT COUNT(*) FROM teams),
			(SELECT COUNT(*) FROM players),
			(SELECT COUNT(*) FROM games),
			(SELECT COUNT(*) FROM plate_appearances),
			(SELECT COUNT(*) FROM parsing_warnings)
	`).Scan(&c.Leagues, &c.Teams, &c.Players, &c.Games, &c.Appearances, &c.Warnings)
	if err != nil {
		return nil, unavailable("count rows", err)
	}
	return &c, nil
}

// Reset deletes every recorded game and run, keeping the schema
func (s *Store) Reset() error {
	return s.Transaction(func(tx *sql.Tx) error {
		for _, table := range []string{
			"parsing_warnings",
			"plate_appearances",
			"games",
			"players",
			"teams",
			"leagues",
			"run_files",
			"runs",
		} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return unavailable("reset "+table, err)
			}
		}
		return nil
	})
}
