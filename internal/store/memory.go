package store

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/franz/softball-stats/internal/model"
	"github.com/franz/softball-stats/internal/stats"
)

// Memory is an in-memory Repository for tests. It is not safe for
// concurrent use.
type Memory struct {
	games  map[model.GameKey]*memoryGame
	nextID int64
}

type memoryGame struct {
	id         int64
	file       model.GameFile
	rows       []model.PlateAppearance
	warnings   []model.Warning
	importedAt time.Time
}

var _ Repository = (*Memory)(nil)
var _ Repository = (*Store)(nil)

// NewMemory returns an empty in-memory repository
func NewMemory() *Memory {
	return &Memory{games: make(map[model.GameKey]*memoryGame)}
}

// Exists reports whether a game is recorded
func (m *Memory) Exists(key model.GameKey) (bool, error) {
	_, ok := m.games[key]
	return ok, nil
}

// Save records a game, replacing the previous copy when opts.Replace is set
func (m *Memory) Save(game *model.GameFile, rows []model.PlateAppearance, warnings []model.Warning, opts SaveOptions) (SaveResult, error) {
	existing, ok := m.games[game.GameKey]
	if ok && !opts.Replace {
		return SaveResult{}, &DuplicateGameError{
			Key:         game.GameKey,
			ImportedAt:  existing.importedAt,
			Checksum:    existing.file.Checksum,
			SameContent: game.Checksum != "" && existing.file.Checksum == game.Checksum,
		}
	}

	id := int64(0)
	if ok {
		id = existing.id
	} else {
		m.nextID++
		id = m.nextID
	}

	m.games[game.GameKey] = &memoryGame{
		id:         id,
		file:       *game,
		rows:       slices.Clone(rows),
		warnings:   slices.Clone(warnings),
		importedAt: time.Now().UTC(),
	}

	return SaveResult{
		GameID:      id,
		Replaced:    ok,
		Players:     distinctPlayers(rows),
		Appearances: len(rows),
	}, nil
}

// Appearances returns the stored rows of one game
func (m *Memory) Appearances(key model.GameKey) ([]model.PlateAppearance, error) {
	g, ok := m.games[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(g.rows), nil
}

// Query folds every matching game, ordered like the SQLite store
func (m *Memory) Query(scope Scope) ([]stats.GameLine, error) {
	var lines []stats.GameLine
	for _, key := range m.sortedKeys() {
		g := m.games[key]
		var pas []model.PlateAppearance
		for _, pa := range g.rows {
			if scope.Matches(key, pa.Player) {
				pas = append(pas, pa)
			}
		}
		for _, gl := range stats.FoldAppearances(key, pas) {
			gl.Date = g.file.Date
			lines = append(lines, gl)
		}
	}
	return lines, nil
}

// Warnings returns the parse assumptions stored with a game
func (m *Memory) Warnings(key model.GameKey) ([]model.Warning, error) {
	g, ok := m.games[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(g.warnings), nil
}

// ListLeagues summarises recorded leagues
func (m *Memory) ListLeagues() ([]League, error) {
	type acc struct {
		teams, seasons map[string]struct{}
		games          int
	}
	byName := make(map[string]*acc)
	for key := range m.games {
		a, ok := byName[key.League]
		if !ok {
			a = &acc{teams: map[string]struct{}{}, seasons: map[string]struct{}{}}
			byName[key.League] = a
		}
		a.teams[key.Team] = struct{}{}
		a.seasons[key.Season] = struct{}{}
		a.games++
	}

	leagues := make([]League, 0, len(byName))
	for name, a := range byName {
		leagues = append(leagues, League{Name: name, Teams: len(a.teams), Seasons: len(a.seasons), Games: a.games})
	}
	slices.SortFunc(leagues, func(a, b League) int { return strings.Compare(a.Name, b.Name) })
	return leagues, nil
}

// ListTeams summarises the teams of one league
func (m *Memory) ListTeams(league string) ([]Team, error) {
	type acc struct {
		seasons, players map[string]struct{}
		games            int
	}
	byName := make(map[string]*acc)
	for key, g := range m.games {
		if key.League != league {
			continue
		}
		a, ok := byName[key.Team]
		if !ok {
			a = &acc{seasons: map[string]struct{}{}, players: map[string]struct{}{}}
			byName[key.Team] = a
		}
		a.seasons[key.Season] = struct{}{}
		a.games++
		for _, pa := range g.rows {
			a.players[pa.Player] = struct{}{}
		}
	}

	teams := make([]Team, 0, len(byName))
	for name, a := range byName {
		teams = append(teams, Team{
			League:  league,
			Name:    name,
			Seasons: len(a.seasons),
			Games:   a.games,
			Players: len(a.players),
		})
	}
	slices.SortFunc(teams, func(a, b Team) int { return strings.Compare(a.Name, b.Name) })
	return teams, nil
}

func (m *Memory) sortedKeys() []model.GameKey {
	keys := make([]model.GameKey, 0, len(m.games))
	for k := range m.games {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b model.GameKey) int {
		return cmp.Or(
			strings.Compare(a.League, b.League),
			strings.Compare(a.Team, b.Team),
			strings.Compare(a.Season, b.Season),
			cmp.Compare(a.Game, b.Game),
		)
	})
	return keys
}
