package stats

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/franz/softball-stats/internal/model"
)

// GameLine is one player's folded appearances in one game
type GameLine struct {
	model.GameKey
	Player string
	Date   string
	Line
}

// Level selects which dimensions an aggregate is grouped by
type Level int

const (
	// LevelGame groups by league, team, season, game and player
	LevelGame Level = iota
	// LevelSeason groups by league, team, season and player
	LevelSeason
	// LevelCareer groups by league, team and player across seasons
	LevelCareer
	// LevelAllTime groups by player only
	LevelAllTime
)

var levelNames = map[Level]string{
	LevelGame:    "game",
	LevelSeason:  "season",
	LevelCareer:  "career",
	LevelAllTime: "all",
}

func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel accepts game, season, career or all
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, n := range levelNames {
		if n == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q (want game, season, career or all)", s)
}

// Aggregate is a line over some scope. Dimensions the level folds away are
// left empty. Games is the number of distinct games contributing.
type Aggregate struct {
	League string
	Team   string
	Season string
	Game   int
	Player string
	Games  int
	Line
}

// FoldAppearances folds one game's appearances into one line per player,
// sorted by player name.
func FoldAppearances(key model.GameKey, pas []model.PlateAppearance) []GameLine {
	byPlayer := make(map[string]*GameLine)
	for _, pa := range pas {
		gl, ok := byPlayer[pa.Player]
		if !ok {
			gl = &GameLine{GameKey: key, Player: pa.Player}
			byPlayer[pa.Player] = gl
		}
		gl.Record(pa)
	}

	out := make([]GameLine, 0, len(byPlayer))
	for _, gl := range byPlayer {
		out = append(out, *gl)
	}
	slices.SortFunc(out, func(a, b GameLine) int {
		return strings.Compare(a.Player, b.Player)
	})
	return out
}

// Fold groups game lines into per-player aggregates at the given level
func Fold(lines []GameLine, level Level) []Aggregate {
	return fold(lines, level, true)
}

// FoldTeams groups game lines into team totals at the given level. The
// player dimension is dropped; LevelAllTime yields one grand total.
func FoldTeams(lines []GameLine, level Level) []Aggregate {
	return fold(lines, level, false)
}

// Total sums aggregates into one line
func Total(aggs []Aggregate) Line {
	var l Line
	for _, a := range aggs {
		l = l.Plus(a.Line)
	}
	return l
}

type groupKey struct {
	league, team, season, player string
	game                         int
}

func fold(lines []GameLine, level Level, byPlayer bool) []Aggregate {
	groups := make(map[groupKey]*Aggregate)
	games := make(map[groupKey]map[model.GameKey]struct{})

	for _, gl := range lines {
		k := keyAt(gl, level, byPlayer)
		agg, ok := groups[k]
		if !ok {
			agg = &Aggregate{
				League: k.league,
				Team:   k.team,
				Season: k.season,
				Game:   k.game,
				Player: k.player,
			}
			groups[k] = agg
			games[k] = make(map[model.GameKey]struct{})
		}
		agg.Line = agg.Line.Plus(gl.Line)
		games[k][gl.GameKey] = struct{}{}
	}

	out := make([]Aggregate, 0, len(groups))
	for k, agg := range groups {
		agg.Games = len(games[k])
		out = append(out, *agg)
	}
	SortAggregates(out)
	return out
}

func keyAt(gl GameLine, level Level, byPlayer bool) groupKey {
	var k groupKey
	if byPlayer {
		k.player = gl.Player
	}
	switch level {
	case LevelGame:
		k.league, k.team, k.season, k.game = gl.League, gl.Team, gl.Season, gl.Game
	case LevelSeason:
		k.league, k.team, k.season = gl.League, gl.Team, gl.Season
	case LevelCareer:
		k.league, k.team = gl.League, gl.Team
	}
	return k
}

// SortAggregates orders by league, team, player, season then game. The sort
// is stable so equal keys keep their input order.
func SortAggregates(aggs []Aggregate) {
	slices.SortStableFunc(aggs, func(a, b Aggregate) int {
		return cmp.Or(
			strings.Compare(a.League, b.League),
			strings.Compare(a.Team, b.Team),
			strings.Compare(a.Player, b.Player),
			strings.Compare(a.Season, b.Season),
			cmp.Compare(a.Game, b.Game),
		)
	})
}
