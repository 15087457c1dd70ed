// Package export renders batting statistics as an Excel workbook.
package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/franz/softball-stats/internal/stats"
)

// Fixed sheet names
const (
	SheetLegend  = "Legend"
	SheetLeagues = "League Summary"
	SheetSeason  = "Season"
	SheetCareer  = "Career"

	TeamTotalsLabel = "TEAM TOTALS"

	maxSheetName = 31
)

// PlayerColumns is the column order of every player sheet
var PlayerColumns = []string{
	"Player", "Team", "League", "Season",
	"AB", "H", "BB", "HR", "BA", "OBP", "SLG", "OPS",
	"PA", "1B", "2B", "3B", "HBP", "SO", "SF", "ROE", "HRO", "RBI", "R", "G",
}

var leagueColumns = []string{
	"League", "Team", "Season",
	"AB", "H", "BB", "HR", "BA", "OBP", "SLG", "OPS",
	"PA", "1B", "2B", "3B", "HBP", "SO", "SF", "ROE", "HRO", "RBI", "R", "G",
}

var legend = [][]any{
	{"PA", "Plate appearances"},
	{"AB", "At-bats (PA minus walks, hit by pitch and sacrifice flies)"},
	{"H", "Hits"},
	{"1B", "Singles"},
	{"2B", "Doubles"},
	{"3B", "Triples"},
	{"HR", "Home runs"},
	{"BB", "Walks"},
	{"HBP", "Hit by pitch"},
	{"SO", "Strikeouts"},
	{"SF", "Sacrifice flies"},
	{"ROE", "Reached on error"},
	{"HRO", "Home run outs (over the league home run limit)"},
	{"RBI", "Runs batted in"},
	{"R", "Runs scored"},
	{"G", "Games played"},
	{"BA", "Batting average: H / AB"},
	{"OBP", "On-base percentage: (H + BB + HBP) / (AB + BB + HBP + SF)"},
	{"SLG", "Slugging: (1B + 2x2B + 3x3B + 4xHR) / AB"},
	{"OPS", "OBP + SLG"},
	{"", "Blank rate cells have no defined value (zero denominator)"},
}

// Sheet is one worksheet. Cells hold string, int or stats.Rate values.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Workbook is the full export, in sheet order
type Workbook struct {
	Sheets []*Sheet
}

// Sheet returns the named sheet or nil
func (wb *Workbook) Sheet(name string) *Sheet {
	for _, s := range wb.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Build assembles the workbook from stored game lines
func Build(lines []stats.GameLine) *Workbook {
	wb := &Workbook{}

	wb.Sheets = append(wb.Sheets, &Sheet{
		Name:   SheetLegend,
		Header: []string{"Stat", "Meaning"},
		Rows:   legend,
	})

	teamTotals := stats.FoldTeams(lines, stats.LevelSeason)
	leagues := &Sheet{Name: SheetLeagues, Header: leagueColumns}
	for _, t := range teamTotals {
		leagues.Rows = append(leagues.Rows, append([]any{t.League, t.Team, t.Season}, statCells(t)...))
	}
	wb.Sheets = append(wb.Sheets, leagues)

	seasons := stats.Fold(lines, stats.LevelSeason)
	wb.Sheets = append(wb.Sheets, playerSheet(SheetSeason, seasons))
	wb.Sheets = append(wb.Sheets, playerSheet(SheetCareer, stats.Fold(lines, stats.LevelCareer)))

	taken := map[string]bool{}
	for _, s := range wb.Sheets {
		taken[strings.ToLower(s.Name)] = true
	}

	for _, team := range stats.FoldTeams(lines, stats.LevelCareer) {
		var members []stats.Aggregate
		for _, a := range seasons {
			if a.League == team.League && a.Team == team.Team {
				members = append(members, a)
			}
		}

		sheet := playerSheet(sheetName(team.League, team.Team, taken), members)
		totals := append([]any{TeamTotalsLabel, team.Team, team.League, ""}, statCells(team)...)
		sheet.Rows = append(sheet.Rows, totals)
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb
}

func playerSheet(name string, aggs []stats.Aggregate) *Sheet {
	s := &Sheet{Name: name, Header: PlayerColumns}
	for _, a := range aggs {
		s.Rows = append(s.Rows, append([]any{a.Player, a.Team, a.League, a.Season}, statCells(a)...))
	}
	return s
}

// statCells renders everything after the identity columns, in header order
func statCells(a stats.Aggregate) []any {
	r := a.Rates()
	return []any{
		a.AB, a.H, a.BB, a.HR, r.BA, r.OBP, r.SLG, r.OPS,
		a.PA, a.Singles, a.Doubles, a.Triples, a.HBP, a.SO, a.SF, a.ROE, a.HRO, a.RBI, a.R, a.Games,
	}
}

var titleCaser = cases.Title(language.English)

// DisplayName title-cases a league or team name for sheet titles
func DisplayName(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// Abbreviate shortens a name: initials for several words, otherwise the
// first five letters.
func Abbreviate(name string) string {
	words := strings.Fields(name)
	switch {
	case len(words) == 0:
		return "Unknown"
	case len(words) > 1:
		var b strings.Builder
		for _, w := range words {
			r, _ := utf8.DecodeRuneInString(w)
			b.WriteRune(r)
		}
		return truncate(strings.ToUpper(b.String()), 5)
	default:
		return truncate(words[0], 5)
	}
}

// sheetName picks a unique worksheet title for a team. The league is
// prefixed when the bare team name is already taken.
func sheetName(league, team string, taken map[string]bool) string {
	base := sanitizeSheetName(DisplayName(team))
	if base == "" {
		base = "Unknown"
	}
	if taken[strings.ToLower(truncate(base, maxSheetName))] {
		base = sanitizeSheetName(DisplayName(Abbreviate(league)) + " " + DisplayName(team))
	}

	name := truncate(base, maxSheetName)
	for i := 2; taken[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	taken[strings.ToLower(name)] = true
	return name
}

func sanitizeSheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return -1
		}
		return r
	}, s)
	return strings.Trim(s, "' ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
