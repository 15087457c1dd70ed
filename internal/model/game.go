// Package model holds the domain types shared by the parser, the calculator,
// the store and the exporter.
package model

import "fmt"

// GameKey identifies one game. The four fields together are unique:
// processing the same key twice without a replace is a duplicate.
type GameKey struct {
	League string
	Team   string
	Season string
	Game   int
}

// String renders the key in filename form, e.g. fray-cyclones-winter-01
func (k GameKey) String() string {
	return fmt.Sprintf("%s-%s-%s-%02d", k.League, k.Team, k.Season, k.Game)
}

// GameFile is one uploaded scoresheet
type GameFile struct {
	GameKey
	Date     string // YYYY-MM-DD from the filename suffix, empty when absent
	Path     string
	Checksum string // SHA1 of the file content
}

// Warning records an assumption made while parsing, e.g. a bare "HR"
// recorded as a solo home run.
type Warning struct {
	Player     string
	Row        int
	Column     int
	File       string
	Original   string
	Assumption string
}

// String renders the warning for console output
func (w Warning) String() string {
	loc := ""
	if w.Row > 0 && w.Column > 0 {
		loc = fmt.Sprintf(" (row %d, column %d", w.Row, w.Column)
		if w.File != "" {
			loc += " in " + w.File
		}
		loc += ")"
	} else if w.File != "" {
		loc = " (in " + w.File + ")"
	}
	return fmt.Sprintf("player %q: %s%s, original %q", w.Player, w.Assumption, loc, w.Original)
}
