package model

// PlateAppearance is one batter's turn as read from one scoresheet cell.
// Rows are immutable once persisted.
type PlateAppearance struct {
	Player   string
	Outcome  Outcome
	Notation string // raw cell text, e.g. "2B*+"
	RBIs     int
	Runs     int
	Row      int // 1-based CSV line, header is row 1
	Column   int // 1-based CSV column
}

// IsAtBat reports whether the appearance counts as an at-bat
func (pa PlateAppearance) IsAtBat() bool { return pa.Outcome.IsAtBat() }

// IsHit reports whether the appearance is a hit
func (pa PlateAppearance) IsHit() bool { return pa.Outcome.IsHit() }

// Bases returns total bases credited
func (pa PlateAppearance) Bases() int { return pa.Outcome.Bases() }
