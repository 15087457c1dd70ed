// Package stats folds plate appearances into batting lines and derives rate
// statistics from them. Everything here is pure: no I/O and no shared state.
package stats

import "github.com/franz/softball-stats/internal/model"

// Line holds counting statistics. Lines combine by field-wise addition, so
// folding is commutative and associative.
type Line struct {
	PA      int
	AB      int
	H       int
	Singles int
	Doubles int
	Triples int
	HR      int
	BB      int
	HBP     int
	SO      int
	SF      int
	ROE     int
	HRO     int
	RBI     int
	R       int
}

// Rates is the derived view of a Line
type Rates struct {
	BA  Rate
	OBP Rate
	SLG Rate
	OPS Rate
}

// Record adds one plate appearance to the line
func (l *Line) Record(pa model.PlateAppearance) {
	l.PA++
	if pa.IsAtBat() {
		l.AB++
	}
	if pa.IsHit() {
		l.H++
	}

	switch pa.Outcome {
	case model.Single:
		l.Singles++
	case model.Double:
		l.Doubles++
	case model.Triple:
		l.Triples++
	case model.HomeRun:
		l.HR++
	case model.Walk:
		l.BB++
	case model.HitByPitch:
		l.HBP++
	case model.Strikeout:
		l.SO++
	case model.SacrificeFly:
		l.SF++
	case model.ReachedOnError:
		l.ROE++
	case model.HomeRunOut:
		l.HRO++
	}

	l.RBI += pa.RBIs
	l.R += pa.Runs
}

// Plus returns the field-wise sum of two lines
func (l Line) Plus(o Line) Line {
	return Line{
		PA:      l.PA + o.PA,
		AB:      l.AB + o.AB,
		H:       l.H + o.H,
		Singles: l.Singles + o.Singles,
		Doubles: l.Doubles + o.Doubles,
		Triples: l.Triples + o.Triples,
		HR:      l.HR + o.HR,
		BB:      l.BB + o.BB,
		HBP:     l.HBP + o.HBP,
		SO:      l.SO + o.SO,
		SF:      l.SF + o.SF,
		ROE:     l.ROE + o.ROE,
		HRO:     l.HRO + o.HRO,
		RBI:     l.RBI + o.RBI,
		R:       l.R + o.R,
	}
}

// TotalBases is 1B + 2*2B + 3*3B + 4*HR
func (l Line) TotalBases() int {
	return l.Singles + 2*l.Doubles + 3*l.Triples + 4*l.HR
}

// BA is H / AB
func (l Line) BA() Rate {
	return Ratio(l.H, l.AB)
}

// OBP is (H + BB + HBP) / (AB + BB + HBP + SF)
func (l Line) OBP() Rate {
	return Ratio(l.H+l.BB+l.HBP, l.AB+l.BB+l.HBP+l.SF)
}

// SLG is TB / AB
func (l Line) SLG() Rate {
	return Ratio(l.TotalBases(), l.AB)
}

// OPS is OBP + SLG, undefined when either part is
func (l Line) OPS() Rate {
	return l.OBP().Plus(l.SLG())
}

// Rates computes all rate statistics
func (l Line) Rates() Rates {
	return Rates{
		BA:  l.BA(),
		OBP: l.OBP(),
		SLG: l.SLG(),
		OPS: l.OPS(),
	}
}
