package model

import "fmt"

// Outcome classifies a plate appearance. The set is closed: every value has an
// entry in outcomeTable and nothing outside it is accepted.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	Single
	Double
	Triple
	HomeRun
	Walk
	HitByPitch
	Strikeout
	FlyOut
	GroundOut
	FieldOut
	FoulOut
	HomeRunOut
	SacrificeFly
	ReachedOnError
)

type outcomeInfo struct {
	code  string
	name  string
	atBat bool
	hit   bool
	bases int
	isOut bool
}

var outcomeTable = map[Outcome]outcomeInfo{
	Single:         {code: "1B", name: "single", atBat: true, hit: true, bases: 1},
	Double:         {code: "2B", name: "double", atBat: true, hit: true, bases: 2},
	Triple:         {code: "3B", name: "triple", atBat: true, hit: true, bases: 3},
	HomeRun:        {code: "HR", name: "home run", atBat: true, hit: true, bases: 4},
	Walk:           {code: "BB", name: "walk"},
	HitByPitch:     {code: "HBP", name: "hit by pitch"},
	Strikeout:      {code: "K", name: "strikeout", atBat: true, isOut: true},
	FlyOut:         {code: "FLY", name: "fly out", atBat: true, isOut: true},
	GroundOut:      {code: "GRD", name: "ground out", atBat: true, isOut: true},
	FieldOut:       {code: "OUT", name: "fielded out", atBat: true, isOut: true},
	FoulOut:        {code: "FO", name: "foul out", atBat: true, isOut: true},
	HomeRunOut:     {code: "HRO", name: "home run out", atBat: true, isOut: true},
	SacrificeFly:   {code: "SF", name: "sacrifice fly", isOut: true},
	ReachedOnError: {code: "ROE", name: "reached on error", atBat: true},
}

var outcomeByCode = func() map[string]Outcome {
	m := make(map[string]Outcome, len(outcomeTable))
	for o, info := range outcomeTable {
		m[info.code] = o
	}
	return m
}()

// Outcomes lists every known outcome in declaration order
func Outcomes() []Outcome {
	out := make([]Outcome, 0, len(outcomeTable))
	for o := Single; o <= ReachedOnError; o++ {
		out = append(out, o)
	}
	return out
}

// Valid reports whether o is a member of the closed set
func (o Outcome) Valid() bool {
	_, ok := outcomeTable[o]
	return ok
}

// Code is the stable storage code of the outcome
func (o Outcome) Code() string {
	return outcomeTable[o].code
}

// String returns a readable name
func (o Outcome) String() string {
	if info, ok := outcomeTable[o]; ok {
		return info.name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// IsAtBat reports whether the appearance counts as an official at-bat
func (o Outcome) IsAtBat() bool { return outcomeTable[o].atBat }

// IsHit reports whether the appearance is a base hit
func (o Outcome) IsHit() bool { return outcomeTable[o].hit }

// Bases is the number of bases credited for a hit (0 otherwise)
func (o Outcome) Bases() int { return outcomeTable[o].bases }

// IsOut reports whether the batter was retired
func (o Outcome) IsOut() bool { return outcomeTable[o].isOut }

// ParseOutcomeCode maps a storage code back to an outcome
func ParseOutcomeCode(code string) (Outcome, error) {
	o, ok := outcomeByCode[code]
	if !ok {
		return OutcomeUnknown, fmt.Errorf("unknown outcome code %q", code)
	}
	return o, nil
}
