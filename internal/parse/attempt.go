package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/franz/softball-stats/internal/model"
	"github.com/franz/softball-stats/internal/util"
)

const (
	rbiMarker  = "*"
	runMarker  = "+"
	maxMarkers = 4

	assumeSoloHomeRun = "HR solo (assumed 1 RBI, 1 run scored)"
)

var (
	flyPattern    = regexp.MustCompile(`^F(10|[1-9])$`)
	errorPattern  = regexp.MustCompile(`^E(10|[1-9])$`)
	chainPattern  = regexp.MustCompile(`^\d+(-\d+)+$`)
	simplePattern = regexp.MustCompile(`^[1-9]$`)
	fieldPattern  = regexp.MustCompile(`^[A-Z](\d{1,2})$`)

	// three or more RBI markers, or two or more run markers, in a row
	stackedPattern = regexp.MustCompile(`\*{3,}|\+{2,}`)
)

var fixedNotations = map[string]model.Outcome{
	"1B":  model.Single,
	"2B":  model.Double,
	"3B":  model.Triple,
	"HR":  model.HomeRun,
	"BB":  model.Walk,
	"HBP": model.HitByPitch,
	"K":   model.Strikeout,
	"SF":  model.SacrificeFly,
	"FO":  model.FoulOut,
	"HRO": model.HomeRunOut,
	"HPO": model.FieldOut,
}

// Attempt is one decoded scoresheet cell
type Attempt struct {
	Outcome    model.Outcome
	Notation   string // normalised: upper case, no whitespace
	RBIs       int
	Runs       int
	Assumption string // set when the notation was completed by assumption
}

// ParseAttempt decodes attempt notation such as "2B*", "K", "F8+", "4-6-3" or
// "HR**+". Each "*" is one RBI and each "+" means the batter scored.
func ParseAttempt(cell string) (Attempt, error) {
	notation := strings.ToUpper(strings.Join(strings.Fields(cell), ""))
	if notation == "" {
		return Attempt{}, newError(util.ErrUnrecognizedOutcome, "empty attempt", cell)
	}

	rbis := strings.Count(notation, rbiMarker)
	runs := strings.Count(notation, runMarker)
	base := strings.NewReplacer(rbiMarker, "", runMarker, "").Replace(notation)

	outcome, ok := classify(base)
	if !ok {
		return Attempt{}, newError(util.ErrUnrecognizedOutcome,
			fmt.Sprintf("unknown attempt notation %q", base), cell)
	}

	if rbis > maxMarkers || runs > maxMarkers {
		return Attempt{}, newError(util.ErrInvalidNumericValue,
			fmt.Sprintf("too many modifiers (max %d of each)", maxMarkers), cell)
	}
	if outcome != model.HomeRun && stackedPattern.MatchString(notation) {
		return Attempt{}, newError(util.ErrInvalidNumericValue, "repeated modifiers", cell)
	}

	a := Attempt{
		Outcome:  outcome,
		Notation: notation,
		RBIs:     rbis,
		Runs:     runs,
	}

	switch {
	case outcome == model.HomeRun && a.RBIs == 0:
		a.RBIs = 1
		a.Runs = max(a.Runs, 1)
		a.Assumption = assumeSoloHomeRun
	case outcome == model.HomeRun && a.RBIs == 1 && a.Runs == 0:
		a.Runs = 1
		a.Assumption = assumeSoloHomeRun
	case (outcome == model.FlyOut || outcome == model.FoulOut) && a.RBIs > 0:
		a.Outcome = model.SacrificeFly
	}

	return a, nil
}

func classify(base string) (model.Outcome, bool) {
	if o, ok := fixedNotations[base]; ok {
		return o, true
	}

	switch {
	case flyPattern.MatchString(base):
		return model.FlyOut, true
	case errorPattern.MatchString(base):
		return model.ReachedOnError, true
	case chainPattern.MatchString(base):
		for _, p := range strings.Split(base, "-") {
			if !validPosition(p) {
				return model.OutcomeUnknown, false
			}
		}
		return model.GroundOut, true
	case simplePattern.MatchString(base):
		// a lone fielder number is scored as a catch by that fielder
		return model.FlyOut, true
	}

	if m := fieldPattern.FindStringSubmatch(base); m != nil && validPosition(m[1]) {
		return model.FieldOut, true
	}
	return model.OutcomeUnknown, false
}

func validPosition(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= 10
}
