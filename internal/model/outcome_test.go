package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeTableIsExhaustive(t *testing.T) {
	seen := make(map[string]bool)
	for _, o := range Outcomes() {
		require.True(t, o.Valid(), "outcome %d has no table entry", int(o))
		assert.NotEmpty(t, o.Code())
		assert.False(t, seen[o.Code()], "duplicate code %s", o.Code())
		seen[o.Code()] = true

		back, err := ParseOutcomeCode(o.Code())
		require.NoError(t, err)
		assert.Equal(t, o, back)

		if o.IsHit() {
			assert.True(t, o.IsAtBat(), "%s: hits are at-bats", o)
			assert.Greater(t, o.Bases(), 0, "%s: hits gain bases", o)
		} else {
			assert.Zero(t, o.Bases(), "%s: only hits gain bases", o)
		}
	}
	assert.Len(t, seen, len(outcomeTable))
}

func TestOutcomeTriples(t *testing.T) {
	tests := []struct {
		outcome Outcome
		atBat   bool
		hit     bool
		bases   int
	}{
		{Single, true, true, 1},
		{Double, true, true, 2},
		{Triple, true, true, 3},
		{HomeRun, true, true, 4},
		{Walk, false, false, 0},
		{HitByPitch, false, false, 0},
		{SacrificeFly, false, false, 0},
		{Strikeout, true, false, 0},
		{ReachedOnError, true, false, 0},
		{HomeRunOut, true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			assert.Equal(t, tt.atBat, tt.outcome.IsAtBat())
			assert.Equal(t, tt.hit, tt.outcome.IsHit())
			assert.Equal(t, tt.bases, tt.outcome.Bases())
		})
	}
}

func TestUnknownOutcome(t *testing.T) {
	assert.False(t, OutcomeUnknown.Valid())
	_, err := ParseOutcomeCode("XYZ")
	assert.Error(t, err)
}

func TestGameKeyString(t *testing.T) {
	k := GameKey{League: "fray", Team: "cyclones", Season: "winter", Game: 1}
	assert.Equal(t, "fray-cyclones-winter-01", k.String())
}
