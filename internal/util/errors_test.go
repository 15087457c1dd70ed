package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{fmt.Errorf("a.csv: %w", ErrInvalidFilenameFormat), true},
		{fmt.Errorf("row 3: %w", ErrUnrecognizedOutcome), true},
		{fmt.Errorf("row 3: %w", ErrInvalidNumericValue), true},
		{ErrMissingRequiredColumn, true},
		{fmt.Errorf("a.csv:4: %w", ErrMalformedCSV), true},
		{ErrNoAppearances, true},
		{ErrRunsMismatch, true},
		{ErrDuplicateGame, false},
		{fmt.Errorf("save: %w", ErrStorageUnavailable), false},
		{errors.New("boom"), false},
		{nil, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidationError(tt.err), "%v", tt.err)
	}
}
