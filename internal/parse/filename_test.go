package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franz/softball-stats/internal/model"
	"github.com/franz/softball-stats/internal/util"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name string
		path string
		want model.GameKey
		date string
	}{
		{
			name: "plain",
			path: "fray-cyclones-winter-01.csv",
			want: model.GameKey{League: "fray", Team: "cyclones", Season: "winter", Game: 1},
		},
		{
			name: "with date",
			path: "data/input/fray-cyclones-winter-12_2024-01-15.csv",
			want: model.GameKey{League: "fray", Team: "cyclones", Season: "winter", Game: 12},
			date: "2024-01-15",
		},
		{
			name: "upper case extension",
			path: "acme-owls-fall2023-3.CSV",
			want: model.GameKey{League: "acme", Team: "owls", Season: "fall2023", Game: 3},
		},
		{
			name: "underscore in team",
			path: "fray-red_sox-winter-01.csv",
			want: model.GameKey{League: "fray", Team: "red_sox", Season: "winter", Game: 1},
		},
		{
			name: "underscores and date",
			path: "city_rec-red_sox-summer_2024-04_2024-05-01.csv",
			want: model.GameKey{League: "city_rec", Team: "red_sox", Season: "summer_2024", Game: 4},
			date: "2024-05-01",
		},
		{
			name: "no extension",
			path: "acme-owls-spring-7",
			want: model.GameKey{League: "acme", Team: "owls", Season: "spring", Game: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilename(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.GameKey)
			assert.Equal(t, tt.date, got.Date)
			assert.Equal(t, tt.path, got.Path)
		})
	}
}

func TestParseFilenameInvalid(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"three segments", "fray-cyclones-01.csv"},
		{"hyphenated team", "fray-blue-jays-winter-01.csv"},
		{"non numeric game", "fray-cyclones-winter-one.csv"},
		{"game zero", "fray-cyclones-winter-00.csv"},
		{"negative looking game", "fray-cyclones-winter--1.csv"},
		{"empty segment", "fray--winter-01.csv"},
		{"hyphenated season with date", "fray-cyclones-late-winter-01_2024-01-15.csv"},
		{"empty date", "fray-cyclones-winter-01_.csv"},
		{"bad date", "fray-cyclones-winter-01_2024-13-40.csv"},
		{"short date", "fray-cyclones-winter-01_2024.csv"},
		{"wrong extension", "fray-cyclones-winter-01.xlsx"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilename(tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, util.ErrInvalidFilenameFormat)

			var pe *Error
			require.ErrorAs(t, err, &pe)
			assert.NotEmpty(t, pe.Reason)
		})
	}
}

func TestParseFilenameNormalisesUnicode(t *testing.T) {
	// "e" followed by a combining acute accent
	got, err := ParseFilename("ligue-e\u0301clair-hiver-2.csv")
	require.NoError(t, err)
	assert.Equal(t, "\u00e9clair", got.Team)
}
