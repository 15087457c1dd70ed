package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/franz/softball-stats/internal/model"
	"github.com/franz/softball-stats/internal/util"
)

// Column names recognised in a scoresheet header
const (
	ColumnPlayer = "Player Name"
	ColumnRBI    = "RBI"
	ColumnRuns   = "R"
)

// Schema is a validated scoresheet header. Every column that is not the
// player column or a declared total is an attempt column, and so is every
// cell a data row carries past the last header column.
type Schema struct {
	Headers  []string
	player   int
	rbi      int // -1 when absent
	runs     int // -1 when absent
	attempts []int
}

// NewSchema validates a header row
func NewSchema(header []string) (*Schema, error) {
	s := &Schema{
		Headers: header,
		player:  -1,
		rbi:     -1,
		runs:    -1,
	}

	for i, h := range header {
		var slot *int
		switch normaliseHeader(h) {
		case normaliseHeader(ColumnPlayer):
			slot = &s.player
		case normaliseHeader(ColumnRBI):
			slot = &s.rbi
		case normaliseHeader(ColumnRuns):
			slot = &s.runs
		default:
			s.attempts = append(s.attempts, i)
			continue
		}
		if *slot >= 0 {
			e := newError(util.ErrMissingRequiredColumn,
				fmt.Sprintf("column %q repeats column %d", strings.TrimSpace(h), *slot+1), "")
			e.Row, e.Column = 1, i+1
			return nil, e
		}
		*slot = i
	}

	if s.player < 0 {
		e := newError(util.ErrMissingRequiredColumn, fmt.Sprintf("header has no %q column", ColumnPlayer), "")
		e.Row = 1
		return nil, e
	}
	if len(s.attempts) == 0 {
		e := newError(util.ErrMissingRequiredColumn, "header has no attempt columns", "")
		e.Row = 1
		return nil, e
	}
	return s, nil
}

// AttemptColumns returns the number of attempt columns
func (s *Schema) AttemptColumns() int {
	return len(s.attempts)
}

// HasDeclaredTotals reports whether the sheet carries RBI or R total columns
func (s *Schema) HasDeclaredTotals() bool {
	return s.rbi >= 0 || s.runs >= 0
}

func normaliseHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), ""))
}

// RowResult is what one scoresheet row yields
type RowResult struct {
	Player      string
	Appearances []model.PlateAppearance
	Warnings    []model.Warning
}

// ParseRow decodes one data row. rowNum is the 1-based line in the file
// (the header is line 1). Rows without a player name yield an empty result.
func ParseRow(s *Schema, rowNum int, values []string) (RowResult, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(values) {
			return ""
		}
		return strings.TrimSpace(values[i])
	}

	player := cell(s.player)
	if player == "" {
		return RowResult{}, nil
	}

	res := RowResult{Player: player}
	var rbis, runs int

	cols := s.attempts
	if len(values) > len(s.Headers) {
		cols = append(make([]int, 0, len(s.attempts)+len(values)-len(s.Headers)), s.attempts...)
		for i := len(s.Headers); i < len(values); i++ {
			cols = append(cols, i)
		}
	}

	for _, col := range cols {
		raw := cell(col)
		if raw == "" {
			continue
		}
		a, err := ParseAttempt(raw)
		if err != nil {
			return RowResult{}, locate(err, rowNum, col+1)
		}
		res.Appearances = append(res.Appearances, model.PlateAppearance{
			Player:   player,
			Outcome:  a.Outcome,
			Notation: a.Notation,
			RBIs:     a.RBIs,
			Runs:     a.Runs,
			Row:      rowNum,
			Column:   col + 1,
		})
		rbis += a.RBIs
		runs += a.Runs
		if a.Assumption != "" {
			res.Warnings = append(res.Warnings, model.Warning{
				Player:     player,
				Row:        rowNum,
				Column:     col + 1,
				Original:   raw,
				Assumption: a.Assumption,
			})
		}
	}

	for _, d := range []struct {
		col    int
		label  string
		actual int
	}{
		{s.rbi, ColumnRBI, rbis},
		{s.runs, ColumnRuns, runs},
	} {
		if d.col < 0 || cell(d.col) == "" {
			continue
		}
		declared, err := parseCount(cell(d.col))
		if err != nil {
			return RowResult{}, locate(err, rowNum, d.col+1)
		}
		if declared != d.actual {
			res.Warnings = append(res.Warnings, model.Warning{
				Player:     player,
				Row:        rowNum,
				Column:     d.col + 1,
				Original:   cell(d.col),
				Assumption: fmt.Sprintf("declared %s %d differs from attempts (%d), attempts kept", d.label, declared, d.actual),
			})
		}
	}

	return res, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, newError(util.ErrInvalidNumericValue, "not an integer", s)
	}
	if n < 0 {
		return 0, newError(util.ErrInvalidNumericValue, "negative count", s)
	}
	return n, nil
}

func locate(err error, row, col int) error {
	if pe, ok := err.(*Error); ok {
		return pe.at("", row, col)
	}
	return err
}
