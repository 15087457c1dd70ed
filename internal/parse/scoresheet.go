package parse

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/franz/softball-stats/internal/model"
	"github.com/franz/softball-stats/internal/util"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Scoresheet is a fully parsed game file
type Scoresheet struct {
	Game        model.GameFile
	Players     []string // distinct, sorted
	Appearances []model.PlateAppearance
	Warnings    []model.Warning
	Size        int64
}

// RBIs returns the total runs batted in over all appearances
func (s *Scoresheet) RBIs() int {
	n := 0
	for _, pa := range s.Appearances {
		n += pa.RBIs
	}
	return n
}

// Runs returns the total runs scored over all appearances
func (s *Scoresheet) Runs() int {
	n := 0
	for _, pa := range s.Appearances {
		n += pa.Runs
	}
	return n
}

// ParseScoresheet reads and parses one game file from fs
func ParseScoresheet(fs afero.Fs, path string) (*Scoresheet, error) {
	game, err := ParseFilename(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	game.Checksum = util.HashBytes(data)

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		e := newError(util.ErrMissingRequiredColumn, "file is empty", "")
		return nil, e.at(name, 0, 0)
	}
	if err != nil {
		return nil, malformed(name, err)
	}

	schema, err := NewSchema(header)
	if err != nil {
		return nil, locateFile(err, name)
	}

	sheet := &Scoresheet{
		Game: game,
		Size: int64(len(data)),
	}
	seen := make(map[string]bool)

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(name, err)
		}
		line, _ := r.FieldPos(0)

		res, err := ParseRow(schema, line, record)
		if err != nil {
			return nil, locateFile(err, name)
		}
		if res.Player == "" {
			continue
		}

		if !seen[res.Player] {
			seen[res.Player] = true
			sheet.Players = append(sheet.Players, res.Player)
		}
		sheet.Appearances = append(sheet.Appearances, res.Appearances...)
		for _, w := range res.Warnings {
			w.File = name
			sheet.Warnings = append(sheet.Warnings, w)
		}
	}

	if len(sheet.Appearances) == 0 {
		e := newError(util.ErrNoAppearances, "no attempt cells filled in", "")
		return nil, e.at(name, 0, 0)
	}

	sort.Strings(sheet.Players)
	return sheet, nil
}

// malformed reports a CSV syntax error at the position the reader gives
func malformed(file string, err error) error {
	e := newError(util.ErrMalformedCSV, err.Error(), "")
	var ce *csv.ParseError
	if errors.As(err, &ce) {
		e.Reason = ce.Err.Error()
		e.Row, e.Column = ce.Line, ce.Column
	}
	return e.at(file, 0, 0)
}

func locateFile(err error, file string) error {
	if pe, ok := err.(*Error); ok {
		return pe.at(file, 0, 0)
	}
	return err
}
