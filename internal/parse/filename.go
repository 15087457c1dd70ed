// Package parse turns scoresheet files into plate appearances: the filename
// gives the game identity, the CSV rows give one appearance per attempt cell.
package parse

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/franz/softball-stats/internal/model"
	"github.com/franz/softball-stats/internal/util"
)

const (
	dateLayout    = "2006-01-02"
	keySegments   = 4
	scoresheetExt = ".csv"
)

// ParseFilename extracts the game identity from a scoresheet path of the form
// <league>-<team>-<season>-<game>[_<YYYY-MM-DD>].csv
//
// Segments are positional, so hyphens inside a league, team or season name
// cannot be told apart from separators. Such names are rejected; underscores
// are allowed anywhere before the game number.
func ParseFilename(path string) (model.GameFile, error) {
	base := filepath.Base(path)
	fail := func(reason string) (model.GameFile, error) {
		e := newError(util.ErrInvalidFilenameFormat, reason, "")
		e.File = base
		return model.GameFile{}, e
	}

	if base == "" || base == "." || base == string(filepath.Separator) {
		return fail("empty filename")
	}

	stem := base
	if ext := filepath.Ext(base); ext != "" {
		if !strings.EqualFold(ext, scoresheetExt) {
			return fail(fmt.Sprintf("extension %q is not %s", ext, scoresheetExt))
		}
		stem = strings.TrimSuffix(base, ext)
	}

	// the date carries hyphens of its own, so it is cut from the game segment
	// after the key segments are split off
	parts := strings.SplitN(stem, "-", keySegments)
	if len(parts) < keySegments {
		return fail(fmt.Sprintf("expected %d hyphen-separated segments (league-team-season-game), found %d",
			keySegments, len(parts)))
	}
	game, date, hasDate := strings.Cut(parts[3], "_")
	if strings.Contains(game, "-") {
		return fail(fmt.Sprintf("expected %d hyphen-separated segments (league-team-season-game), found %d",
			keySegments, keySegments+strings.Count(game, "-")))
	}
	if hasDate {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return fail(fmt.Sprintf("date %q is not YYYY-MM-DD", date))
		}
	}
	parts[3] = game

	for i, p := range parts {
		if strings.TrimSpace(p) == "" {
			return fail(fmt.Sprintf("segment %d is empty", i+1))
		}
		parts[i] = norm.NFC.String(strings.TrimSpace(p))
	}

	number, err := parseGameNumber(parts[3])
	if err != nil {
		return fail(err.Error())
	}

	return model.GameFile{
		GameKey: model.GameKey{
			League: parts[0],
			Team:   parts[1],
			Season: parts[2],
			Game:   number,
		},
		Date: date,
		Path: path,
	}, nil
}

func parseGameNumber(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("game number %q is not numeric", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("game number %q: %v", s, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("game number %q must be at least 1", s)
	}
	return n, nil
}
