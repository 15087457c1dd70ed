package util

import "errors"

// Sentinel errors for common failure modes.
//
// Input validation: the offending file is rejected and reported, never
// silently skipped.
var (
	// ErrInvalidFilenameFormat indicates a scoresheet name does not follow
	// <league>-<team>-<season>-<game>[_<YYYY-MM-DD>].csv
	ErrInvalidFilenameFormat = errors.New("invalid filename format")

	// ErrMalformedCSV indicates a scoresheet that is not well-formed CSV
	ErrMalformedCSV = errors.New("malformed CSV")

	// ErrMissingRequiredColumn indicates the CSV header lacks a required column
	ErrMissingRequiredColumn = errors.New("missing required column")

	// ErrUnrecognizedOutcome indicates an attempt notation outside the known set
	ErrUnrecognizedOutcome = errors.New("unrecognized outcome")

	// ErrInvalidNumericValue indicates a count that is non-integer, negative or out of range
	ErrInvalidNumericValue = errors.New("invalid numeric value")

	// ErrNoAppearances indicates a scoresheet without a single plate appearance
	ErrNoAppearances = errors.New("no plate appearances")

	// ErrRunsMismatch indicates a game whose RBI total differs from its run total
	ErrRunsMismatch = errors.New("RBI total does not equal run total")
)

// Policy: recoverable with an explicit replace.
var (
	// ErrDuplicateGame indicates the game identity is already recorded
	ErrDuplicateGame = errors.New("game already recorded")
)

// Environment: fatal for the current file, reported with the underlying cause.
var (
	// ErrStorageUnavailable indicates an I/O failure in the underlying store
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrExportTargetUnavailable indicates the export destination cannot be written
	ErrExportTargetUnavailable = errors.New("export target unavailable")
)

// IsValidationError reports whether err belongs to the input-validation class
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidFilenameFormat) ||
		errors.Is(err, ErrMalformedCSV) ||
		errors.Is(err, ErrMissingRequiredColumn) ||
		errors.Is(err, ErrUnrecognizedOutcome) ||
		errors.Is(err, ErrInvalidNumericValue) ||
		errors.Is(err, ErrNoAppearances) ||
		errors.Is(err, ErrRunsMismatch)
}
