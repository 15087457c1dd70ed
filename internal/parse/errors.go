package parse

import (
	"fmt"
	"strings"
)

// Error describes a scoresheet problem with enough context to find it in the
// source file. It unwraps to one of the util sentinel errors.
type Error struct {
	File   string
	Row    int // 0 when the problem is not tied to a row
	Column int // 0 when the problem is not tied to a column
	Value  string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, ":%d", e.Row)
		if e.Column > 0 {
			fmt.Fprintf(&b, ":%d", e.Column)
		}
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (value %q)", e.Value)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(sentinel error, reason, value string) *Error {
	return &Error{Err: sentinel, Reason: reason, Value: value}
}

// at fills in location fields that are still unset
func (e *Error) at(file string, row, col int) *Error {
	if e.File == "" {
		e.File = file
	}
	if e.Row == 0 {
		e.Row = row
	}
	if e.Column == 0 {
		e.Column = col
	}
	return e
}
