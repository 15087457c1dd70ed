package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/franz/softball-stats/internal/store"
)

// confirm asks a yes/no question; anything but y/yes is a no.
// A *bufio.Reader passed as in is read directly.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (y/N): ", question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// replacePrompt builds the duplicate confirmation used by `process`.
// All prompts of one run share a reader so buffered answers are not lost.
func replacePrompt(in io.Reader, out io.Writer) func(dup *store.DuplicateGameError) bool {
	r := bufio.NewReader(in)
	return func(dup *store.DuplicateGameError) bool {
		question := fmt.Sprintf("Game %s is already recorded", dup.Key)
		if !dup.ImportedAt.IsZero() {
			question += fmt.Sprintf(" (imported %s)", dup.ImportedAt.Local().Format("2006-01-02 15:04"))
		}
		if dup.SameContent {
			question += " with identical content"
		}
		return confirm(r, out, question+". Replace it?")
	}
}
