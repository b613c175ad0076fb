// Package patch locates unified diffs inside mail bodies and decomposes them
// into per-file hunks.
package patch

import (
	"fmt"
	"strings"
	"time"
)

// PatchInput is one email's diff-bearing text plus its send time.
type PatchInput struct {
	Content string    `json:"content" yaml:"content"`
	Date    time.Time `json:"date" yaml:"date"`
}

// Hunk is a single change region of a unified diff. Every element of Lines
// keeps its "+", "-" or " " prefix.
type Hunk struct {
	OldStart int      `json:"old_start"`
	OldLines int      `json:"old_lines"`
	NewStart int      `json:"new_start"`
	NewLines int      `json:"new_lines"`
	Lines    []string `json:"lines"`
}

// Delta is the net number of lines the hunk adds to the file.
func (h Hunk) Delta() int {
	return h.NewLines - h.OldLines
}

// NewEnd is the last new-file line covered by the hunk (inclusive).
func (h Hunk) NewEnd() int {
	return h.NewStart + h.NewLines - 1
}

// Header renders the hunk's "@@ -o,ol +n,nl @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
}

// FileDiff holds one file's hunks from one diff block.
type FileDiff struct {
	Path  string `json:"path"`
	Hunks []Hunk `json:"hunks"`
}

// stripSide removes a leading "a/" or "b/" from a diff path.
func stripSide(p string) string {
	if strings.HasPrefix(p, "a/") || strings.HasPrefix(p, "b/") {
		return p[2:]
	}
	return p
}
