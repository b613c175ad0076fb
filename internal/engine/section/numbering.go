package section

import (
	"strings"

	"github.com/irahardianto/threadpatch/internal/engine/patch"
)

// NumberedLine is a diff line with its old and new file line numbers.
// A zero number means the line has no position on that side.
type NumberedLine struct {
	Kind    Kind   `json:"kind"`
	Text    string `json:"text"`
	OldLine int    `json:"old_line,omitempty"`
	NewLine int    `json:"new_line,omitempty"`
}

// NumberLines assigns file line numbers to the lines of a diff text. The
// counters restart at every hunk header; lines outside a hunk get none.
func NumberLines(text string) []NumberedLine {
	var (
		out     []NumberedLine
		inHunk  bool
		oldLine int
		newLine int
	)

	for _, line := range patch.SplitLines(text) {
		nl := NumberedLine{Kind: Classify(line), Text: line}

		switch nl.Kind {
		case KindHunkHeader:
			oldStart, _, newStart, _, ok := patch.ParseHunkHeader(line)
			inHunk = ok
			oldLine, newLine = oldStart, newStart
		case KindAdd:
			if inHunk {
				nl.NewLine = newLine
				newLine++
			}
		case KindDel:
			if inHunk {
				nl.OldLine = oldLine
				oldLine++
			}
		case KindCtx:
			if inHunk {
				nl.OldLine, nl.NewLine = oldLine, newLine
				oldLine++
				newLine++
			}
		case KindNote:
			// Mailers strip the space off blank context lines.
			if inHunk && line == "" {
				nl.OldLine, nl.NewLine = oldLine, newLine
				oldLine++
				newLine++
			}
		case KindMeta:
			if strings.HasPrefix(line, "diff --git ") {
				inHunk = false
			}
		}

		out = append(out, nl)
	}

	return out
}
