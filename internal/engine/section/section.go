// Package section splits diff text into per-file sections and classifies
// every line for rendering and syntax highlighting.
package section

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/irahardianto/threadpatch/internal/engine/patch"
)

// Kind classifies a diff line.
type Kind string

const (
	KindMeta       Kind = "meta"
	KindHunkHeader Kind = "hunkHeader"
	KindAdd        Kind = "add"
	KindDel        Kind = "del"
	KindCtx        Kind = "ctx"
	KindNote       Kind = "note"
)

// Code reports whether lines of this kind carry file content.
func (k Kind) Code() bool {
	return k == KindAdd || k == KindDel || k == KindCtx
}

// LineEntry is one classified line of a section.
type LineEntry struct {
	Kind    Kind   `json:"kind"`
	Text    string `json:"text"`
	Prefix  string `json:"prefix"`
	Content string `json:"content"`
	// HighlightIndex is the position of Content in File.HighlightableLines,
	// nil for lines that are not add, del or ctx.
	HighlightIndex *int `json:"highlight_index"`
}

// File is one per-file section of a diff text.
type File struct {
	FileID             string      `json:"file_id"`
	OldPath            string      `json:"old_path,omitempty"`
	NewPath            string      `json:"new_path,omitempty"`
	DisplayPath        string      `json:"display_path"`
	RawSectionText     string      `json:"raw"`
	Lines              []LineEntry `json:"lines"`
	HighlightableLines []string    `json:"highlightable_lines"`
}

// fileIDSpace namespaces the name-based section IDs.
var fileIDSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/irahardianto/threadpatch/section"))

var metaPrefixes = []string{
	"diff --git ",
	"index ",
	"--- ",
	"+++ ",
	"old mode ",
	"new mode ",
	"new file mode ",
	"deleted file mode ",
	"similarity index ",
	"rename from ",
	"rename to ",
}

// Classify returns the kind of a single diff line.
func Classify(line string) Kind {
	switch {
	case strings.HasPrefix(line, "@@ "):
		return KindHunkHeader
	case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++ "):
		return KindAdd
	case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "--- "):
		return KindDel
	case strings.HasPrefix(line, " "):
		return KindCtx
	}
	for _, p := range metaPrefixes {
		if strings.HasPrefix(line, p) {
			return KindMeta
		}
	}
	return KindNote
}

// Split divides diff text into sections, one per "diff --git a/X b/Y" line.
// Non-blank text before the first header, or the whole text when there is
// no header, becomes a fallback section named "section-N.diff".
func Split(text string) []File {
	var (
		files    []File
		lines    []string
		oldPath  string
		newPath  string
		fallback int
	)

	flush := func() {
		if len(lines) == 0 {
			return
		}
		display := newPath
		if display == "" {
			display = oldPath
		}
		if display == "" {
			if strings.TrimSpace(strings.Join(lines, "")) == "" {
				lines = nil
				return
			}
			fallback++
			display = fmt.Sprintf("section-%d.diff", fallback)
		}
		files = append(files, build(oldPath, newPath, display, lines))
		lines = nil
	}

	for _, line := range patch.SplitLines(text) {
		if o, n, ok := patch.ParseGitHeader(line); ok {
			flush()
			oldPath, newPath = o, n
		}
		lines = append(lines, line)
	}
	flush()

	return files
}

// build classifies a section's lines. The highlight index is shared by add,
// del and ctx lines only.
func build(oldPath, newPath, display string, lines []string) File {
	raw := strings.Join(lines, "\n") + "\n"
	f := File{
		FileID:             uuid.NewSHA1(fileIDSpace, []byte(display+"\x00"+raw)).String(),
		OldPath:            oldPath,
		NewPath:            newPath,
		DisplayPath:        display,
		RawSectionText:     raw,
		Lines:              make([]LineEntry, 0, len(lines)),
		HighlightableLines: []string{},
	}

	for _, line := range lines {
		entry := LineEntry{Kind: Classify(line), Text: line, Content: line}
		if entry.Kind.Code() {
			idx := len(f.HighlightableLines)
			entry.Prefix = line[:1]
			entry.Content = line[1:]
			entry.HighlightIndex = &idx
			f.HighlightableLines = append(f.HighlightableLines, entry.Content)
		}
		f.Lines = append(f.Lines, entry)
	}

	return f
}
