package patch

import (
	"context"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/irahardianto/threadpatch/internal/platform/logger"
)

// ParseBlock turns one diff block into per-file hunk lists. It never fails:
// blocks that do not parse yield no entries, and files without hunks are
// dropped.
//
// The block is first handed to go-gitdiff. Mailed patches are often mangled
// (whitespace-stripped context lines, hand-edited counts) and go-gitdiff
// rejects the whole file in that case, so the block is then re-read by a
// lenient scanner that only drops the hunks it cannot understand.
func ParseBlock(ctx context.Context, block string) []FileDiff {
	log := logger.FromContext(ctx)

	files, _, err := gitdiff.Parse(strings.NewReader(block))
	if err == nil {
		diffs := convertFiles(files, isGitFormat(block))
		if len(diffs) == 0 {
			log.Debug("diff block has no file with hunks", "bytes", len(block))
		}
		return diffs
	}

	log.Debug("strict diff parse failed, retrying leniently", "error", err)
	diffs := parseLenient(ctx, block)
	if len(diffs) == 0 {
		log.Warn("skipping unparseable diff block", "error", err, "bytes", len(block))
	}
	return diffs
}

// isGitFormat reports whether block carries "diff --git" headers. go-gitdiff
// drops the a/ and b/ prefixes of git headers itself but keeps the names of
// plain "---"/"+++" headers as written.
func isGitFormat(block string) bool {
	return strings.HasPrefix(block, diffPrefix) || strings.Contains(block, "\n"+diffPrefix)
}

func convertFiles(files []*gitdiff.File, gitFormat bool) []FileDiff {
	var diffs []FileDiff
	for _, f := range files {
		path := f.NewName
		if path == "" {
			path = f.OldName
		}
		if !gitFormat {
			path = stripSide(path)
		}
		if path == "" || len(f.TextFragments) == 0 {
			continue
		}

		fd := FileDiff{Path: path, Hunks: make([]Hunk, 0, len(f.TextFragments))}
		for _, frag := range f.TextFragments {
			fd.Hunks = append(fd.Hunks, convertFragment(frag))
		}
		diffs = append(diffs, fd)
	}
	return diffs
}

func convertFragment(frag *gitdiff.TextFragment) Hunk {
	h := Hunk{
		OldStart: int(frag.OldPosition),
		OldLines: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewLines: int(frag.NewLines),
		Lines:    make([]string, 0, len(frag.Lines)),
	}
	for _, l := range frag.Lines {
		h.Lines = append(h.Lines, l.Op.String()+strings.TrimSuffix(l.Line, "\n"))
	}
	return h
}

// lenientFile accumulates one file section during lenient parsing.
type lenientFile struct {
	gitOld, gitNew string
	oldPath        string
	newPath        string
	hunks          []Hunk
}

func (f *lenientFile) path() string {
	switch {
	case f.newPath != "":
		return f.newPath
	case f.gitNew != "":
		return f.gitNew
	case f.oldPath != "":
		return f.oldPath
	default:
		return f.gitOld
	}
}

// parseLenient scans a block line by line. Hunk bodies run while lines look
// like diff lines and the header's counts are not yet exhausted; a blank line
// inside a hunk is read as an empty context line.
func parseLenient(ctx context.Context, block string) []FileDiff {
	log := logger.FromContext(ctx)

	var (
		files   []*lenientFile
		file    *lenientFile
		hunk    *Hunk
		oldLeft int
		newLeft int
	)

	closeHunk := func() {
		if hunk != nil && file != nil {
			file.hunks = append(file.hunks, *hunk)
		}
		hunk = nil
	}

	for _, line := range SplitLines(block) {
		if hunk != nil && (oldLeft > 0 || newLeft > 0) {
			if body, ok := hunkLine(line); ok {
				hunk.Lines = append(hunk.Lines, body)
				switch body[0] {
				case '+':
					newLeft--
				case '-':
					oldLeft--
				default:
					oldLeft--
					newLeft--
				}
				continue
			}
		}
		if hunk != nil && strings.HasPrefix(line, `\`) {
			continue
		}

		switch {
		case strings.HasPrefix(line, diffPrefix):
			closeHunk()
			file = &lenientFile{}
			files = append(files, file)
			if o, n, ok := ParseGitHeader(line); ok {
				file.gitOld, file.gitNew = o, n
			}
		case strings.HasPrefix(line, "--- "):
			closeHunk()
			if file == nil || len(file.hunks) > 0 {
				file = &lenientFile{}
				files = append(files, file)
			}
			file.oldPath = headerPath(line)
		case strings.HasPrefix(line, "+++ ") && file != nil:
			closeHunk()
			file.newPath = headerPath(line)
		case strings.HasPrefix(line, "@@"):
			closeHunk()
			if file == nil {
				continue
			}
			oldStart, oldLines, newStart, newLines, ok := ParseHunkHeader(line)
			if !ok {
				log.Debug("dropping hunk with malformed header", "header", line)
				oldLeft, newLeft = 0, 0
				continue
			}
			hunk = &Hunk{OldStart: oldStart, OldLines: oldLines, NewStart: newStart, NewLines: newLines}
			oldLeft, newLeft = oldLines, newLines
		default:
			closeHunk()
		}
	}
	closeHunk()

	var diffs []FileDiff
	for _, f := range files {
		path := f.path()
		if path == "" || len(f.hunks) == 0 {
			continue
		}
		diffs = append(diffs, FileDiff{Path: path, Hunks: f.hunks})
	}
	return diffs
}

// hunkLine reports whether line can be part of a hunk body and returns it in
// prefixed form.
func hunkLine(line string) (string, bool) {
	if line == "" {
		return " ", true
	}
	switch line[0] {
	case '+', '-', ' ':
		return line, true
	}
	return "", false
}
