package merge

import (
	"strings"

	"github.com/irahardianto/threadpatch/internal/engine/patch"
)

// overlaps reports whether two hunks' inclusive new-file ranges intersect.
func overlaps(a, b patch.Hunk) bool {
	return max(a.NewStart, b.NewStart) <= min(a.NewEnd(), b.NewEnd())
}

// firstOverlap returns the index of the first merged hunk overlapping h, or -1.
func firstOverlap(merged []TrackedHunk, h TrackedHunk) int {
	for i, m := range merged {
		if overlaps(m.Hunk, h.Hunk) {
			return i
		}
	}
	return -1
}

// combine merges the later hunk into the earlier one it overlaps.
//
// If the later range contains the earlier range, the later hunk replaces it.
// Otherwise the earlier lines positioned before the overlap are kept, all
// later lines follow, then the earlier lines positioned after the later
// hunk's end. The earlier hunk keeps its provenance in that case.
func combine(earlier, later TrackedHunk) (TrackedHunk, Overlap) {
	laterEnd := later.NewEnd()
	ov := Overlap{
		Start:       max(earlier.NewStart, later.NewStart),
		End:         min(earlier.NewEnd(), laterEnd),
		EarlierDate: earlier.SourceDate,
		LaterDate:   later.SourceDate,
	}

	if later.NewStart <= earlier.NewStart && laterEnd >= earlier.NewEnd() {
		ov.Replaced = true
		return later, ov
	}

	var head, tail []string
	cursor := earlier.NewStart
	for _, line := range earlier.Lines {
		switch {
		case cursor < ov.Start:
			head = append(head, line)
		case cursor > laterEnd:
			tail = append(tail, line)
		}
		if !strings.HasPrefix(line, "-") {
			cursor++
		}
	}

	lines := make([]string, 0, len(head)+len(later.Lines)+len(tail))
	lines = append(lines, head...)
	lines = append(lines, later.Lines...)
	lines = append(lines, tail...)

	minStart := min(earlier.NewStart, later.NewStart)
	maxEnd := max(earlier.NewEnd(), laterEnd)

	out := earlier
	out.Hunk = patch.Hunk{
		OldStart: min(earlier.OldStart, later.OldStart),
		OldLines: earlier.OldLines + later.OldLines,
		NewStart: minStart,
		NewLines: maxEnd - minStart,
		Lines:    lines,
	}
	return out, ov
}
