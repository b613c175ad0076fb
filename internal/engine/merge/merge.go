// Package merge reconciles the hunks that successive revisions of a mailed
// patch contribute to the same file into one consolidated diff per file.
//
// The reconciliation is a heuristic, not a patch algebra: inside an
// overlapping new-file range the most recent message wins, and partially
// overlapping hunks are interleaved by new-file line position.
package merge

import (
	"context"
	"maps"
	"slices"
	"sort"
	"time"

	"github.com/irahardianto/threadpatch/internal/engine/patch"
	"github.com/irahardianto/threadpatch/internal/platform/logger"
)

// TrackedHunk is a hunk annotated with the message it came from.
type TrackedHunk struct {
	patch.Hunk
	SourceDate       time.Time
	OriginalOldStart int
	OriginalNewStart int

	// source is the index of the owning PatchInput.
	source int
}

// MergedFile is the consolidated diff of one file.
type MergedFile struct {
	Path       string       `json:"path"`
	Hunks      []patch.Hunk `json:"hunks"`
	DiffString string       `json:"diff"`
}

// Overlap records how two overlapping hunks were reconciled.
type Overlap struct {
	Path        string    `json:"path"`
	Start       int       `json:"start"`
	End         int       `json:"end"`
	Replaced    bool      `json:"replaced"`
	EarlierDate time.Time `json:"earlier_date"`
	LaterDate   time.Time `json:"later_date"`
}

// Result is the full outcome of reconciling a thread.
type Result struct {
	Files    map[string]MergedFile `json:"files"`
	Overlaps []Overlap             `json:"overlaps,omitempty"`
	Patches  int                   `json:"patches"`
	Blocks   int                   `json:"blocks"`
}

// Paths returns the merged file paths in lexical order.
func (r Result) Paths() []string {
	return slices.Sorted(maps.Keys(r.Files))
}

// Merge combines the hunks of every patch into one MergedFile per path.
func Merge(ctx context.Context, patches []patch.PatchInput) map[string]MergedFile {
	return Reconcile(ctx, patches).Files
}

// Reconcile is Merge plus the overlap diagnostics gathered on the way.
// It never fails: unparseable patches contribute nothing and files left
// without hunks are omitted.
func Reconcile(ctx context.Context, patches []patch.PatchInput) Result {
	log := logger.FromContext(ctx)

	grouped, order, blocks := group(ctx, patches)
	res := Result{
		Files:   make(map[string]MergedFile, len(grouped)),
		Patches: len(patches),
		Blocks:  blocks,
	}

	for _, path := range order {
		hunks, overlaps := mergeFile(path, grouped[path])
		res.Overlaps = append(res.Overlaps, overlaps...)
		if len(hunks) == 0 {
			continue
		}

		res.Files[path] = MergedFile{
			Path:       path,
			Hunks:      hunks,
			DiffString: Serialize(path, hunks),
		}
		log.Debug("merged file", "path", path, "input_hunks", len(grouped[path]), "merged_hunks", len(hunks), "overlaps", len(overlaps))
	}

	return res
}

// group decomposes every patch into tracked hunks keyed by path. order lists
// paths in first-seen order.
func group(ctx context.Context, patches []patch.PatchInput) (grouped map[string][]TrackedHunk, order []string, blocks int) {
	grouped = make(map[string][]TrackedHunk)

	for i, p := range patches {
		for _, block := range patch.ExtractBlocks(p.Content) {
			blocks++
			for _, fd := range patch.ParseBlock(ctx, block) {
				if _, seen := grouped[fd.Path]; !seen {
					order = append(order, fd.Path)
				}
				for _, h := range fd.Hunks {
					grouped[fd.Path] = append(grouped[fd.Path], TrackedHunk{
						Hunk:             h,
						SourceDate:       p.Date,
						OriginalOldStart: h.OldStart,
						OriginalNewStart: h.NewStart,
						source:           i,
					})
				}
			}
		}
	}

	return grouped, order, blocks
}

// shift is the net line delta an already processed hunk leaves behind.
type shift struct {
	start  int
	delta  int
	source int
}

// mergeFile reconciles one file's hunks. Hunks are processed oldest message
// first, then by stated NewStart; each incoming hunk is moved down by the deltas of earlier messages'
// hunks that start above it, then either appended or merged into the first
// merged hunk it overlaps.
func mergeFile(path string, hunks []TrackedHunk) ([]patch.Hunk, []Overlap) {
	sorted := slices.Clone(hunks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.SourceDate.Equal(b.SourceDate) {
			return a.SourceDate.Before(b.SourceDate)
		}
		return a.NewStart < b.NewStart
	})

	var (
		merged   []TrackedHunk
		shifts   []shift
		overlaps []Overlap
	)

	for _, h := range sorted {
		offset := 0
		for _, s := range shifts {
			if s.source != h.source && s.start < h.OriginalNewStart {
				offset += s.delta
			}
		}

		incoming := h
		incoming.NewStart += offset
		incoming.Lines = slices.Clone(h.Lines)

		if idx := firstOverlap(merged, incoming); idx >= 0 {
			earlier := merged[idx]
			var ov Overlap
			merged[idx], ov = combine(earlier, incoming)
			ov.Path = path
			overlaps = append(overlaps, ov)
		} else {
			merged = append(merged, incoming)
		}

		shifts = append(shifts, shift{start: h.OriginalNewStart, delta: h.Delta(), source: h.source})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].NewStart < merged[j].NewStart
	})

	out := make([]patch.Hunk, 0, len(merged))
	for _, m := range merged {
		out = append(out, m.Hunk)
	}
	return out, overlaps
}
