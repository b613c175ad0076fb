package merge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irahardianto/threadpatch/internal/engine/patch"
)

var (
	t1 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 = t1.Add(24 * time.Hour)
	t3 = t2.Add(24 * time.Hour)
)

// fileDiff wraps hunk text in a git file header for path.
func fileDiff(path, hunks string) string {
	return "diff --git a/" + path + " b/" + path + "\n--- a/" + path + "\n+++ b/" + path + "\n" + hunks
}

func TestMerge_SinglePatchIsUnchanged(t *testing.T) {
	content := fileDiff("x.go", `@@ -1,2 +1,3 @@
 a
+b
 c
@@ -20,2 +21,3 @@
 p
+q
 r
`)
	files := Merge(context.Background(), []patch.PatchInput{{Content: content, Date: t1}})

	require.Contains(t, files, "x.go")
	hunks := files["x.go"].Hunks
	require.Len(t, hunks, 2)
	assert.Equal(t, patch.Hunk{OldStart: 1, OldLines: 2, NewStart: 1, NewLines: 3, Lines: []string{" a", "+b", " c"}}, hunks[0])
	assert.Equal(t, patch.Hunk{OldStart: 20, OldLines: 2, NewStart: 21, NewLines: 3, Lines: []string{" p", "+q", " r"}}, hunks[1])
}

func TestMerge_OffsetFromEarlierPatch(t *testing.T) {
	first := fileDiff("x.go", "@@ -10,1 +10,3 @@\n ctx\n+a\n+b\n")
	second := fileDiff("x.go", "@@ -10,3 +12,3 @@\n x\n-y\n+z\n w\n")

	files := Merge(context.Background(), []patch.PatchInput{
		{Content: first, Date: t1},
		{Content: second, Date: t2},
	})

	hunks := files["x.go"].Hunks
	require.Len(t, hunks, 2)
	assert.Equal(t, 10, hunks[0].NewStart)
	assert.Equal(t, 14, hunks[1].NewStart)
	assert.Equal(t, []string{" x", "-y", "+z", " w"}, hunks[1].Lines)
}

func TestMerge_LaterPatchReplacesContainedRegion(t *testing.T) {
	first := fileDiff("x.go", "@@ -1,2 +1,3 @@\n a\n+new\n b\n")
	second := fileDiff("x.go", "@@ -1,3 +1,3 @@\n a\n-new\n+newer\n b\n")

	res := Reconcile(context.Background(), []patch.PatchInput{
		{Content: first, Date: t1},
		{Content: second, Date: t2},
	})

	hunks := res.Files["x.go"].Hunks
	require.Len(t, hunks, 1)
	assert.Equal(t, []string{" a", "-new", "+newer", " b"}, hunks[0].Lines)
	assert.Equal(t, 1, hunks[0].NewStart)
	assert.Equal(t, 3, hunks[0].NewLines)

	require.Len(t, res.Overlaps, 1)
	assert.True(t, res.Overlaps[0].Replaced)
	assert.Equal(t, t1, res.Overlaps[0].EarlierDate)
	assert.Equal(t, t2, res.Overlaps[0].LaterDate)
}

func TestMerge_InputOrderDoesNotOverrideDates(t *testing.T) {
	older := fileDiff("x.go", "@@ -1,2 +1,3 @@\n a\n+new\n b\n")
	newer := fileDiff("x.go", "@@ -1,3 +1,3 @@\n a\n-new\n+newer\n b\n")

	files := Merge(context.Background(), []patch.PatchInput{
		{Content: newer, Date: t2},
		{Content: older, Date: t1},
	})

	require.Len(t, files["x.go"].Hunks, 1)
	assert.Equal(t, []string{" a", "-new", "+newer", " b"}, files["x.go"].Hunks[0].Lines)
}

func TestMerge_EqualDatesOrderByNewStart(t *testing.T) {
	inner := fileDiff("x.go", "@@ -5,2 +5,3 @@\n 5\n+A\n 6\n")
	outer := fileDiff("x.go", "@@ -1,10 +1,10 @@\n 1\n 2\n 3\n 4\n-5\n+B\n 6\n 7\n 8\n 9\n 10\n")

	res := Reconcile(context.Background(), []patch.PatchInput{
		{Content: inner, Date: t1},
		{Content: outer, Date: t1},
	})

	hunks := res.Files["x.go"].Hunks
	require.Len(t, hunks, 1)
	assert.Equal(t, patch.Hunk{
		OldStart: 1,
		OldLines: 12,
		NewStart: 1,
		NewLines: 9,
		Lines:    []string{" 1", " 2", " 3", " 4", " 5", "+A", " 6", " 8", " 9", " 10"},
	}, hunks[0])

	require.Len(t, res.Overlaps, 1)
	assert.False(t, res.Overlaps[0].Replaced, "the narrower hunk is processed second and cannot contain the wider one")
	assert.Equal(t, 5, res.Overlaps[0].Start)
	assert.Equal(t, 7, res.Overlaps[0].End)
}

func TestMerge_PartialOverlapInterleaves(t *testing.T) {
	first := fileDiff("x.go", "@@ -1,5 +1,5 @@\n a\n b\n-c\n+C\n d\n e\n")
	second := fileDiff("x.go", "@@ -2,2 +2,2 @@\n-b\n+B\n C\n")

	res := Reconcile(context.Background(), []patch.PatchInput{
		{Content: first, Date: t1},
		{Content: second, Date: t2},
	})

	hunks := res.Files["x.go"].Hunks
	require.Len(t, hunks, 1)
	assert.Equal(t, patch.Hunk{
		OldStart: 1,
		OldLines: 7,
		NewStart: 1,
		NewLines: 4,
		Lines:    []string{" a", "-b", "+B", " C", " d", " e"},
	}, hunks[0])

	require.Len(t, res.Overlaps, 1)
	assert.False(t, res.Overlaps[0].Replaced)
	assert.Equal(t, 2, res.Overlaps[0].Start)
	assert.Equal(t, 3, res.Overlaps[0].End)
}

func TestMerge_PartialOverlapAfterOffset(t *testing.T) {
	first := fileDiff("x.go", "@@ -1,4 +1,5 @@\n l1\n l2\n+ins\n l3\n l4\n")
	second := fileDiff("x.go", "@@ -4,3 +4,3 @@\n l3\n-l4\n+L4\n l5\n")

	files := Merge(context.Background(), []patch.PatchInput{
		{Content: first, Date: t1},
		{Content: second, Date: t2},
	})

	hunks := files["x.go"].Hunks
	require.Len(t, hunks, 1)
	// The second hunk lands at 5 after the +1 drift; the earlier line at 5 is
	// superseded and everything above the overlap is kept.
	assert.Equal(t, []string{" l1", " l2", "+ins", " l3", " l3", "-l4", "+L4", " l5"}, hunks[0].Lines)
	assert.Equal(t, 1, hunks[0].NewStart)
	assert.Equal(t, 6, hunks[0].NewLines)
	assert.Equal(t, 7, hunks[0].OldLines)
}

func TestMerge_OutputSortedByNewStart(t *testing.T) {
	first := fileDiff("x.go", "@@ -50,1 +50,1 @@\n-a\n+b\n")
	second := fileDiff("x.go", "@@ -5,1 +5,1 @@\n-c\n+d\n")

	hunks := Merge(context.Background(), []patch.PatchInput{
		{Content: first, Date: t1},
		{Content: second, Date: t2},
	})["x.go"].Hunks

	require.Len(t, hunks, 2)
	assert.Equal(t, 5, hunks[0].NewStart)
	assert.Equal(t, 50, hunks[1].NewStart)
}

func TestMerge_IgnoresGarbage(t *testing.T) {
	good := fileDiff("ok.go", "@@ -1 +1 @@\n-a\n+b\n")

	res := Reconcile(context.Background(), []patch.PatchInput{
		{Content: "Thanks, applied to for-next.", Date: t1},
		{Content: "diff --git garbage\nrandom text\n", Date: t2},
		{Content: good, Date: t3},
	})

	require.Len(t, res.Files, 1)
	assert.Contains(t, res.Files, "ok.go")
	assert.Equal(t, 3, res.Patches)
	assert.Equal(t, 2, res.Blocks)
}

func TestMerge_EmptyInput(t *testing.T) {
	files := Merge(context.Background(), nil)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestMerge_FileWithoutHunksIsOmitted(t *testing.T) {
	modeOnly := "diff --git a/run.sh b/run.sh\nold mode 100644\nnew mode 100755\n"
	other := fileDiff("main.go", "@@ -1 +1 @@\n-a\n+b\n")

	files := Merge(context.Background(), []patch.PatchInput{
		{Content: modeOnly + other, Date: t1},
	})

	assert.NotContains(t, files, "run.sh")
	assert.Contains(t, files, "main.go")
}

func TestMerge_RoundTrip(t *testing.T) {
	first := fileDiff("x.go", "@@ -1,2 +1,3 @@\n a\n+b\n c\n")
	second := fileDiff("x.go", "@@ -40,3 +40,2 @@\n p\n-q\n r\n")

	files := Merge(context.Background(), []patch.PatchInput{
		{Content: first, Date: t1},
		{Content: second, Date: t2},
	})
	merged := files["x.go"]
	require.Len(t, merged.Hunks, 2)

	reparsed := patch.ParseBlock(context.Background(), merged.DiffString)
	require.Len(t, reparsed, 1)
	assert.Equal(t, "x.go", reparsed[0].Path)
	require.Len(t, reparsed[0].Hunks, len(merged.Hunks))
	for i, h := range reparsed[0].Hunks {
		assert.Equal(t, merged.Hunks[i].OldLines, h.OldLines)
		assert.Equal(t, merged.Hunks[i].NewLines, h.NewLines)
		assert.Equal(t, merged.Hunks[i].NewStart, h.NewStart)
	}
}

func TestMerge_MultipleFilesAcrossPatches(t *testing.T) {
	v1 := fileDiff("a.go", "@@ -1 +1 @@\n-a\n+b\n") + fileDiff("b.go", "@@ -3 +3 @@\n-c\n+d\n")
	v2 := fileDiff("b.go", "@@ -3 +3 @@\n-c\n+e\n")

	files := Merge(context.Background(), []patch.PatchInput{
		{Content: v1, Date: t1},
		{Content: v2, Date: t2},
	})

	require.Len(t, files, 2)
	assert.Equal(t, []string{"-c", "+e"}, files["b.go"].Hunks[0].Lines)
	assert.Equal(t, []string{"-a", "+b"}, files["a.go"].Hunks[0].Lines)
}

func TestResult_Paths(t *testing.T) {
	r := Result{Files: map[string]MergedFile{"z.go": {}, "a.go": {}, "m/k.go": {}}}
	assert.Equal(t, []string{"a.go", "m/k.go", "z.go"}, r.Paths())
}

func TestSerialize(t *testing.T) {
	got := Serialize("dir/f.txt", []patch.Hunk{
		{OldStart: 1, OldLines: 1, NewStart: 1, NewLines: 2, Lines: []string{" a", "+b"}},
		{OldStart: 9, OldLines: 1, NewStart: 10, NewLines: 0, Lines: []string{"-z"}},
	})

	want := `diff --git a/dir/f.txt b/dir/f.txt
--- a/dir/f.txt
+++ b/dir/f.txt
@@ -1,1 +1,2 @@
 a
+b
@@ -9,1 +10,0 @@
-z
`
	assert.Equal(t, want, got)
}

func TestOverlaps_InclusiveRanges(t *testing.T) {
	a := patch.Hunk{NewStart: 1, NewLines: 3}
	assert.True(t, overlaps(a, patch.Hunk{NewStart: 3, NewLines: 1}))
	assert.False(t, overlaps(a, patch.Hunk{NewStart: 4, NewLines: 2}))
}
