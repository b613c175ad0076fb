package patch

import (
	"regexp"
	"strconv"
	"strings"
)

// hunkHeaderRe matches "@@ -oldStart[,oldCount] +newStart[,newCount] @@" with
// optional trailing section text.
var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// ParseHunkHeader parses a hunk header line. Omitted counts default to 1.
func ParseHunkHeader(line string) (oldStart, oldLines, newStart, newLines int, ok bool) {
	m := hunkHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, 0, 0, false
	}

	nums := [4]int{0, 1, 0, 1}
	for i, s := range m[1:] {
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		nums[i] = n
	}

	return nums[0], nums[1], nums[2], nums[3], true
}

// ParseGitHeader extracts both paths from a "diff --git a/X b/Y" line.
// Paths containing " b/" are split at the last occurrence.
func ParseGitHeader(line string) (oldPath, newPath string, ok bool) {
	rest, found := strings.CutPrefix(line, diffPrefix)
	if !found {
		return "", "", false
	}
	rest = strings.TrimRight(rest, " \t")

	idx := strings.LastIndex(rest, " b/")
	if !strings.HasPrefix(rest, "a/") || idx < 0 {
		return "", "", false
	}

	return rest[2:idx], rest[idx+3:], true
}

// headerPath cleans the path of a "--- " or "+++ " line. It returns "" for
// /dev/null.
func headerPath(line string) string {
	p := strings.TrimSpace(line[4:])
	if i := strings.IndexByte(p, '\t'); i >= 0 {
		p = p[:i]
	}
	if p == "/dev/null" {
		return ""
	}
	return stripSide(p)
}
