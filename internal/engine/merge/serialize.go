package merge

import (
	"strings"

	"github.com/irahardianto/threadpatch/internal/engine/patch"
)

// Serialize renders one file's hunks as a standalone unified diff.
func Serialize(path string, hunks []patch.Hunk) string {
	var b strings.Builder

	b.WriteString("diff --git a/" + path + " b/" + path + "\n")
	b.WriteString("--- a/" + path + "\n")
	b.WriteString("+++ b/" + path + "\n")

	for _, h := range hunks {
		b.WriteString(h.Header())
		b.WriteByte('\n')
		for _, line := range h.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	return b.String()
}
