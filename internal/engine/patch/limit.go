package patch

import "strings"

// CapPatches admits patches in order until the next one would exceed the
// cumulative character or line budget. A budget <= 0 is unlimited. Once a
// patch is skipped, every later patch is skipped too so the admitted set is
// always a prefix of the thread.
func CapPatches(patches []PatchInput, maxChars, maxLines int) (included, skipped []PatchInput) {
	if maxChars <= 0 && maxLines <= 0 {
		return patches, nil
	}

	chars, lines := 0, 0
	for i, p := range patches {
		c := len(p.Content)
		l := strings.Count(p.Content, "\n") + 1
		if (maxChars > 0 && chars+c > maxChars) || (maxLines > 0 && lines+l > maxLines) {
			return included, append(skipped, patches[i:]...)
		}
		chars += c
		lines += l
		included = append(included, p)
	}

	return included, skipped
}
