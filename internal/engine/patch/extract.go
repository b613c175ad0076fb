package patch

import (
	"strings"
)

const diffPrefix = "diff --git "

// ExtractBlocks isolates the diff blocks of a mail body, in source order.
// A block starts at a "diff --git " line and ends before a signature
// delimiter ("-- " or "--") or at end of input. Text outside blocks is dropped.
func ExtractBlocks(body string) []string {
	if strings.TrimSpace(body) == "" {
		return nil
	}

	var (
		blocks  []string
		current []string
		inBlock bool
	)

	flush := func() {
		if len(current) > 0 {
			block := strings.Join(current, "\n")
			if strings.TrimSpace(block) != "" {
				blocks = append(blocks, block+"\n")
			}
		}
		current = nil
	}

	for _, line := range SplitLines(body) {
		if strings.HasPrefix(line, diffPrefix) {
			flush()
			inBlock = true
			current = append(current, line)
			continue
		}
		if !inBlock {
			continue
		}
		if line == "-- " || line == "--" {
			flush()
			inBlock = false
			continue
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// SplitLines normalises CRLF endings and splits text into lines. A single
// trailing newline does not produce an empty final line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
