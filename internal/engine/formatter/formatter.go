// Package formatter renders merge results and diff sections for the CLI.
package formatter

import (
	"context"
	"fmt"

	"github.com/irahardianto/threadpatch/internal/engine/config"
	"github.com/irahardianto/threadpatch/internal/engine/merge"
	"github.com/irahardianto/threadpatch/internal/engine/section"
)

// Report is what a Formatter renders: the outcome of a merge, a list of
// diff sections, or both.
type Report struct {
	Merge    *merge.Result  `json:"merge,omitempty"`
	Sections []section.File `json:"sections,omitempty"`
}

// Files returns the sections to render. Without explicit sections, every
// merged file's diff becomes one section, in path order.
func (r Report) Files() []section.File {
	if len(r.Sections) > 0 || r.Merge == nil {
		return r.Sections
	}
	var files []section.File
	for _, path := range r.Merge.Paths() {
		files = append(files, section.Split(r.Merge.Files[path].DiffString)...)
	}
	return files
}

// Formatter formats a Report into a human-readable or machine-readable string.
type Formatter interface {
	Format(ctx context.Context, report Report) string
}

// New returns the formatter for format. The diff formatter is used for
// FormatDiff.
func New(format config.Format, diff *DiffFormatter) (Formatter, error) {
	switch format {
	case config.FormatDiff, "":
		return diff, nil
	case config.FormatJSON, config.FormatSections:
		return NewJSONFormatter(), nil
	case config.FormatSARIF:
		return NewSARIFFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
