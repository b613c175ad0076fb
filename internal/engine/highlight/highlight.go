// Package highlight prepares per-section highlighting requests and provides
// a chroma-backed highlighter that answers them.
package highlight

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/irahardianto/threadpatch/internal/engine/section"
)

// Theme selects the color palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("unknown theme %q (valid: light, dark)", s)
}

// Request is one highlighting batch: the bare content lines of a section.
type Request struct {
	FileID       string   `json:"file_id"`
	Lines        []string `json:"lines"`
	LanguageHint string   `json:"language_hint"`
	Theme        Theme    `json:"theme"`
}

// Token is a colored fragment of one line.
type Token struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

// Highlighter turns a Request into one token row per request line.
type Highlighter interface {
	Highlight(ctx context.Context, req Request) ([][]Token, error)
}

// NewRequest builds the request for a section.
func NewRequest(f section.File, theme Theme) Request {
	return Request{
		FileID:       f.FileID,
		Lines:        f.HighlightableLines,
		LanguageHint: LanguageHint(f.DisplayPath),
		Theme:        theme,
	}
}

// LanguageHint guesses a language name from a file path. Unknown paths fall
// back to the bare extension.
func LanguageHint(path string) string {
	if l := lexers.Match(filepath.Base(path)); l != nil {
		return l.Config().Name
	}
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// Attach maps token rows back onto a section's lines by highlight index.
// Lines without an index, or without a row, get nil.
func Attach(f section.File, rows [][]Token) [][]Token {
	out := make([][]Token, len(f.Lines))
	for i, e := range f.Lines {
		if e.HighlightIndex == nil {
			continue
		}
		if idx := *e.HighlightIndex; idx < len(rows) {
			out[i] = rows[idx]
		}
	}
	return out
}
