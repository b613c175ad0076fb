package formatter

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/irahardianto/threadpatch/internal/engine/highlight"
	"github.com/irahardianto/threadpatch/internal/engine/runner"
	"github.com/irahardianto/threadpatch/internal/engine/section"
)

// Tabs are significant in diff content and must survive rendering.
var (
	plainStyle  = lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	metaStyle   = plainStyle.Bold(true)
	hunkStyle   = plainStyle.Foreground(lipgloss.Color("6"))
	addStyle    = plainStyle.Foreground(lipgloss.Color("2"))
	delStyle    = plainStyle.Foreground(lipgloss.Color("1"))
	noteStyle   = plainStyle.Faint(true)
	gutterStyle = plainStyle.Faint(true)
)

// DiffFormatter writes sections back out as unified diff text. Without color
// or line numbers the output is the section text verbatim.
type DiffFormatter struct {
	Color       bool
	LineNumbers bool
	Theme       highlight.Theme

	// Highlighter colors code lines when Color is set. Nil disables syntax
	// highlighting.
	Highlighter highlight.Highlighter
}

// NewDiffFormatter creates a new DiffFormatter.
func NewDiffFormatter(color bool, theme highlight.Theme, h highlight.Highlighter) *DiffFormatter {
	return &DiffFormatter{Color: color, Theme: theme, Highlighter: h}
}

// Format renders every section of the report. Sections are highlighted
// concurrently before rendering.
func (f *DiffFormatter) Format(ctx context.Context, report Report) string {
	files := report.Files()

	var tokens [][][]highlight.Token
	if f.Color && f.Highlighter != nil {
		tokens = runner.NewEngine(0).HighlightAll(ctx, f.Highlighter, files, f.Theme)
	}

	var b strings.Builder
	for i, file := range files {
		var rows [][]highlight.Token
		if i < len(tokens) {
			rows = tokens[i]
		}
		f.writeFile(&b, file, rows)
	}
	return b.String()
}

// writeFile renders one section. rows holds the tokens attached to the
// section's lines, or nil.
func (f *DiffFormatter) writeFile(b *strings.Builder, file section.File, rows [][]highlight.Token) {
	if !f.Color && !f.LineNumbers {
		b.WriteString(file.RawSectionText)
		return
	}

	var numbers []section.NumberedLine
	if f.LineNumbers {
		numbers = section.NumberLines(file.RawSectionText)
	}

	for i, line := range file.Lines {
		if i < len(numbers) {
			b.WriteString(f.gutter(numbers[i]))
		}
		if !f.Color {
			b.WriteString(line.Text)
		} else if i < len(rows) && rows[i] != nil {
			b.WriteString(kindStyle(line.Kind).Render(line.Prefix))
			writeTokens(b, rows[i])
		} else {
			b.WriteString(kindStyle(line.Kind).Render(line.Text))
		}
		b.WriteByte('\n')
	}
}

func (f *DiffFormatter) gutter(n section.NumberedLine) string {
	g := fmt.Sprintf("%5s %5s │ ", lineNo(n.OldLine), lineNo(n.NewLine))
	if f.Color {
		return gutterStyle.Render(g)
	}
	return g
}

func lineNo(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprint(n)
}

func writeTokens(b *strings.Builder, row []highlight.Token) {
	for _, tok := range row {
		if tok.Color == "" {
			b.WriteString(tok.Text)
			continue
		}
		b.WriteString(plainStyle.Foreground(lipgloss.Color(tok.Color)).Render(tok.Text))
	}
}

func kindStyle(k section.Kind) lipgloss.Style {
	switch k {
	case section.KindMeta:
		return metaStyle
	case section.KindHunkHeader:
		return hunkStyle
	case section.KindAdd:
		return addStyle
	case section.KindDel:
		return delStyle
	case section.KindNote:
		return noteStyle
	default:
		return plainStyle
	}
}
