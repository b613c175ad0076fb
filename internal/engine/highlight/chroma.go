package highlight

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	DefaultLightStyle = "github"
	DefaultDarkStyle  = "monokai"
)

// ChromaHighlighter highlights with chroma lexers and styles.
type ChromaHighlighter struct {
	LightStyle string
	DarkStyle  string
}

// NewChromaHighlighter creates a ChromaHighlighter. Empty style names select
// the defaults.
func NewChromaHighlighter(lightStyle, darkStyle string) *ChromaHighlighter {
	if lightStyle == "" {
		lightStyle = DefaultLightStyle
	}
	if darkStyle == "" {
		darkStyle = DefaultDarkStyle
	}
	return &ChromaHighlighter{LightStyle: lightStyle, DarkStyle: darkStyle}
}

// Highlight tokenises the request lines as one document so multi-line
// constructs are lexed in context, then splits the tokens back into lines.
func (h *ChromaHighlighter) Highlight(_ context.Context, req Request) ([][]Token, error) {
	out := make([][]Token, len(req.Lines))
	if len(req.Lines) == 0 {
		return out, nil
	}

	lexer := lexers.Get(req.LanguageHint)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, strings.Join(req.Lines, "\n")+"\n")
	if err != nil {
		return nil, fmt.Errorf("tokenising %s: %w", req.FileID, err)
	}

	style := h.style(req.Theme)
	for i, row := range chroma.SplitTokensIntoLines(it.Tokens()) {
		if i >= len(out) {
			break
		}
		for _, tok := range row {
			text := strings.TrimSuffix(tok.Value, "\n")
			if text == "" {
				continue
			}
			t := Token{Type: tok.Type.String(), Text: text}
			if c := style.Get(tok.Type).Colour; c.IsSet() {
				t.Color = c.String()
			}
			out[i] = append(out[i], t)
		}
	}

	return out, nil
}

func (h *ChromaHighlighter) style(theme Theme) *chroma.Style {
	name := h.DarkStyle
	if theme == ThemeLight {
		name = h.LightStyle
	}
	if s := styles.Get(name); s != nil {
		return s
	}
	return styles.Fallback
}
