package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/irahardianto/threadpatch/internal/engine/config"
	"github.com/irahardianto/threadpatch/internal/engine/highlight"
)

// loadConfig discovers the config file and applies the global flags on top.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Discover(ctx, flagConfig)
	if err != nil {
		return nil, err
	}

	if flagTheme != "" {
		theme, err := highlight.ParseTheme(flagTheme)
		if err != nil {
			return nil, fmt.Errorf("--theme: %w", err)
		}
		cfg.Theme = theme
	}

	return cfg, nil
}

// outputOpts derives per-invocation output options from the config, the
// global flags and whether stdout is a terminal.
func outputOpts(cfg *config.Config, stdout io.Writer) PipelineOpts {
	opts := PipelineOpts{
		Format: cfg.Output.Format,
		Color:  cfg.ColorEnabled() && !flagNoColor && isTerminal(stdout),
	}
	if flagJSON {
		opts.Format = config.FormatJSON
	}
	return opts
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int.
}

// newPipeline wires production dependencies for cfg.
func newPipeline(cfg *config.Config, stdout, stderr io.Writer) *Pipeline {
	fsys := &config.RealFileSystem{}
	return &Pipeline{
		Config:      cfg,
		FS:          fsys,
		Highlighter: highlight.NewCache(highlight.NewChromaHighlighter(cfg.Highlight.LightStyle, cfg.Highlight.DarkStyle)),
		Stdin:       os.Stdin,
		Stdout:      stdout,
		Stderr:      stderr,
	}
}
