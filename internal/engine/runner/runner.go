// Package runner highlights diff sections in parallel.
package runner

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/irahardianto/threadpatch/internal/engine/highlight"
	"github.com/irahardianto/threadpatch/internal/engine/section"
	"github.com/irahardianto/threadpatch/internal/platform/logger"
)

// Engine fans highlight requests out across goroutines.
type Engine struct {
	// Workers bounds concurrent Highlight calls. Zero or less means GOMAXPROCS.
	Workers int
}

// NewEngine creates a new highlighting engine.
func NewEngine(workers int) *Engine {
	return &Engine{Workers: workers}
}

// HighlightAll highlights every section and returns, for each one, its token
// rows attached to its lines (see highlight.Attach). Sections that fail, have
// no code lines, or are not reached before ctx is cancelled get nil.
func (e *Engine) HighlightAll(ctx context.Context, h highlight.Highlighter, files []section.File, theme highlight.Theme) [][][]highlight.Token {
	log := logger.FromContext(ctx)
	start := time.Now()

	out := make([][][]highlight.Token, len(files))
	if len(files) == 0 {
		return out
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	type indexedResult struct {
		idx  int
		rows [][]highlight.Token
	}

	resultsCh := make(chan indexedResult, len(files))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, f := range files {
		if len(f.HighlightableLines) == 0 {
			continue
		}

		wg.Add(1)
		go func(idx int, f section.File) {
			defer wg.Done()

			if ctx.Err() != nil {
				return
			}
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			rows, err := h.Highlight(ctx, highlight.NewRequest(f, theme))
			if err != nil {
				log.Warn("syntax highlighting failed", "path", f.DisplayPath, "error", err)
				return
			}
			resultsCh <- indexedResult{idx: idx, rows: highlight.Attach(f, rows)}
		}(i, f)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	highlighted := 0
	for r := range resultsCh {
		out[r.idx] = r.rows
		highlighted++
	}

	log.Debug("highlighting completed", "sections", len(files), "highlighted", highlighted, "duration_ms", time.Since(start).Milliseconds())
	return out
}
