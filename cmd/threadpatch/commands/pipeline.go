package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/irahardianto/threadpatch/internal/engine/config"
	"github.com/irahardianto/threadpatch/internal/engine/formatter"
	"github.com/irahardianto/threadpatch/internal/engine/highlight"
	"github.com/irahardianto/threadpatch/internal/engine/merge"
	"github.com/irahardianto/threadpatch/internal/engine/patch"
	"github.com/irahardianto/threadpatch/internal/engine/section"
	"github.com/irahardianto/threadpatch/internal/engine/thread"
	"github.com/irahardianto/threadpatch/internal/platform/logger"
)

// ErrSARIFUnsupported is returned when SARIF output is requested for a
// command that produces no merge diagnostics.
var ErrSARIFUnsupported = errors.New("sarif output is only available for 'threadpatch merge'")

// PipelineOpts holds per-invocation output options.
type PipelineOpts struct {
	Format      config.Format
	Color       bool
	LineNumbers bool
}

// Pipeline runs threadpatch operations with injected dependencies.
type Pipeline struct {
	// Config is the resolved configuration.
	Config *config.Config

	// FS reads thread files, patch files and raw diff input.
	FS config.FileSystem

	// Highlighter colors code lines in terminal output.
	Highlighter highlight.Highlighter

	// Stdin is read when the input argument is "-" or absent.
	Stdin io.Reader

	// Stdout receives formatted results.
	Stdout io.Writer

	// Stderr receives status messages.
	Stderr io.Writer
}

// Merge loads a thread file and writes the consolidated per-file diffs.
func (p *Pipeline) Merge(ctx context.Context, threadPath string, opts PipelineOpts) error {
	log := logger.FromContext(ctx)
	log.Info("merge started", "thread", threadPath)

	patches, err := thread.NewLoader(p.FS).Load(ctx, threadPath)
	if err != nil {
		return err
	}

	included, skipped := patch.CapPatches(patches, p.Config.Limits.MaxChars, p.Config.Limits.MaxLines)
	if len(skipped) > 0 {
		fmt.Fprintf(p.Stderr, "⚠️  Skipped the last %d of %d messages: thread exceeds configured limits\n", len(skipped), len(patches))
	}

	res := merge.Reconcile(ctx, included)
	for _, ov := range res.Overlaps {
		log.Info("overlap reconciled", "path", ov.Path, "start", ov.Start, "end", ov.End, "replaced", ov.Replaced)
	}
	log.Info("merge completed", "messages", res.Patches, "blocks", res.Blocks, "files", len(res.Files), "overlaps", len(res.Overlaps))

	report := formatter.Report{Merge: &res}
	switch opts.Format {
	case config.FormatSections:
		report = formatter.Report{Sections: report.Files()}
	case config.FormatDiff, "":
		if len(res.Files) == 0 {
			fmt.Fprintln(p.Stderr, "No diffs found in thread")
			return nil
		}
	}

	return p.write(ctx, report, opts)
}

// Split divides raw diff text into per-file sections.
func (p *Pipeline) Split(ctx context.Context, input string, opts PipelineOpts) error {
	if opts.Format == config.FormatSARIF {
		return ErrSARIFUnsupported
	}

	text, err := p.read(input)
	if err != nil {
		return err
	}

	files := section.Split(text)
	logger.FromContext(ctx).Info("split completed", "sections", len(files))

	return p.write(ctx, formatter.Report{Sections: files}, opts)
}

// Extract writes the diff blocks found in free-form message text.
func (p *Pipeline) Extract(ctx context.Context, input string, opts PipelineOpts) error {
	if opts.Format == config.FormatSARIF {
		return ErrSARIFUnsupported
	}

	text, err := p.read(input)
	if err != nil {
		return err
	}

	blocks := patch.ExtractBlocks(text)
	logger.FromContext(ctx).Info("extract completed", "blocks", len(blocks))

	if opts.Format == config.FormatDiff || opts.Format == "" {
		fmt.Fprint(p.Stdout, strings.Join(blocks, ""))
		return nil
	}

	if blocks == nil {
		blocks = []string{}
	}
	data, err := json.MarshalIndent(struct {
		Blocks []string `json:"blocks"`
	}{blocks}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding blocks: %w", err)
	}
	fmt.Fprintln(p.Stdout, string(data))
	return nil
}

func (p *Pipeline) write(ctx context.Context, report formatter.Report, opts PipelineOpts) error {
	diff := formatter.NewDiffFormatter(opts.Color, p.Config.Theme, nil)
	diff.LineNumbers = opts.LineNumbers
	if opts.Color && p.Config.HighlightEnabled() {
		diff.Highlighter = p.Highlighter
	}

	f, err := formatter.New(opts.Format, diff)
	if err != nil {
		return err
	}

	out := f.Format(ctx, report)
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	fmt.Fprint(p.Stdout, out)
	return nil
}

// read returns the text named by input: a file path, or stdin for "" and "-".
func (p *Pipeline) read(input string) (string, error) {
	if input == "" || input == "-" {
		data, err := io.ReadAll(p.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := p.FS.ReadFile(input)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", input, err)
	}
	return string(data), nil
}
