package formatter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/irahardianto/threadpatch/internal/engine/merge"
	"github.com/irahardianto/threadpatch/internal/platform/logger"
)

const (
	toolName = "threadpatch"
	toolURI  = "https://github.com/irahardianto/threadpatch"

	// RulePartialOverlap marks hunks that were interleaved with an earlier revision.
	RulePartialOverlap = "partial-overlap"
	// RuleReplaced marks hunks superseded wholesale by a later revision.
	RuleReplaced = "superseded-hunk"
)

// SARIFFormatter reports how overlapping hunks were reconciled as SARIF
// v2.1.0 results, one per overlap, located at the merged new-file range.
type SARIFFormatter struct{}

// NewSARIFFormatter creates a new SARIFFormatter.
func NewSARIFFormatter() *SARIFFormatter {
	return &SARIFFormatter{}
}

// Format returns the report's overlaps as a SARIF log.
func (f *SARIFFormatter) Format(ctx context.Context, report Report) string {
	rep, err := sarif.New(sarif.Version210)
	if err != nil {
		logger.FromContext(ctx).Error("creating SARIF report", "error", err)
		return "{}"
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	run.AddRule(RulePartialOverlap).
		WithDescription("A later revision partially overlapped an earlier hunk; lines were interleaved by position.")
	run.AddRule(RuleReplaced).
		WithDescription("A later revision covered an earlier hunk entirely and replaced it.")

	if report.Merge != nil {
		for _, ov := range report.Merge.Overlaps {
			addOverlap(run, ov)
		}
	}

	rep.AddRun(run)

	var buf bytes.Buffer
	if err := rep.PrettyWrite(&buf); err != nil {
		logger.FromContext(ctx).Error("writing SARIF report", "error", err)
		return "{}"
	}
	return buf.String()
}

func addOverlap(run *sarif.Run, ov merge.Overlap) {
	rule, level := RulePartialOverlap, "warning"
	msg := fmt.Sprintf("lines %d-%d from the %s revision were interleaved with the %s revision",
		ov.Start, ov.End, ov.LaterDate.Format("2006-01-02 15:04"), ov.EarlierDate.Format("2006-01-02 15:04"))
	if ov.Replaced {
		rule, level = RuleReplaced, "note"
		msg = fmt.Sprintf("the %s revision replaced the hunk from the %s revision",
			ov.LaterDate.Format("2006-01-02 15:04"), ov.EarlierDate.Format("2006-01-02 15:04"))
	}

	start, end := max(ov.Start, 1), max(ov.End, ov.Start, 1)
	location := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewSimpleArtifactLocation(ov.Path)).
		WithRegion(sarif.NewSimpleRegion(start, end))

	run.CreateResultForRule(rule).
		WithLevel(level).
		WithMessage(sarif.NewTextMessage(msg)).
		AddLocation(sarif.NewLocationWithPhysicalLocation(location))
}
