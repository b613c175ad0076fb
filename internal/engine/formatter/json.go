package formatter

import (
	"context"
	"encoding/json"
)

// JSONFormatter outputs a Report as pretty-printed JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns the Report as indented JSON.
func (f *JSONFormatter) Format(_ context.Context, report Report) string {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return `{"error": "failed to marshal report"}`
	}
	return string(data)
}
