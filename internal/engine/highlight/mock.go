package highlight

import (
	"context"
	"sync"
)

// MockHighlighter returns one plain token per line and records calls.
type MockHighlighter struct {
	Err error

	mu    sync.Mutex
	Calls []Request
}

// Highlight implements Highlighter.
func (m *MockHighlighter) Highlight(_ context.Context, req Request) ([][]Token, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	rows := make([][]Token, len(req.Lines))
	for i, l := range req.Lines {
		rows[i] = []Token{{Type: "Text", Text: l}}
	}
	return rows, nil
}

// CallCount returns the number of Highlight calls.
func (m *MockHighlighter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
