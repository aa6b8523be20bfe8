package plugins

import "example.com/wrapedit/pkg/highlight"

// Highlighter is a line highlighter registered as a plug-in.
type Highlighter = highlight.Highlighter

// Plain is the highlighter for unknown file types. It styles nothing.
type Plain struct{}

func (Plain) Name() string { return "plain" }

func (Plain) Start() highlight.State { return nil }

func (Plain) HighlightLine(string, highlight.State) ([]highlight.Span, highlight.State) {
	return nil, nil
}
