//go:build tree_sitter

package plugins

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"example.com/wrapedit/pkg/highlight"
	"example.com/wrapedit/pkg/style"
)

// TreeSitterPlugin highlights Go code with a tree-sitter parser. Lines are
// parsed with the unfinished source before them; while the parse reports
// errors that source keeps carrying.
type TreeSitterPlugin struct {
	parser *sitter.Parser
}

type treeSitterState struct {
	carry string
}

// NewTreeSitterPlugin initializes the parser with the Go language grammar.
func NewTreeSitterPlugin() *TreeSitterPlugin {
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	return &TreeSitterPlugin{parser: p}
}

// Name identifies the plugin.
func (t *TreeSitterPlugin) Name() string { return "tree-sitter-go" }

// Parse returns a syntax tree for the provided source code.
func (t *TreeSitterPlugin) Parse(src []byte) *sitter.Tree {
	return t.parser.Parse(nil, src)
}

func (t *TreeSitterPlugin) Start() highlight.State { return treeSitterState{} }

func (t *TreeSitterPlugin) HighlightLine(line string, prior highlight.State) ([]highlight.Span, highlight.State) {
	st, _ := prior.(treeSitterState)
	text := st.carry + line + "\n"
	tree := t.Parse([]byte(text))
	if tree == nil {
		return nil, treeSitterState{}
	}
	root := tree.RootNode()
	base := len(st.carry)
	var spans []highlight.Span
	walk(root, func(n *sitter.Node, id style.ID) {
		start, end := int(n.StartByte())-base, int(n.EndByte())-base
		start, end = max(start, 0), min(end, len(line))
		if start < end {
			spans = append(spans, highlight.Span{Start: start, End: end, Style: id})
		}
	})
	if root.HasError() && len(text) < maxCarry {
		return spans, treeSitterState{carry: text}
	}
	return spans, treeSitterState{}
}

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// walk reports the styled nodes under n in source order.
func walk(n *sitter.Node, emit func(*sitter.Node, style.ID)) {
	switch n.Type() {
	case "comment":
		emit(n, style.Comment)
		return
	case "interpreted_string_literal", "raw_string_literal", "rune_literal":
		emit(n, style.String)
		return
	case "int_literal", "float_literal", "imaginary_literal":
		emit(n, style.Number)
		return
	case "type_identifier":
		emit(n, style.Type)
		return
	case "true", "false", "nil", "iota":
		emit(n, style.Keyword)
		return
	case "identifier", "field_identifier":
		if isCallee(n) {
			emit(n, style.Function)
		}
		return
	}
	if !n.IsNamed() && goKeywords[n.Type()] {
		emit(n, style.Keyword)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), emit)
	}
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// isCallee reports whether an identifier names a called or declared function.
func isCallee(n *sitter.Node) bool {
	p := n.Parent()
	if p == nil {
		return false
	}
	switch p.Type() {
	case "function_declaration", "method_declaration":
		return sameNode(p.ChildByFieldName("name"), n)
	case "call_expression":
		return sameNode(p.ChildByFieldName("function"), n)
	case "selector_expression":
		gp := p.Parent()
		return gp != nil && gp.Type() == "call_expression" &&
			sameNode(p.ChildByFieldName("field"), n) && sameNode(gp.ChildByFieldName("function"), p)
	}
	return false
}
