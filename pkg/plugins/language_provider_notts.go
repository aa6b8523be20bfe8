//go:build !tree_sitter

package plugins

// HighlighterFor returns a highlighter instance for the language when
// tree-sitter providers are not available. Tree-sitter languages fall back
// to the generic highlighter.
func HighlighterFor(lang *LanguageSpec) Highlighter {
	if lang == nil {
		return nil
	}
	switch lang.Highlighter {
	case "markdown-basic":
		return NewMarkdownHighlighter()
	case "chroma":
		return NewChromaForPath("file" + firstExt(lang))
	case "generic", "tree-sitter-go":
		return NewGeneric(lang)
	default:
		return nil
	}
}
