package plugins

import "sort"

// Plugin represents a generic extension component.
type Plugin interface {
	Name() string
}

// Manager keeps track of registered plug-ins.
type Manager struct {
	registry  map[string]Plugin
	languages *LanguageConfig
}

// NewManager creates an empty plug-in registry.
func NewManager() *Manager {
	return &Manager{registry: make(map[string]Plugin), languages: DefaultLanguageConfig()}
}

// NewDefaultManager returns a registry holding the built-in highlighters
// for every language in cfg. A nil cfg uses the embedded defaults.
func NewDefaultManager(cfg *LanguageConfig) *Manager {
	m := NewManager()
	if cfg != nil {
		m.languages = cfg
	}
	m.Register(Plain{})
	m.Register(NewMarkdownHighlighter())
	for i := range m.languages.Languages {
		lang := &m.languages.Languages[i]
		if h := HighlighterFor(lang); h != nil {
			m.registry[lang.ID] = h
		}
	}
	return m
}

// Register adds a plug-in to the registry.
func (m *Manager) Register(p Plugin) {
	m.registry[p.Name()] = p
}

// Get retrieves a plug-in by name.
func (m *Manager) Get(name string) (Plugin, bool) {
	p, ok := m.registry[name]
	return p, ok
}

// Names returns the registered names in sorted order. Languages are
// registered under their id, which may differ from the plug-in's Name.
func (m *Manager) Names() []string {
	out := make([]string, 0, len(m.registry))
	for name := range m.registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Highlighter returns the registered highlighter called name.
func (m *Manager) Highlighter(name string) (Highlighter, bool) {
	p, ok := m.Get(name)
	if !ok {
		return nil, false
	}
	h, ok := p.(Highlighter)
	return h, ok
}

// ForPath picks the highlighter for a file: its configured language first,
// then any chroma lexer matching the name, then Plain.
func (m *Manager) ForPath(path string) Highlighter {
	if lang := DetectLanguageByPath(m.languages, path); lang != nil {
		if h, ok := m.Highlighter(lang.ID); ok {
			return h
		}
	}
	if h := NewChromaForPath(path); h != nil {
		return h
	}
	return Plain{}
}
