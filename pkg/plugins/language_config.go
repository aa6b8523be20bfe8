package plugins

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LanguageSpec defines a language entry in config. The syntax fields feed
// the generic highlighter.
type LanguageSpec struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Extensions   []string `json:"extensions"`
	Highlighter  string   `json:"highlighter"`
	LineComment  []string `json:"line_comment"`
	BlockComment []string `json:"block_comment"`
	RawString    string   `json:"raw_string"`
	Keywords     []string `json:"keywords"`
	Types        []string `json:"types"`
}

// LanguageConfig is the root schema.
type LanguageConfig struct {
	Languages []LanguageSpec `json:"languages"`
}

//go:embed languages.json
var defaultLanguagesJSON []byte

// DefaultLanguageConfig returns the built-in language table.
func DefaultLanguageConfig() *LanguageConfig {
	var cfg LanguageConfig
	if err := json.Unmarshal(defaultLanguagesJSON, &cfg); err != nil {
		panic(fmt.Sprintf("plugins: embedded languages.json: %v", err))
	}
	return &cfg
}

// LoadLanguageConfig loads config from the given JSON path.
// If missing or invalid, returns defaults alongside the error.
func LoadLanguageConfig(path string) (*LanguageConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultLanguageConfig(), err
	}
	var cfg LanguageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultLanguageConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// DetectLanguageByPath returns the first matching language by extension.
func DetectLanguageByPath(cfg *LanguageConfig, path string) *LanguageSpec {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" || cfg == nil {
		return nil
	}
	for _, lang := range cfg.Languages {
		for _, e := range lang.Extensions {
			if strings.EqualFold(e, ext) {
				l := lang
				return &l
			}
		}
	}
	return nil
}

// HighlighterFor is provided by build-specific files (see language_provider_*.go).
