package display

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dictus/pkg/lipbalm"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef is an adaptive colour
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef describes one named style
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// StyleConfig is the layout of styles.yaml
type StyleConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// LoadStyles builds a style map from a styles.yaml document
func LoadStyles(data []byte) (lipbalm.StyleMap, error) {
	var cfg StyleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(lipbalm.StyleMap, len(cfg.Styles))
	for name, def := range cfg.Styles {
		style := lipgloss.NewStyle().
			Bold(def.Bold).
			Italic(def.Italic).
			Underline(def.Underline)
		if c, ok := colors[def.Foreground]; ok {
			style = style.Foreground(c)
		}
		if c, ok := colors[def.Background]; ok {
			style = style.Background(c)
		}
		styles[name] = style
	}
	return styles, nil
}

// DefaultStyles returns the embedded styles
func DefaultStyles() lipbalm.StyleMap {
	styles, err := LoadStyles(defaultStyles)
	if err != nil {
		panic(fmt.Sprintf("embedded styles are invalid: %v", err))
	}
	return styles
}
