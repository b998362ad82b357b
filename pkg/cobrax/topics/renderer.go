package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats topic content for the terminal. format is the topic
// file's extension.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render returns content
func (PlainRenderer) Render(content string, format string) string {
	return content
}

// GlamourRenderer renders Markdown topics with glamour and leaves other
// formats alone.
type GlamourRenderer struct {
	// Style is a glamour standard style name; empty detects one from the terminal
	Style string
	// Width wraps output; 0 keeps glamour's default
	Width int
}

// Render converts Markdown content, falling back to the source on error
func (r GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" {
		options = append(options, glamour.WithStandardStyle(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := tr.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
