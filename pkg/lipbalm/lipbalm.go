package lipbalm

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/beevik/etree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// NoFormatTag marks content shown only without colour
const NoFormatTag = "no-format"

const rootTag = "lipbalm-root"

// StyleMap maps tag names to styles
type StyleMap map[string]lipgloss.Style

var (
	rendererMu      sync.RWMutex
	defaultRenderer = lipgloss.DefaultRenderer()
)

// SetDefaultRenderer sets the renderer whose colour profile decides between
// styled and plain output.
func SetDefaultRenderer(r *lipgloss.Renderer) {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	defaultRenderer = r
}

func hasColor() bool {
	rendererMu.RLock()
	defer rendererMu.RUnlock()
	return defaultRenderer.ColorProfile() != termenv.Ascii
}

// Render executes tmpl with data, then expands its style tags
func Render(tmpl string, data interface{}, styles StyleMap) (string, error) {
	t, err := template.New("lipbalm").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return ExpandTags(buf.String(), styles)
}

// ExpandTags replaces style tags with styled text
func ExpandTags(input string, styles StyleMap) (string, error) {
	root, ok := parse(input)
	if !ok {
		return input, nil
	}
	color := hasColor()

	var out strings.Builder
	expand(&out, root, styles, color)
	return out.String(), nil
}

// StripTags removes every tag, keeping all text content
func StripTags(input string) string {
	root, ok := parse(input)
	if !ok {
		return input
	}
	var out strings.Builder
	expand(&out, root, nil, false)
	return out.String()
}

func parse(input string) (*etree.Element, bool) {
	if input == "" {
		return nil, false
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<" + rootTag + ">" + input + "</" + rootTag + ">"); err != nil {
		return nil, false
	}
	root := doc.SelectElement(rootTag)
	return root, root != nil
}

func expand(out *strings.Builder, el *etree.Element, styles StyleMap, color bool) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			out.WriteString(t.Data)
		case *etree.Element:
			if t.Tag == NoFormatTag {
				if !color {
					expand(out, t, styles, color)
				}
				continue
			}

			var inner strings.Builder
			expand(&inner, t, styles, color)
			style, ok := styles[t.Tag]
			if !ok || !color {
				out.WriteString(inner.String())
				continue
			}
			out.WriteString(style.Render(inner.String()))
		}
	}
}
