// Package richtext renders the free-text fields of entries to HTML.
//
// Text is Markdown with footnotes, tables, smart punctuation, strikethrough
// and :emoji: shortcodes. Inline references written as [[lang:lemma:index]]
// become links; their language token is resolved through a link.Resolver,
// the same fuzzy resolution the link registry applies. Rendering never
// registers links.
package richtext

import (
	"bytes"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/link"
)

// Renderer transforms one text field into rendered markup
type Renderer interface {
	Render(text string) (string, error)
}

// RenderFunc adapts a function to the Renderer interface
type RenderFunc func(text string) (string, error)

// Render calls f(text)
func (f RenderFunc) Render(text string) (string, error) {
	return f(text)
}

// Identity returns text unchanged
var Identity = RenderFunc(func(text string) (string, error) { return text, nil })

// Markdown is the goldmark backed Renderer
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a Markdown renderer resolving inline references with resolver
func NewMarkdown(resolver link.Resolver) *Markdown {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Footnote,
			extension.Table,
			extension.Typographer,
			extension.Strikethrough,
			emoji.Emoji,
			&referenceExtension{resolver: resolver},
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &Markdown{md: md}
}

// Render converts Markdown text to HTML. Empty text renders to "".
func (m *Markdown) Render(text string) (string, error) {
	if text == "" {
		return "", nil
	}

	ctx := parser.NewContext()
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(text), &buf, parser.WithContext(ctx)); err != nil {
		return "", errors.Wrap(err, errors.ErrRender, "failed to render text")
	}
	if err, ok := ctx.Get(referenceErrorKey).(error); ok && err != nil {
		return "", err
	}
	return buf.String(), nil
}
