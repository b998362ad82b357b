package richtext

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/arthur-debert/dictus/pkg/link"
)

// KindReference is the AST kind of an inline [[...]] reference
var KindReference = ast.NewNodeKind("DictusReference")

var referenceErrorKey = parser.NewContextKey()

var (
	openMarker  = []byte("[[")
	closeMarker = []byte("]]")
)

// Reference is an inline reference node. Language is resolved; it is empty
// when the source omitted it. Index is 0 when omitted.
type Reference struct {
	ast.BaseInline

	Language string
	Lemma    string
	Index    int
}

// Kind implements ast.Node
func (n *Reference) Kind() ast.NodeKind {
	return KindReference
}

// Dump implements ast.Node
func (n *Reference) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Language": n.Language,
		"Lemma":    n.Lemma,
		"Index":    fmt.Sprint(n.Index),
	}, nil)
}

// Href is the link target: another page when a language is given, else this page
func (n *Reference) Href() string {
	anchor := link.AnchorID(n.Lemma, n.Index)
	if n.Language == "" {
		return "#" + anchor
	}
	return n.Language + ".html#" + anchor
}

// Label is the visible link text
func (n *Reference) Label() string {
	switch {
	case n.Language != "" && n.Index > 0:
		return fmt.Sprintf("%s:%s(%d)", n.Language, n.Lemma, n.Index)
	case n.Language != "":
		return n.Language + ":" + n.Lemma
	case n.Index > 0:
		return fmt.Sprintf("%s(%d)", n.Lemma, n.Index)
	default:
		return n.Lemma
	}
}

type referenceParser struct {
	resolver link.Resolver
}

func (p *referenceParser) Trigger() []byte {
	return []byte{'['}
}

func (p *referenceParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, openMarker) {
		return nil
	}
	end := bytes.Index(line[len(openMarker):], closeMarker)
	if end < 0 {
		return nil
	}
	raw := line[len(openMarker) : len(openMarker)+end]
	if bytes.IndexByte(raw, '[') >= 0 {
		return nil
	}

	tok, err := link.ParseToken(string(raw))
	if err != nil {
		recordError(pc, err)
		return nil
	}

	node := &Reference{Lemma: tok.Lemma, Index: tok.Index}
	if tok.Language != "" {
		lang, err := p.resolver.ResolveLanguage(tok.Language)
		if err != nil {
			recordError(pc, err)
			return nil
		}
		node.Language = lang
	}

	block.Advance(len(openMarker) + end + len(closeMarker))
	return node
}

// recordError keeps the first failure; the parser interface cannot return errors
func recordError(pc parser.Context, err error) {
	if pc.Get(referenceErrorKey) == nil {
		pc.Set(referenceErrorKey, err)
	}
}

type referenceRenderer struct{}

func (r *referenceRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindReference, r.render)
}

func (r *referenceRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Reference)
	_, _ = w.WriteString(link.AnchorHTML(n.Href(), n.Label(), "dictus-link"))
	return ast.WalkSkipChildren, nil
}

type referenceExtension struct {
	resolver link.Resolver
}

// Extend registers the reference parser ahead of the standard link parser
func (e *referenceExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&referenceParser{resolver: e.resolver}, 199),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&referenceRenderer{}, 199),
	))
}
