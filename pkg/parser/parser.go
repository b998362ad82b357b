package parser

import (
	stderrors "errors"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/dictus/pkg/dialect"
	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/link"
	"github.com/arthur-debert/dictus/pkg/logging"
	"github.com/arthur-debert/dictus/pkg/model"
	"github.com/arthur-debert/dictus/pkg/richtext"
	"github.com/arthur-debert/dictus/pkg/tree"
)

// MetadataKey is the reserved top-level key holding language attributes
const MetadataKey = "metadata"

// RendererFactory builds the text renderer for a run from its resolver
type RendererFactory func(resolver link.Resolver) richtext.Renderer

// Option configures a Parser
type Option func(*Parser)

// WithRenderer replaces the default Markdown renderer
func WithRenderer(factory RendererFactory) Option {
	return func(p *Parser) {
		p.newRenderer = factory
	}
}

// WithMinSimilarity sets the fuzzy language matching threshold
func WithMinSimilarity(score float64) Option {
	return func(p *Parser) {
		p.minSimilarity = score
	}
}

// WithAutoDialect selects each file's dialect from its extension
func WithAutoDialect() Option {
	return func(p *Parser) {
		p.auto = true
	}
}

// Parser builds languages from source files
type Parser struct {
	fs            afero.Fs
	dialect       dialect.Dialect
	auto          bool
	minSimilarity float64
	newRenderer   RendererFactory
	log           zerolog.Logger
}

// Result is the output of one run
type Result struct {
	Languages []*model.Language
	Registry  *link.Registry
}

// Language returns the parsed language with the given name
func (r *Result) Language(name string) (*model.Language, bool) {
	for _, lang := range r.Languages {
		if lang.Name == name {
			return lang, true
		}
	}
	return nil, false
}

// New creates a parser reading from fs with the given dialect
func New(fs afero.Fs, d dialect.Dialect, opts ...Option) *Parser {
	p := &Parser{
		fs:            fs,
		dialect:       d,
		minSimilarity: link.DefaultMinSimilarity,
		newRenderer: func(resolver link.Resolver) richtext.Renderer {
			return richtext.NewMarkdown(resolver)
		},
		log: logging.GetLogger("parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds the sorted languages of paths. Languages without entries are
// dropped. An empty path list yields an empty result.
func (p *Parser) Parse(paths []string) (*Result, error) {
	names := make([]string, len(paths))
	seen := make(map[string]string, len(paths))
	for i, path := range paths {
		name := LanguageName(path)
		if prev, dup := seen[name]; dup {
			return nil, errors.Newf(errors.ErrInvalidInput, "language %q is defined by more than one file", name).
				WithDetail("path", path).
				WithDetail("previous", prev)
		}
		seen[name] = path
		names[i] = name
	}

	registry := link.NewRegistry(names, link.WithMinSimilarity(p.minSimilarity))
	env := model.Env{
		Registry: registry,
		Renderer: p.newRenderer(registry),
	}

	p.log.Debug().Int("files", len(paths)).Strs("languages", registry.Languages()).Msg("Parsing sources")

	languages := make([]*model.Language, 0, len(paths))
	for i, path := range paths {
		lang, err := p.parseFile(env, names[i], path)
		if err != nil {
			return nil, err
		}
		if lang.IsEmpty() {
			p.log.Info().Str("language", lang.Name).Str("path", path).Msg("Dropping language with no entries")
			continue
		}
		languages = append(languages, lang)
	}

	sort.SliceStable(languages, func(i, j int) bool {
		oi, okI := languages[i].SortKey()
		oj, okJ := languages[j].SortKey()
		switch {
		case okI && okJ:
			return oi < oj
		default:
			return okI && !okJ
		}
	})

	return &Result{Languages: languages, Registry: registry}, nil
}

func (p *Parser) dialectFor(path string) (dialect.Dialect, error) {
	if !p.auto {
		return p.dialect, nil
	}
	return dialect.FromExtension(path)
}

func (p *Parser) parseFile(env model.Env, name, path string) (*model.Language, error) {
	logger := p.log.With().Str("language", name).Str("path", path).Logger()

	d, err := p.dialectFor(path)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileRead, "failed to read source file").
			WithDetail("path", path)
	}

	doc, err := d.Decode(data)
	if err != nil {
		return nil, withPath(err, path)
	}

	lang, err := newLanguage(name, doc)
	if err != nil {
		return nil, withPath(err, path)
	}

	var failure error
	doc.Each(func(lemmaName string, value any) bool {
		if tree.IsEmpty(value) {
			logger.Trace().Str("lemma", lemmaName).Msg("Skipping empty entry")
			return true
		}
		body, ok := value.(*tree.Map)
		if !ok {
			failure = errors.Newf(errors.ErrInvalidEntry, "entry %q must be a table, got %T", lemmaName, value).
				WithDetail("language", name).
				WithDetail("path", path)
			return false
		}
		lemma, err := model.NewLemma(env, lang, lemmaName, body)
		if err != nil {
			failure = withPath(err, path)
			return false
		}
		lang.AddLemma(lemma)
		return true
	})
	if failure != nil {
		return nil, failure
	}

	lang.Finalize()
	logger.Debug().Int("lemmas", len(lang.Lemmas)).Strs("pos", lang.POS).Msg("Parsed language")
	return lang, nil
}

// newLanguage pops the metadata table off doc and builds the language from it
func newLanguage(name string, doc *tree.Map) (*model.Language, error) {
	raw, _ := doc.Pop(MetadataKey)
	var meta *tree.Map
	switch t := raw.(type) {
	case nil:
	case *tree.Map:
		meta = t
	default:
		return nil, errors.Newf(errors.ErrInvalidEntry, "%s must be a table, got %T", MetadataKey, raw).
			WithDetail("language", name)
	}
	return model.NewLanguage(name, meta)
}

func withPath(err error, path string) error {
	var de *errors.DictusError
	if stderrors.As(err, &de) {
		return de.WithDetail("path", path)
	}
	return err
}
