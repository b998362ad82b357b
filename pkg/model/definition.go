package model

import (
	stderrors "errors"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/link"
	"github.com/arthur-debert/dictus/pkg/tree"
)

// Definition is one numbered sense of a lemma
type Definition struct {
	Language *Language
	Lemma    string
	Index    int
	Text     string
	// Source is Text as written, before rendering
	Source   string
	Tags     []string
	Glosses  []string
	POS      []string
	Extra    *tree.Map

	registry *link.Registry
}

// NewDefinition builds a sense and registers every reference it declares
// under its key.
func NewDefinition(env Env, lang *Language, lemma string, index int, body *tree.Map) (*Definition, error) {
	body = body.Clone()
	def := &Definition{
		Language: lang,
		Lemma:    lemma,
		Index:    index,
		registry: env.Registry,
	}
	key := def.Key()

	text, _ := body.Pop("text")
	rendered, err := env.render(tree.String(text))
	if err != nil {
		return nil, entryError(err, lang.Name, lemma)
	}
	def.Text = rendered
	def.Source = tree.String(text)

	for _, field := range []struct {
		name string
		dst  *[]string
	}{
		{"tags", &def.Tags},
		{"glosses", &def.Glosses},
		{"pos", &def.POS},
	} {
		raw, _ := body.Pop(field.name)
		values, err := tree.Strings(raw)
		if err != nil {
			return nil, invalidField(err, field.name, lang.Name, lemma).WithDetail("origin", key.String())
		}
		*field.dst = values
	}

	lang.AddPOS(def.POS...)

	links, _ := body.Pop("links")
	if err := def.registerLinks(links); err != nil {
		return nil, err
	}

	def.Extra = body
	return def, nil
}

func (d *Definition) registerLinks(raw any) error {
	if tree.IsEmpty(raw) {
		return nil
	}
	origin := d.Key()

	groups, ok := raw.(*tree.Map)
	if !ok {
		return errors.Newf(errors.ErrInvalidEntry, "links must be a table, got %T", raw).
			WithDetail("origin", origin.String())
	}
	if d.registry == nil {
		return errors.New(errors.ErrInternal, "definition built without a link registry").
			WithDetail("origin", origin.String())
	}

	var failure error
	groups.Each(func(typeLabel string, value any) bool {
		tokens, err := tree.Strings(value)
		if err != nil {
			failure = errors.Wrapf(err, errors.ErrInvalidEntry, "invalid links of type %s", typeLabel).
				WithDetail("origin", origin.String())
			return false
		}
		for _, token := range tokens {
			ref, err := link.Parse(token, d.Language.Name, typeLabel)
			if err != nil {
				failure = withOrigin(err, origin)
				return false
			}
			if _, err := d.registry.Register(origin, typeLabel, ref); err != nil {
				failure = err
				return false
			}
		}
		return true
	})
	return failure
}

func withOrigin(err error, origin link.Key) error {
	var de *errors.DictusError
	if stderrors.As(err, &de) {
		return de.WithDetail("origin", origin.String())
	}
	return err
}

// Key is the definition key addressing this sense
func (d *Definition) Key() link.Key {
	return link.Key{Language: d.Language.Name, Lemma: d.Lemma, Index: d.Index}
}

// Links are the references this definition declares, grouped by type
func (d *Definition) Links() []link.Group {
	if d.registry == nil {
		return []link.Group{}
	}
	return d.registry.LinksFor(d.Key())
}

// Backlinks are the references other definitions make to this one
func (d *Definition) Backlinks() []link.Group {
	if d.registry == nil {
		return []link.Group{}
	}
	return d.registry.BacklinksFor(d.Key())
}
