package model

import (
	stderrors "errors"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/tree"
)

// Lemma is a headword with its numbered definitions
type Lemma struct {
	Language    *Language
	Name        string
	Text        string
	Tags        []string
	Definitions []*Definition
	Extra       *tree.Map
}

// NewLemma builds a lemma and all of its definitions from a decoded entry
func NewLemma(env Env, lang *Language, name string, body *tree.Map) (*Lemma, error) {
	body = body.Clone()
	lemma := &Lemma{
		Language: lang,
		Name:     name,
	}

	text, _ := body.Pop("text")
	rendered, err := env.render(tree.String(text))
	if err != nil {
		return nil, entryError(err, lang.Name, name)
	}
	lemma.Text = rendered

	tags, _ := body.Pop("tags")
	if lemma.Tags, err = tree.Strings(tags); err != nil {
		return nil, invalidField(err, "tags", lang.Name, name)
	}

	defs, _ := body.Pop("defs")
	if err := lemma.buildDefinitions(env, defs); err != nil {
		return nil, err
	}

	lemma.Extra = body
	return lemma, nil
}

func (l *Lemma) buildDefinitions(env Env, defs any) error {
	var items []any
	switch t := defs.(type) {
	case nil:
		return nil
	case []any:
		items = t
	default:
		return errors.Newf(errors.ErrInvalidEntry, "defs of %s must be a list, got %T", l.Name, defs).
			WithDetail("language", l.Language.Name).
			WithDetail("lemma", l.Name)
	}

	l.Definitions = make([]*Definition, 0, len(items))
	for i, item := range items {
		var body *tree.Map
		switch t := item.(type) {
		case nil:
			body = tree.NewMap()
		case *tree.Map:
			body = t
		case string:
			body = tree.NewMap()
			body.Set("text", t)
		default:
			return errors.Newf(errors.ErrInvalidEntry, "definition %d of %s must be a table or string, got %T", i+1, l.Name, item).
				WithDetail("language", l.Language.Name).
				WithDetail("lemma", l.Name)
		}

		def, err := NewDefinition(env, l.Language, l.Name, i+1, body)
		if err != nil {
			return err
		}
		l.Definitions = append(l.Definitions, def)
	}
	return nil
}

// Definition returns the definition with the given 1-based sense index
func (l *Lemma) Definition(index int) (*Definition, bool) {
	if index < 1 || index > len(l.Definitions) {
		return nil, false
	}
	return l.Definitions[index-1], true
}

func entryError(err error, language, lemma string) error {
	var de *errors.DictusError
	if stderrors.As(err, &de) {
		return de.WithDetail("language", language).WithDetail("lemma", lemma)
	}
	return errors.Wrap(err, errors.ErrRender, "failed to render entry text").
		WithDetail("language", language).
		WithDetail("lemma", lemma)
}

func invalidField(err error, field, language, lemma string) *errors.DictusError {
	return errors.Wrapf(err, errors.ErrInvalidEntry, "invalid %s", field).
		WithDetail("language", language).
		WithDetail("lemma", lemma)
}
