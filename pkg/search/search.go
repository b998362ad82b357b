// Package search looks up lemmas and senses across parsed languages.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/arthur-debert/dictus/pkg/model"
)

// Hit addresses a search result. Index is 0 for lemma level hits.
type Hit struct {
	Language string
	Lemma    string
	Index    int
}

// Index searches a fixed set of languages. An empty language argument to
// any lookup searches every language.
type Index struct {
	languages []*model.Language
}

// New creates an index over languages, keeping their order
func New(languages []*model.Language) *Index {
	return &Index{languages: languages}
}

// fold normalises for caseless comparison
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func (x *Index) scope(language string) []*model.Language {
	if language == "" {
		return x.languages
	}
	for _, lang := range x.languages {
		if lang.Name == language {
			return []*model.Language{lang}
		}
	}
	return nil
}

func (x *Index) definitions(language string, match func(*model.Definition) bool) []Hit {
	hits := []Hit{}
	for _, lang := range x.scope(language) {
		for _, lemma := range lang.Lemmas {
			for _, def := range lemma.Definitions {
				if match(def) {
					hits = append(hits, Hit{Language: lang.Name, Lemma: lemma.Name, Index: def.Index})
				}
			}
		}
	}
	return hits
}

// ByLemma finds lemmas by exact name
func (x *Index) ByLemma(language, name string) []Hit {
	hits := []Hit{}
	for _, lang := range x.scope(language) {
		for _, lemma := range lang.Lemmas {
			if lemma.Name == name {
				hits = append(hits, Hit{Language: lang.Name, Lemma: lemma.Name})
			}
		}
	}
	return hits
}

// ByGloss finds senses with a gloss equal to gloss, ignoring case. When no
// gloss matches exactly, senses whose multi-word glosses contain gloss as a
// whole word are returned instead.
func (x *Index) ByGloss(language, gloss string) []Hit {
	want := fold(gloss)
	hits := x.definitions(language, func(d *model.Definition) bool {
		return hasGloss(d, want)
	})
	if len(hits) > 0 {
		return hits
	}
	return x.definitions(language, func(d *model.Definition) bool {
		for _, g := range d.Glosses {
			words := strings.Fields(fold(g))
			if len(words) < 2 {
				continue
			}
			for _, w := range words {
				if w == want {
					return true
				}
			}
		}
		return false
	})
}

// ByPOS finds senses tagged with a part of speech, ignoring case
func (x *Index) ByPOS(language, pos string) []Hit {
	want := fold(pos)
	return x.definitions(language, func(d *model.Definition) bool {
		return hasPOS(d, want)
	})
}

// ByGlossAndPOS finds senses with an exact gloss and a part of speech
func (x *Index) ByGlossAndPOS(language, gloss, pos string) []Hit {
	wantGloss, wantPOS := fold(gloss), fold(pos)
	return x.definitions(language, func(d *model.Definition) bool {
		return hasGloss(d, wantGloss) && hasPOS(d, wantPOS)
	})
}

// ByText finds senses whose source text or glosses contain query, ignoring case
func (x *Index) ByText(language, query string) []Hit {
	want := fold(query)
	if want == "" {
		return []Hit{}
	}
	return x.definitions(language, func(d *model.Definition) bool {
		if strings.Contains(fold(d.Source), want) {
			return true
		}
		for _, g := range d.Glosses {
			if strings.Contains(fold(g), want) {
				return true
			}
		}
		return false
	})
}

func hasGloss(d *model.Definition, want string) bool {
	for _, g := range d.Glosses {
		if fold(g) == want {
			return true
		}
	}
	return false
}

func hasPOS(d *model.Definition, want string) bool {
	for _, p := range d.POS {
		if fold(p) == want {
			return true
		}
	}
	return false
}
