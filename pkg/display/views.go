package display

import (
	"github.com/arthur-debert/dictus/pkg/link"
	"github.com/arthur-debert/dictus/pkg/model"
	"github.com/arthur-debert/dictus/pkg/search"
)

// ReferenceView is one linked definition
type ReferenceView struct {
	Language string `json:"language"`
	Lemma    string `json:"lemma"`
	Index    int    `json:"index"`
}

// GroupView is the references of one type
type GroupView struct {
	Type       string          `json:"type"`
	References []ReferenceView `json:"references"`
}

// LinksView lists the links and backlinks of one definition
type LinksView struct {
	Key       string      `json:"key"`
	Links     []GroupView `json:"links"`
	Backlinks []GroupView `json:"backlinks"`
}

// NewLinksView builds the view for the definition at key
func NewLinksView(key link.Key, links, backlinks []link.Group) LinksView {
	return LinksView{
		Key:       key.String(),
		Links:     groupViews(links),
		Backlinks: groupViews(backlinks),
	}
}

func groupViews(groups []link.Group) []GroupView {
	views := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		refs := make([]ReferenceView, 0, len(g.References))
		for _, r := range g.References {
			refs = append(refs, ReferenceView{Language: r.Language, Lemma: r.Lemma, Index: r.Index})
		}
		views = append(views, GroupView{Type: g.Type, References: refs})
	}
	return views
}

// LanguageView summarises a parsed language
type LanguageView struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Order       *int     `json:"order,omitempty"`
	Lemmas      int      `json:"lemmas"`
	POS         []string `json:"pos"`
}

// NewLanguageViews builds views in the order given
func NewLanguageViews(langs []*model.Language) []LanguageView {
	views := make([]LanguageView, 0, len(langs))
	for _, l := range langs {
		views = append(views, LanguageView{
			Name:        l.Name,
			DisplayName: l.DisplayName,
			Order:       l.Order,
			Lemmas:      len(l.Lemmas),
			POS:         l.POS,
		})
	}
	return views
}

// HitView is a search hit with the sense details needed to show it
type HitView struct {
	Language string   `json:"language"`
	Lemma    string   `json:"lemma"`
	Index    int      `json:"index,omitempty"`
	POS      []string `json:"pos,omitempty"`
	Glosses  []string `json:"glosses,omitempty"`
}

// NewHitViews resolves hits against langs
func NewHitViews(langs []*model.Language, hits []search.Hit) []HitView {
	byName := make(map[string]*model.Language, len(langs))
	for _, l := range langs {
		byName[l.Name] = l
	}

	views := make([]HitView, 0, len(hits))
	for _, h := range hits {
		view := HitView{Language: h.Language, Lemma: h.Lemma, Index: h.Index}
		if lang, ok := byName[h.Language]; ok {
			if lemma, ok := lang.Lemma(h.Lemma); ok {
				if def, ok := lemma.Definition(h.Index); ok {
					view.POS = def.POS
					view.Glosses = def.Glosses
				}
			}
		}
		views = append(views, view)
	}
	return views
}
