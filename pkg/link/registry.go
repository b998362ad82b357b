package link

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/logging"
)

// Resolver maps a possibly misspelled language token to a known language
type Resolver interface {
	ResolveLanguage(token string) (string, error)
}

// Registry holds the forward and backward link indices for one parsing run.
// It is not safe for concurrent mutation.
type Registry struct {
	known         map[string]struct{}
	languages     []string
	minSimilarity float64

	links     map[Key]*groups
	backlinks map[Key]*groups
	resolved  map[string]string

	log zerolog.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithMinSimilarity sets the lowest acceptable fuzzy match score, in (0, 1].
// Out of range values are ignored.
func WithMinSimilarity(score float64) Option {
	return func(r *Registry) {
		if score > 0 && score <= 1 {
			r.minSimilarity = score
		}
	}
}

// NewRegistry creates a registry for the complete set of language identities
// of a run. Every language must be known before any reference is resolved.
func NewRegistry(languages []string, opts ...Option) *Registry {
	r := &Registry{
		known:         make(map[string]struct{}, len(languages)),
		minSimilarity: DefaultMinSimilarity,
		links:         make(map[Key]*groups),
		backlinks:     make(map[Key]*groups),
		resolved:      make(map[string]string),
		log:           logging.GetLogger("link.registry"),
	}
	for _, l := range languages {
		if _, dup := r.known[l]; dup {
			continue
		}
		r.known[l] = struct{}{}
		r.languages = append(r.languages, l)
	}
	sort.Strings(r.languages)

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Languages returns the known language identities, sorted
func (r *Registry) Languages() []string {
	return append([]string(nil), r.languages...)
}

// IsKnown reports whether language is one of the registry's identities
func (r *Registry) IsKnown(language string) bool {
	_, ok := r.known[language]
	return ok
}

// MinSimilarity returns the fuzzy match threshold in use
func (r *Registry) MinSimilarity() float64 {
	return r.minSimilarity
}

// ResolveLanguage returns the known language identity that token refers to.
// Exact identities short-circuit; anything else goes through fuzzy matching
// and fails unless the best candidate reaches the similarity threshold.
func (r *Registry) ResolveLanguage(token string) (string, error) {
	lang, err := r.resolve(token)
	if err != nil {
		return "", err
	}
	return lang, nil
}

func (r *Registry) resolve(token string) (string, *errors.DictusError) {
	if r.IsKnown(token) {
		return token, nil
	}
	if lang, ok := r.resolved[token]; ok {
		return lang, nil
	}

	if len(r.languages) == 0 {
		return "", errors.Newf(errors.ErrUnresolvedLanguage,
			"cannot resolve language %q: no languages are known", token).
			WithDetail("token", token)
	}

	best := rankLanguages(token, r.languages)[0]
	if best.Score < r.minSimilarity {
		return "", errors.Newf(errors.ErrUnresolvedLanguage,
			"cannot resolve language %q: closest is %q (score %.2f, need %.2f)",
			token, best.Language, best.Score, r.minSimilarity).
			WithDetail("token", token).
			WithDetail("closest", best.Language).
			WithDetail("score", best.Score)
	}

	r.log.Debug().
		Str("token", token).
		Str("language", best.Language).
		Float64("score", best.Score).
		Msg("Resolved language by fuzzy match")

	r.resolved[token] = best.Language
	return best.Language, nil
}

// Register records ref as an outgoing link of origin under typeLabel and the
// matching backlink under the resolved target. It returns the reference as
// stored. Calling it twice with the same inputs stores duplicates.
func (r *Registry) Register(origin Key, typeLabel string, ref Reference) (Reference, error) {
	if !r.IsKnown(origin.Language) {
		return Reference{}, errors.Newf(errors.ErrInvalidInput,
			"origin %s belongs to an unknown language", origin).
			WithDetail("origin", origin.String())
	}
	if origin.Index < 1 {
		origin.Index = 1
	}

	ref.Type = typeLabel
	if !r.IsKnown(ref.Language) {
		lang, err := r.resolve(ref.Language)
		if err != nil {
			return Reference{}, err.WithDetail("origin", origin.String())
		}
		ref.Language = lang
	}
	if ref.Index < 1 {
		ref.Index = 1
	}

	r.groupsFor(r.links, origin).add(typeLabel, ref)

	back := Reference{
		Type:     typeLabel,
		Language: origin.Language,
		Lemma:    origin.Lemma,
		Index:    origin.Index,
	}
	r.groupsFor(r.backlinks, ref.Key()).add(typeLabel, back)

	r.log.Trace().
		Str("origin", origin.String()).
		Str("type", typeLabel).
		Str("target", ref.Key().String()).
		Msg("Registered link")

	return ref, nil
}

// LinksFor returns the outgoing references of key grouped by type. A key
// without links yields an empty slice.
func (r *Registry) LinksFor(key Key) []Group {
	return r.links[key].snapshot()
}

// BacklinksFor returns the references pointing at key grouped by type
func (r *Registry) BacklinksFor(key Key) []Group {
	return r.backlinks[key].snapshot()
}

// Stats summarises the registry contents
type Stats struct {
	Languages  int `json:"languages"`
	Origins    int `json:"origins"`
	Targets    int `json:"targets"`
	References int `json:"references"`
}

// Stats returns counts over both indices
func (r *Registry) Stats() Stats {
	s := Stats{
		Languages: len(r.languages),
		Origins:   len(r.links),
		Targets:   len(r.backlinks),
	}
	for _, g := range r.links {
		for _, refs := range g.byType {
			s.References += len(refs)
		}
	}
	return s
}

func (r *Registry) groupsFor(index map[Key]*groups, key Key) *groups {
	g, ok := index[key]
	if !ok {
		g = &groups{byType: make(map[string][]Reference)}
		index[key] = g
	}
	return g
}

// groups is an insertion-ordered type label -> references map
type groups struct {
	order  []string
	byType map[string][]Reference
}

func (g *groups) add(typeLabel string, ref Reference) {
	if _, ok := g.byType[typeLabel]; !ok {
		g.order = append(g.order, typeLabel)
	}
	g.byType[typeLabel] = append(g.byType[typeLabel], ref)
}

func (g *groups) snapshot() []Group {
	if g == nil {
		return []Group{}
	}
	out := make([]Group, 0, len(g.order))
	for _, t := range g.order {
		refs := make([]Reference, len(g.byType[t]))
		copy(refs, g.byType[t])
		out = append(out, Group{Type: t, References: refs})
	}
	return out
}
