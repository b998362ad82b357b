package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dictus/pkg/errors"
)

func newTestRegistry() *Registry {
	return NewRegistry([]string{"english", "french", "german"})
}

func TestResolveLanguage(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		token string
		want  string
	}{
		{"english", "english"},
		{"englsh", "english"},
		{"English", "english"},
		{"eng", "english"},
		{"fr", "french"},
		{"grmn", "german"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := r.ResolveLanguage(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveLanguageFailures(t *testing.T) {
	t.Run("empty known set", func(t *testing.T) {
		r := NewRegistry(nil)
		_, err := r.ResolveLanguage("englsh")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedLanguage))
		assert.Equal(t, "englsh", errors.GetErrorDetails(err)["token"])
	})

	t.Run("below threshold", func(t *testing.T) {
		r := newTestRegistry()
		for _, token := range []string{"xyz", "deutsch", "qqqqqq"} {
			_, err := r.ResolveLanguage(token)
			assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedLanguage), token)
		}
	})

	t.Run("threshold is configurable", func(t *testing.T) {
		strict := NewRegistry([]string{"english"}, WithMinSimilarity(0.95))
		_, err := strict.ResolveLanguage("englsh")
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedLanguage))

		loose := NewRegistry([]string{"english"}, WithMinSimilarity(0.1))
		got, err := loose.ResolveLanguage("enxxxxh")
		require.NoError(t, err)
		assert.Equal(t, "english", got)
	})
}

func TestResolveNeverReturnsUnknownLanguage(t *testing.T) {
	r := NewRegistry([]string{"latin", "latvian"}, WithMinSimilarity(0.01))
	for _, token := range []string{"lat", "l", "ltn", "latvia", "LATIN"} {
		got, err := r.ResolveLanguage(token)
		require.NoError(t, err)
		assert.True(t, r.IsKnown(got), "%q resolved to unknown %q", token, got)
	}

	got, _ := r.ResolveLanguage("lat")
	assert.Equal(t, "latin", got, "ties resolve in lexical order")
}

func TestWithMinSimilarityIgnoresOutOfRange(t *testing.T) {
	assert.Equal(t, DefaultMinSimilarity, NewRegistry(nil, WithMinSimilarity(0)).MinSimilarity())
	assert.Equal(t, DefaultMinSimilarity, NewRegistry(nil, WithMinSimilarity(1.5)).MinSimilarity())
	assert.Equal(t, 0.8, NewRegistry(nil, WithMinSimilarity(0.8)).MinSimilarity())
}

func TestRegisterCreatesLinkAndBacklink(t *testing.T) {
	r := newTestRegistry()
	origin := Key{Language: "english", Lemma: "run", Index: 2}

	stored, err := r.Register(origin, "synonym", Reference{Language: "englsh", Lemma: "sprint"})
	require.NoError(t, err)
	assert.Equal(t, Reference{Type: "synonym", Language: "english", Lemma: "sprint", Index: 1}, stored)

	links := r.LinksFor(origin)
	require.Len(t, links, 1)
	assert.Equal(t, "synonym", links[0].Type)
	assert.Equal(t, []Reference{stored}, links[0].References)

	backlinks := r.BacklinksFor(Key{Language: "english", Lemma: "sprint", Index: 1})
	require.Len(t, backlinks, 1)
	assert.Equal(t, "synonym", backlinks[0].Type)
	assert.Equal(t, []Reference{{Type: "synonym", Language: "english", Lemma: "run", Index: 2}}, backlinks[0].References)
	assert.Equal(t, origin, backlinks[0].References[0].Key())
}

func TestRegisterPreservesTypeOrder(t *testing.T) {
	r := newTestRegistry()
	origin := Key{Language: "english", Lemma: "run", Index: 1}

	calls := []struct {
		typ   string
		lemma string
	}{
		{"synonym", "sprint"},
		{"derived_from", "rinnan"},
		{"synonym", "dash"},
		{"antonym", "walk"},
	}
	for _, c := range calls {
		_, err := r.Register(origin, c.typ, Reference{Language: "english", Lemma: c.lemma, Index: 1})
		require.NoError(t, err)
	}

	links := r.LinksFor(origin)
	require.Len(t, links, 3)
	assert.Equal(t, "synonym", links[0].Type)
	assert.Equal(t, "derived_from", links[1].Type)
	assert.Equal(t, "antonym", links[2].Type)
	require.Len(t, links[0].References, 2)
	assert.Equal(t, "sprint", links[0].References[0].Lemma)
	assert.Equal(t, "dash", links[0].References[1].Lemma)
}

func TestRegisterIsNotIdempotent(t *testing.T) {
	r := newTestRegistry()
	origin := Key{Language: "english", Lemma: "run", Index: 1}
	ref := Reference{Language: "french", Lemma: "courir", Index: 1}

	for i := 0; i < 2; i++ {
		_, err := r.Register(origin, "translation", ref)
		require.NoError(t, err)
	}

	assert.Len(t, r.LinksFor(origin)[0].References, 2)
	assert.Len(t, r.BacklinksFor(ref.Key())[0].References, 2)
}

func TestRegisterMutualReferences(t *testing.T) {
	r := newTestRegistry()
	a := Key{Language: "english", Lemma: "big", Index: 1}
	b := Key{Language: "english", Lemma: "large", Index: 1}

	_, err := r.Register(a, "synonym", Reference{Language: b.Language, Lemma: b.Lemma, Index: b.Index})
	require.NoError(t, err)
	_, err = r.Register(b, "synonym", Reference{Language: a.Language, Lemma: a.Lemma, Index: a.Index})
	require.NoError(t, err)

	assert.Equal(t, b, r.LinksFor(a)[0].References[0].Key())
	assert.Equal(t, b, r.BacklinksFor(a)[0].References[0].Key())
	assert.Equal(t, a, r.LinksFor(b)[0].References[0].Key())
	assert.Equal(t, a, r.BacklinksFor(b)[0].References[0].Key())
}

func TestRegisterDefaultsIndex(t *testing.T) {
	r := newTestRegistry()
	stored, err := r.Register(Key{Language: "english", Lemma: "run", Index: 1}, "see",
		Reference{Language: "german", Lemma: "laufen"})
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Index)
	assert.Len(t, r.BacklinksFor(Key{Language: "german", Lemma: "laufen", Index: 1}), 1)
}

func TestRegisterUnresolvedCarriesOrigin(t *testing.T) {
	r := newTestRegistry()
	origin := Key{Language: "english", Lemma: "run", Index: 1}

	_, err := r.Register(origin, "synonym", Reference{Language: "klingon", Lemma: "x", Index: 1})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedLanguage))

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "klingon", details["token"])
	assert.Equal(t, "english:run:1", details["origin"])

	assert.Empty(t, r.LinksFor(origin), "failed registration stores nothing")
}

func TestRegisterRejectsUnknownOrigin(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Register(Key{Language: "klingon", Lemma: "x", Index: 1}, "synonym",
		Reference{Language: "english", Lemma: "run", Index: 1})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestLookupsOnMissingKeysAreEmpty(t *testing.T) {
	r := newTestRegistry()
	missing := Key{Language: "english", Lemma: "nothing", Index: 9}

	assert.NotNil(t, r.LinksFor(missing))
	assert.Empty(t, r.LinksFor(missing))
	assert.NotNil(t, r.BacklinksFor(missing))
	assert.Empty(t, r.BacklinksFor(missing))
}

func TestLinksForReturnsCopies(t *testing.T) {
	r := newTestRegistry()
	origin := Key{Language: "english", Lemma: "run", Index: 1}
	_, err := r.Register(origin, "synonym", Reference{Language: "english", Lemma: "sprint", Index: 1})
	require.NoError(t, err)

	groups := r.LinksFor(origin)
	groups[0].References[0].Lemma = "mutated"

	assert.Equal(t, "sprint", r.LinksFor(origin)[0].References[0].Lemma)
}

func TestStats(t *testing.T) {
	r := newTestRegistry()
	_, _ = r.Register(Key{Language: "english", Lemma: "a", Index: 1}, "s", Reference{Language: "french", Lemma: "b", Index: 1})
	_, _ = r.Register(Key{Language: "english", Lemma: "a", Index: 1}, "t", Reference{Language: "french", Lemma: "c", Index: 1})
	_, _ = r.Register(Key{Language: "german", Lemma: "d", Index: 1}, "s", Reference{Language: "french", Lemma: "b", Index: 1})

	assert.Equal(t, Stats{Languages: 3, Origins: 2, Targets: 2, References: 3}, r.Stats())
}

func TestLanguagesSortedAndDeduplicated(t *testing.T) {
	r := NewRegistry([]string{"german", "english", "german"})
	assert.Equal(t, []string{"english", "german"}, r.Languages())
}
