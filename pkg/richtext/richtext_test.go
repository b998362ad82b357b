package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/link"
)

func newRenderer() *Markdown {
	return NewMarkdown(link.NewRegistry([]string{"english", "french", "latin"}))
}

func TestRenderEmpty(t *testing.T) {
	out, err := newRenderer().Render("")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRenderMarkdown(t *testing.T) {
	out, err := newRenderer().Render("a *word* and ~~gone~~")
	require.NoError(t, err)
	assert.Equal(t, "<p>a <em>word</em> and <del>gone</del></p>\n", out)
}

func TestRenderFootnote(t *testing.T) {
	out, err := newRenderer().Render("text[^1]\n\n[^1]: note")
	require.NoError(t, err)
	assert.Contains(t, out, `class="footnotes"`)
	assert.Contains(t, out, "note")
}

func TestRenderInlineReferences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lemma only",
			input: "see [[run]]",
			want:  `<p>see <a class="dictus-link" href="#run">run</a></p>` + "\n",
		},
		{
			name:  "lemma and index",
			input: "see [[run:2]]",
			want:  `<p>see <a class="dictus-link" href="#run:2">run(2)</a></p>` + "\n",
		},
		{
			name:  "language and lemma",
			input: "see [[french:mot]]",
			want:  `<p>see <a class="dictus-link" href="french.html#mot">french:mot</a></p>` + "\n",
		},
		{
			name:  "fuzzy language with index",
			input: "see [[frnch:mot:3]]",
			want:  `<p>see <a class="dictus-link" href="french.html#mot:3">french:mot(3)</a></p>` + "\n",
		},
	}

	r := newRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRenderKeepsStandardLinks(t *testing.T) {
	out, err := newRenderer().Render("[site](http://example.com)")
	require.NoError(t, err)
	assert.Equal(t, `<p><a href="http://example.com">site</a></p>`+"\n", out)
}

func TestRenderUnresolvedLanguage(t *testing.T) {
	_, err := newRenderer().Render("see [[qqqqqqqq:mot]]")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedLanguage))
}

func TestRenderMalformedReference(t *testing.T) {
	_, err := newRenderer().Render("see [[a:b:c:d]]")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedReference))
}

func TestRenderDoesNotRegister(t *testing.T) {
	reg := link.NewRegistry([]string{"english", "french"})
	_, err := NewMarkdown(reg).Render("[[french:mot]]")
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Stats().References)
}

func TestReferenceLabel(t *testing.T) {
	assert.Equal(t, "mot", (&Reference{Lemma: "mot"}).Label())
	assert.Equal(t, "mot(2)", (&Reference{Lemma: "mot", Index: 2}).Label())
	assert.Equal(t, "fr:mot", (&Reference{Language: "fr", Lemma: "mot"}).Label())
	assert.Equal(t, "fr:mot(2)", (&Reference{Language: "fr", Lemma: "mot", Index: 2}).Label())
}

func TestIdentity(t *testing.T) {
	out, err := Identity.Render("*raw*")
	require.NoError(t, err)
	assert.Equal(t, "*raw*", out)
}

func TestRenderEmoji(t *testing.T) {
	out, err := newRenderer().Render(":smile:")
	require.NoError(t, err)
	assert.NotContains(t, out, ":smile:")
}
