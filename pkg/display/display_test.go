package display

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/link"
	"github.com/arthur-debert/dictus/pkg/model"
	"github.com/arthur-debert/dictus/pkg/richtext"
	"github.com/arthur-debert/dictus/pkg/search"
	"github.com/arthur-debert/dictus/pkg/tree"
)

func table(kv ...any) *tree.Map {
	m := tree.NewMap()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1])
	}
	return m
}

func fixture(t *testing.T) ([]*model.Language, *link.Registry) {
	t.Helper()
	reg := link.NewRegistry([]string{"english", "french"})
	env := model.Env{Registry: reg, Renderer: richtext.Identity}

	english, err := model.NewLanguage("english", nil)
	require.NoError(t, err)
	run, err := model.NewLemma(env, english, "run", table(
		"text", "A *common* verb.",
		"defs", []any{
			table("text", "move fast", "pos", "verb", "glosses", []any{"move quickly"},
				"links", table("synonym", "sprint", "translation", "french:courir")),
		},
	))
	require.NoError(t, err)
	english.AddLemma(run)
	english.Finalize()

	french, err := model.NewLanguage("french", nil)
	require.NoError(t, err)
	courir, err := model.NewLemma(env, french, "courir", table("defs", []any{"aller vite"}))
	require.NoError(t, err)
	french.AddLemma(courir)
	french.Finalize()

	return []*model.Language{english, french}, reg
}

func newTextRenderer(t *testing.T, format Format) (*Renderer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	r, err := NewRenderer(&buf, format)
	require.NoError(t, err)
	return r, &buf
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":     FormatAuto,
		"term": FormatTerminal,
		"text": FormatText,
		"JSON": FormatJSON,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
	assert.Equal(t, "json", FormatJSON.String())
}

func TestRenderLinksText(t *testing.T) {
	_, reg := fixture(t)
	key := link.Key{Language: "english", Lemma: "run", Index: 1}
	r, buf := newTextRenderer(t, FormatText)

	require.NoError(t, r.RenderLinks(NewLinksView(key, reg.LinksFor(key), reg.BacklinksFor(key))))

	want := "english:run:1\n" +
		"links\n" +
		"  synonym\n" +
		"    english:sprint(1)\n" +
		"  translation\n" +
		"    french:courir(1)\n" +
		"backlinks\n" +
		"  none\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderLinksJSON(t *testing.T) {
	_, reg := fixture(t)
	key := link.Key{Language: "french", Lemma: "courir", Index: 1}
	r, buf := newTextRenderer(t, FormatJSON)

	require.NoError(t, r.RenderLinks(NewLinksView(key, reg.LinksFor(key), reg.BacklinksFor(key))))

	var got LinksView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "french:courir:1", got.Key)
	assert.Empty(t, got.Links)
	require.Len(t, got.Backlinks, 1)
	assert.Equal(t, ReferenceView{Language: "english", Lemma: "run", Index: 1}, got.Backlinks[0].References[0])
}

func TestRenderHitsText(t *testing.T) {
	langs, _ := fixture(t)
	r, buf := newTextRenderer(t, FormatText)

	hits := search.New(langs).ByPOS("", "verb")
	require.NoError(t, r.RenderHits(NewHitViews(langs, hits)))
	assert.Equal(t, "english:run(1) [verb] move quickly\n", buf.String())

	buf.Reset()
	require.NoError(t, r.RenderHits(nil))
	assert.Equal(t, "no matches\n", buf.String())
}

func TestRenderLanguagesText(t *testing.T) {
	langs, _ := fixture(t)
	r, buf := newTextRenderer(t, FormatText)

	require.NoError(t, r.RenderLanguages(NewLanguageViews(langs)))
	assert.Equal(t, "English (english) 1 lemmas pos: verb\nFrench (french) 1 lemmas\n", buf.String())
}

func TestRenderEscapesMarkup(t *testing.T) {
	r, buf := newTextRenderer(t, FormatText)

	require.NoError(t, r.RenderHits([]HitView{{Language: "english", Lemma: "a<b>&c"}}))
	assert.Equal(t, "english:a<b>&c\n", buf.String())
}

func TestRenderError(t *testing.T) {
	r, buf := newTextRenderer(t, FormatText)
	require.NoError(t, r.RenderError(stderrors.New("bad <input>")))
	assert.Equal(t, "Error: bad <input>\n", buf.String())

	r, buf = newTextRenderer(t, FormatJSON)
	require.NoError(t, r.RenderError(errors.New(errors.ErrNotFound, "missing")))
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "NOT_FOUND", got["code"])
}

func TestRenderMessage(t *testing.T) {
	r, buf := newTextRenderer(t, FormatText)
	require.NoError(t, r.RenderMessage("success", "done"))
	assert.Equal(t, "done\n", buf.String())
}

func TestLemmaMarkdown(t *testing.T) {
	langs, _ := fixture(t)
	run, _ := langs[0].Lemma("run")

	md := LemmaMarkdown(run)
	assert.Contains(t, md, "# run\n")
	assert.Contains(t, md, "A *common* verb.")
	assert.Contains(t, md, "## 1. verb")
	assert.Contains(t, md, "- **glosses:** move quickly")
	assert.Contains(t, md, "- **translation:** french:courir(1)")

	courir, _ := langs[1].Lemma("courir")
	assert.Contains(t, LemmaMarkdown(courir), "- **translation (from):** english:run(1)")
}

func TestRenderLemma(t *testing.T) {
	langs, _ := fixture(t)
	run, _ := langs[0].Lemma("run")
	r, buf := newTextRenderer(t, FormatText)

	require.NoError(t, r.RenderLemma(run, 60))
	assert.Contains(t, buf.String(), "run")
	assert.Contains(t, buf.String(), "move fast")
}

func TestRenderBuildSummary(t *testing.T) {
	langs, reg := fixture(t)
	r, buf := newTextRenderer(t, FormatText)

	require.NoError(t, r.RenderBuildSummary(BuildSummary{
		OutputDir: "build",
		Languages: NewLanguageViews(langs),
		Files:     []string{"english.html", "french.html", "index.html"},
		Links:     reg.Stats(),
		Duration:  1500 * time.Millisecond,
	}))
	out := buf.String()
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "Built 2 languages (3 files, 2 links) into build")
}

func TestLoadStyles(t *testing.T) {
	styles := DefaultStyles()
	for _, name := range []string{"heading", "lemma", "language", "type", "muted", "error", "success"} {
		assert.Contains(t, styles, name)
	}

	_, err := LoadStyles([]byte("colors: ["))
	assert.Error(t, err)
}
