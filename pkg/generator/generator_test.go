package generator

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/link"
	"github.com/arthur-debert/dictus/pkg/model"
	"github.com/arthur-debert/dictus/pkg/richtext"
	"github.com/arthur-debert/dictus/pkg/tree"
)

func table(kv ...any) *tree.Map {
	m := tree.NewMap()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1])
	}
	return m
}

func languages(t *testing.T) []*model.Language {
	t.Helper()
	reg := link.NewRegistry([]string{"english", "french"})
	env := model.Env{Registry: reg, Renderer: richtext.NewMarkdown(reg)}

	english, err := model.NewLanguage("english", nil)
	require.NoError(t, err)
	run, err := model.NewLemma(env, english, "run", table(
		"text", "A *common* verb.",
		"defs", []any{
			table("text", "move <fast>", "pos", "verb", "glosses", []any{"move quickly"},
				"links", table("translation", "french:courir", "see", "walk:2")),
		},
	))
	require.NoError(t, err)
	english.AddLemma(run)
	english.Finalize()

	french, err := model.NewLanguage("french", table("display_name", "Français"))
	require.NoError(t, err)
	courir, err := model.NewLemma(env, french, "courir", table("defs", []any{"aller vite"}))
	require.NoError(t, err)
	french.AddLemma(courir)
	french.Finalize()

	return []*model.Language{english, french}
}

func read(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestGenerate(t *testing.T) {
	fs := afero.NewMemMapFs()
	g, err := New(fs, Options{SiteName: "Lexicon", OutputDir: "/out"})
	require.NoError(t, err)

	written, err := g.Generate(languages(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"/out/english.html", "/out/french.html", "/out/index.html", "/out/dictus.css"}, written)

	english := read(t, fs, "/out/english.html")
	assert.Contains(t, english, "<title>English · Lexicon</title>")
	assert.Contains(t, english, `<article class="dictus-lemma" id="run">`)
	assert.Contains(t, english, `<li id="run:1">`)
	assert.Contains(t, english, "<em>common</em>")
	assert.Contains(t, english, `<a class="dictus-link" href="french.html#courir:1">french: courir(1)</a>`)
	assert.Contains(t, english, `<a class="dictus-link" href="#walk:2">english: walk(2)</a>`)
	assert.NotContains(t, english, "ZgotmplZ")
	assert.Contains(t, english, `<li class="current"><a href="english.html">English</a></li>`)
	assert.Contains(t, english, `<p class="dictus-pos-set">verb</p>`)

	french := read(t, fs, "/out/french.html")
	assert.Contains(t, french, `<dl class="dictus-backlinks">`)
	assert.Contains(t, french, `<a class="dictus-link" href="english.html#run:1">english: run(1)</a>`)
	assert.NotContains(t, french, "ZgotmplZ")

	index := read(t, fs, "/out/index.html")
	assert.Contains(t, index, "<h1>Lexicon</h1>")
	assert.Contains(t, index, `<a href="french.html">Français</a>`)

	assert.Contains(t, read(t, fs, "/out/dictus.css"), "a.dictus-link")
}

func TestGenerateEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	g, err := New(fs, Options{SiteName: "Lexicon", OutputDir: "/out"})
	require.NoError(t, err)

	written, err := g.Generate(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/out/index.html", "/out/dictus.css"}, written)
}

func TestCustomTemplates(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tpl/index.html.tmpl", []byte(`custom {{.SiteName}} {{len .Languages}}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/tpl/dictus.css", []byte(`body {}`), 0644))

	g, err := New(fs, Options{SiteName: "Mine", OutputDir: "/out", TemplateDir: "/tpl"})
	require.NoError(t, err)

	_, err = g.Generate(languages(t))
	require.NoError(t, err)
	assert.Equal(t, "custom Mine 2", read(t, fs, "/out/index.html"))
	assert.Equal(t, "body {}", read(t, fs, "/out/dictus.css"))
	assert.Contains(t, read(t, fs, "/out/english.html"), "dictus-lemma")
}

func TestInvalidTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tpl/lang.html.tmpl", []byte(`{{.Broken`), 0644))

	_, err := New(fs, Options{OutputDir: "/out", TemplateDir: "/tpl"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplate))
}

func TestWriteFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	g, err := New(fs, Options{OutputDir: "/out"})
	require.NoError(t, err)

	_, err = g.Generate(nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
}
