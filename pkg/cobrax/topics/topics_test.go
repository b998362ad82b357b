package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dictus/pkg/errors"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"references.md":      {Data: []byte("# References\n\nlang:lemma:index")},
		"option-dialect.txt": {Data: []byte("Dialect selection")},
		"notes.json":         {Data: []byte("{}")},
		"nested/inner.md":    {Data: []byte("ignored")},
	}
}

func TestLoad(t *testing.T) {
	m, err := Load(topicFS(), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"option-dialect", "references"}, m.Names())

	m, err = Load(topicFS(), Options{Extensions: []string{".json"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, m.Names())
}

func TestGet(t *testing.T) {
	m, err := Load(topicFS(), Options{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		found   bool
		content string
	}{
		{"references", true, "# References\n\nlang:lemma:index"},
		{"--dialect", true, "Dialect selection"},
		{"dialect", true, "Dialect selection"},
		{"option-dialect", true, "Dialect selection"},
		{"missing", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, ok := m.Get(tt.name)
			assert.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.content, topic.Content)
			}
		})
	}
}

func TestWriteList(t *testing.T) {
	m, err := Load(topicFS(), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.WriteList(&buf, "dictus"))
	assert.Equal(t, "Available help topics:\n\nGeneral topics:\n  references\n\nOption topics:\n  --dialect\n\nUse 'dictus help <topic>' to read about a specific topic.\n", buf.String())

	empty, err := Load(fstest.MapFS{}, Options{})
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, empty.WriteList(&buf, "dictus"))
	assert.Equal(t, "No help topics available.\n", buf.String())
}

type taggingRenderer struct{}

func (taggingRenderer) Render(content, format string) string { return format + ":" + content }

func TestInstall(t *testing.T) {
	newRoot := func() (*cobra.Command, *bytes.Buffer) {
		root := &cobra.Command{Use: "dictus", SilenceErrors: true, SilenceUsage: true}
		root.AddCommand(&cobra.Command{Use: "build", Short: "Build it", Run: func(*cobra.Command, []string) {}})
		m, err := Load(topicFS(), Options{Renderer: taggingRenderer{}})
		require.NoError(t, err)
		m.Install(root)

		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetErr(&buf)
		return root, &buf
	}

	t.Run("topic", func(t *testing.T) {
		root, buf := newRoot()
		root.SetArgs([]string{"help", "--", "--dialect"})
		require.NoError(t, root.Execute())
		assert.Equal(t, ".txt:Dialect selection", buf.String())
	})

	t.Run("list", func(t *testing.T) {
		root, buf := newRoot()
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())
		assert.Contains(t, buf.String(), "  references\n")
	})

	t.Run("command", func(t *testing.T) {
		root, buf := newRoot()
		root.SetArgs([]string{"help", "build"})
		require.NoError(t, root.Execute())
		assert.Contains(t, buf.String(), "Build it")
	})

	t.Run("unknown", func(t *testing.T) {
		root, _ := newRoot()
		root.SetArgs([]string{"help", "nothing"})
		err := root.Execute()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "# x", PlainRenderer{}.Render("# x", ".md"))
	assert.Equal(t, "plain", GlamourRenderer{Style: "notty"}.Render("plain", ".txt"))
	assert.Contains(t, GlamourRenderer{Style: "notty"}.Render("# Title", ".md"), "Title")
}
