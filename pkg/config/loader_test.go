package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dictus/pkg/dialect"
	"github.com/arthur-debert/dictus/pkg/errors"
)

func TestDefaults(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)

	assert.Equal(t, "toml", cfg.Dialect)
	assert.Equal(t, []string{".toml", ".yaml", ".yml", ".json"}, cfg.Extensions)
	assert.Equal(t, 0.6, cfg.MinSimilarity)
	assert.Equal(t, "Dictionary", cfg.SiteName)
	assert.Equal(t, "build", cfg.OutputDir)
	assert.Equal(t, "", cfg.TemplateDir)

	d, err := cfg.SourceDialect()
	require.NoError(t, err)
	assert.Equal(t, dialect.TOML, d)
}

func TestLoadProjectFile(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/src/dictus.toml", []byte(`
site_name = "Conlangs"
min_similarity = 0.8
`), 0644))

		cfg, err := Load(fs, Options{InputDir: "/src"})
		require.NoError(t, err)
		assert.Equal(t, "Conlangs", cfg.SiteName)
		assert.Equal(t, 0.8, cfg.MinSimilarity)
		assert.Equal(t, "build", cfg.OutputDir)
	})

	t.Run("yaml", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/src/dictus.yaml", []byte("dialect: auto\nextensions: [yaml, .JSON]\n"), 0644))

		cfg, err := Load(fs, Options{InputDir: "/src"})
		require.NoError(t, err)
		assert.True(t, cfg.IsAutoDialect())
		assert.Equal(t, []string{".yaml", ".json"}, cfg.Extensions)
	})

	t.Run("input is a file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/src/dictus.toml", []byte(`site_name = "Mine"`), 0644))
		require.NoError(t, afero.WriteFile(fs, "/src/english.toml", []byte(""), 0644))

		cfg, err := Load(fs, Options{InputDir: "/src/english.toml"})
		require.NoError(t, err)
		assert.Equal(t, "Mine", cfg.SiteName)
	})

	t.Run("invalid file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/src/dictus.toml", []byte("site_name = "), 0644))

		_, err := Load(fs, Options{InputDir: "/src"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`output_dir = "site"`), 0644))

	cfg, err := Load(afero.NewMemMapFs(), Options{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "site", cfg.OutputDir)

	_, err = Load(afero.NewMemMapFs(), Options{ConfigFile: filepath.Join(t.TempDir(), "missing.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadPrecedence(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/dictus.toml", []byte(`
site_name = "From file"
output_dir = "file-out"
template_dir = "file-templates"
`), 0644))

	t.Setenv("DICTUS_SITE_NAME", "From env")
	t.Setenv("DICTUS_OUTPUT_DIR", "env-out")

	cfg, err := Load(fs, Options{
		InputDir:  "/src",
		Overrides: map[string]interface{}{"output_dir": "flag-out"},
	})
	require.NoError(t, err)

	assert.Equal(t, "file-templates", cfg.TemplateDir)
	assert.Equal(t, "From env", cfg.SiteName)
	assert.Equal(t, "flag-out", cfg.OutputDir)
}

func TestLoadEnvList(t *testing.T) {
	t.Setenv("DICTUS_EXTENSIONS", ".toml,.json")

	cfg, err := Load(afero.NewMemMapFs(), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{".toml", ".json"}, cfg.Extensions)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Dialect:       "toml",
			Extensions:    []string{".toml"},
			MinSimilarity: 0.6,
			OutputDir:     "build",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero similarity", func(c *Config) { c.MinSimilarity = 0 }},
		{"similarity above one", func(c *Config) { c.MinSimilarity = 1.5 }},
		{"unknown dialect", func(c *Config) { c.Dialect = "ini" }},
		{"no extensions", func(c *Config) { c.Extensions = nil }},
		{"no output dir", func(c *Config) { c.OutputDir = "" }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		})
	}
}
