package config

import (
	_ "embed"
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes environment overrides, e.g. DICTUS_MIN_SIMILARITY
const EnvPrefix = "DICTUS_"

// ProjectFiles are looked up in the input directory, first match wins
var ProjectFiles = []string{"dictus.toml", "dictus.yaml", "dictus.yml"}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Options selects the optional layers of Load
type Options struct {
	// InputDir is searched for a project file. A file path uses its directory.
	InputDir string
	// ConfigFile is an explicit config file on the OS filesystem
	ConfigFile string
	// Overrides are flag values keyed like the config file, e.g. "site_name"
	Overrides map[string]interface{}
}

// Defaults returns the embedded defaults
func Defaults() (*Config, error) {
	return Load(afero.NewMemMapFs(), Options{})
}

// Load builds the configuration from every layer
func Load(fs afero.Fs, opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Project file next to the sources
	if opts.InputDir != "" {
		path, data, err := findProjectFile(fs, opts.InputDir)
		if err != nil {
			return nil, err
		}
		if path != "" {
			if err := k.Load(&rawBytesProvider{bytes: data}, parserFor(path)); err != nil {
				return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to parse project config").
					WithDetail("path", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded project config")
		}
	}

	// 3. Explicit config file
	if opts.ConfigFile != "" {
		if err := k.Load(file.Provider(opts.ConfigFile), parserFor(opts.ConfigFile)); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load config file").
				WithDetail("path", opts.ConfigFile)
		}
		logger.Debug().Str("path", opts.ConfigFile).Msg("Loaded config file")
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 5. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to decode configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Trace().Interface("config", cfg).Msg("Configuration loaded")
	return &cfg, nil
}

func findProjectFile(fs afero.Fs, input string) (string, []byte, error) {
	dir := input
	if info, err := fs.Stat(input); err == nil && !info.IsDir() {
		dir = filepath.Dir(input)
	}

	for _, name := range ProjectFiles {
		path := filepath.Join(dir, name)
		exists, err := afero.Exists(fs, path)
		if err != nil || !exists {
			continue
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return "", nil, errors.Wrap(err, errors.ErrFileRead, "failed to read project config").
				WithDetail("path", path)
		}
		return path, data, nil
	}
	return "", nil, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}
