package dictus

import (
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dictus/pkg/config"
	"github.com/arthur-debert/dictus/pkg/dialect"
	"github.com/arthur-debert/dictus/pkg/logging"
	"github.com/arthur-debert/dictus/pkg/parser"
)

// sourceFlags are the flags of every command that reads sources
type sourceFlags struct {
	in      string
	dialect string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.in, "in", "i", ".", MsgFlagIn)
	cmd.Flags().StringVarP(&s.dialect, "dialect", "d", "", MsgFlagDialect)
	_ = cmd.RegisterFlagCompletionFunc("dialect", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml", "yaml", "json", config.AutoDialect}, cobra.ShellCompDirectiveNoFileComp
	})
}

// overrides maps the flags the user set onto config keys
func overrides(cmd *cobra.Command, keys map[string]string) map[string]interface{} {
	values := make(map[string]interface{})
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		values[key] = f.Value.String()
	}
	return values
}

// project is a loaded configuration with its parsed sources
type project struct {
	config *config.Config
	result *parser.Result
}

// loadProject loads the configuration for src and parses its sources.
// opts are applied after the configured ones.
func (a *app) loadProject(cmd *cobra.Command, src sourceFlags, keys map[string]string, opts ...parser.Option) (*project, error) {
	logger := logging.WithFields(map[string]interface{}{"component": "cli", "in": src.in})
	defer logging.LogOperationStart(logger, "load project")()

	if keys == nil {
		keys = map[string]string{}
	}
	keys["dialect"] = "dialect"

	cfg, err := config.Load(a.fs, config.Options{
		InputDir:   src.in,
		ConfigFile: a.configFile,
		Overrides:  overrides(cmd, keys),
	})
	if err != nil {
		return nil, err
	}

	parserOpts := []parser.Option{parser.WithMinSimilarity(cfg.MinSimilarity)}
	d := dialect.TOML
	extensions := cfg.Extensions
	if cfg.IsAutoDialect() {
		parserOpts = append(parserOpts, parser.WithAutoDialect())
	} else {
		if d, err = cfg.SourceDialect(); err != nil {
			return nil, err
		}
		extensions = extensionsFor(d, cfg.Extensions)
	}
	parserOpts = append(parserOpts, opts...)

	paths, err := parser.Discover(a.fs, src.in, extensions)
	if err != nil {
		return nil, err
	}
	paths = withoutProjectFiles(paths)
	logger.Info().Int("files", len(paths)).Msg("Discovered sources")

	result, err := parser.New(a.fs, d, parserOpts...).Parse(paths)
	if err != nil {
		return nil, err
	}
	return &project{config: cfg, result: result}, nil
}

func withoutProjectFiles(paths []string) []string {
	kept := paths[:0]
	for _, path := range paths {
		if !slices.Contains(config.ProjectFiles, filepath.Base(path)) {
			kept = append(kept, path)
		}
	}
	return kept
}

// extensionsFor drops the extensions that belong to a dialect other than d
func extensionsFor(d dialect.Dialect, extensions []string) []string {
	kept := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if other, err := dialect.FromExtension("x" + ext); err == nil && other != d {
			continue
		}
		kept = append(kept, ext)
	}
	return kept
}
