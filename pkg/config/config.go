package config

import (
	"strings"

	"github.com/arthur-debert/dictus/pkg/dialect"
	"github.com/arthur-debert/dictus/pkg/errors"
)

// AutoDialect selects each source file's dialect from its extension
const AutoDialect = "auto"

// Config holds the settings for one run
type Config struct {
	Dialect       string   `koanf:"dialect"`
	Extensions    []string `koanf:"extensions"`
	MinSimilarity float64  `koanf:"min_similarity"`
	SiteName      string   `koanf:"site_name"`
	OutputDir     string   `koanf:"output_dir"`
	TemplateDir   string   `koanf:"template_dir"`
}

// Validate checks values and normalises extensions to lowercase with a
// leading dot.
func (c *Config) Validate() error {
	if c.MinSimilarity <= 0 || c.MinSimilarity > 1 {
		return errors.Newf(errors.ErrConfigValid, "min_similarity must be in (0, 1], got %v", c.MinSimilarity).
			WithDetail("min_similarity", c.MinSimilarity)
	}

	if !c.IsAutoDialect() {
		if _, err := dialect.Parse(c.Dialect); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid dialect %q", c.Dialect)
		}
	}

	if len(c.Extensions) == 0 {
		return errors.New(errors.ErrConfigValid, "extensions must not be empty")
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}

	if c.OutputDir == "" {
		return errors.New(errors.ErrConfigValid, "output_dir must not be empty")
	}
	return nil
}

// IsAutoDialect reports whether dialects are chosen per file
func (c *Config) IsAutoDialect() bool {
	return strings.EqualFold(c.Dialect, AutoDialect)
}

// SourceDialect returns the configured dialect. It is meaningless when
// IsAutoDialect is true.
func (c *Config) SourceDialect() (dialect.Dialect, error) {
	return dialect.Parse(c.Dialect)
}
