// Package dialect decodes per-language source documents into a generic,
// ordered key-value tree. The set of dialects is closed: TOML, YAML and JSON.
package dialect

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/logging"
	"github.com/arthur-debert/dictus/pkg/tree"
)

// Dialect identifies a structured text encoding
type Dialect int

const (
	TOML Dialect = iota
	YAML
	JSON
)

type decodeFunc func(data []byte) (*tree.Map, error)

var decoders = map[Dialect]decodeFunc{
	TOML: decodeTOML,
	YAML: decodeYAML,
	JSON: decodeJSON,
}

var extensions = map[Dialect][]string{
	TOML: {".toml"},
	YAML: {".yaml", ".yml"},
	JSON: {".json"},
}

// All returns every supported dialect
func All() []Dialect {
	return []Dialect{TOML, YAML, JSON}
}

func (d Dialect) String() string {
	switch d {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	default:
		return "unknown"
	}
}

// Extensions returns the file extensions associated with the dialect
func (d Dialect) Extensions() []string {
	return append([]string(nil), extensions[d]...)
}

// Parse maps a dialect name to a Dialect
func Parse(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	}
	return 0, errors.Newf(errors.ErrDialectUnknown, "unknown dialect %q", name).
		WithDetail("dialect", name)
}

// FromExtension picks the dialect for a file based on its extension
func FromExtension(path string) (Dialect, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, d := range All() {
		for _, e := range extensions[d] {
			if e == ext {
				return d, nil
			}
		}
	}
	return 0, errors.Newf(errors.ErrDialectUnknown, "no dialect for extension %q", ext).
		WithDetail("path", path)
}

// Decode converts raw document bytes into an ordered tree. The top level of
// every document must be a table/mapping/object; empty input yields an empty map.
func (d Dialect) Decode(data []byte) (*tree.Map, error) {
	decode, ok := decoders[d]
	if !ok {
		return nil, errors.Newf(errors.ErrDialectUnknown, "unknown dialect %d", int(d))
	}

	log := logging.GetLogger("dialect")
	log.Trace().Str("dialect", d.String()).Int("bytes", len(data)).Msg("Decoding document")

	m, err := decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDialectDecode, "failed to decode %s document", d).
			WithDetail("dialect", d.String())
	}
	return m, nil
}
