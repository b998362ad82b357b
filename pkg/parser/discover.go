package parser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/logging"
)

// Discover lists the source files under root whose extension is one of
// extensions, sorted by name. Subdirectories and hidden files are skipped.
// If root is a file it is returned as is.
func Discover(fs afero.Fs, root string, extensions []string) ([]string, error) {
	logger := logging.GetLogger("parser.discover")
	logger.Trace().Str("root", root).Strs("extensions", extensions).Msg("Discovering source files")

	info, err := fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "input path does not exist").
				WithDetail("path", root)
		}
		return nil, errors.Wrap(err, errors.ErrFileRead, "cannot access input path").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileRead, "cannot read input directory").
			WithDetail("path", root)
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !allowed[strings.ToLower(filepath.Ext(name))] {
			logger.Trace().Str("name", name).Msg("Skipping file with unlisted extension")
			continue
		}
		files = append(files, filepath.Join(root, name))
	}

	logger.Debug().Int("count", len(files)).Msg("Found source files")
	return files, nil
}

// LanguageName derives a language identity from a file path: the base name
// without its extension.
func LanguageName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
