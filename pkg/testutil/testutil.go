package testutil

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// NewFS returns an in-memory filesystem holding files, keyed by path
func NewFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	WriteFiles(t, fs, files)
	return fs
}

// WriteFiles writes files into fs, creating parent directories
func WriteFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}

// ReadFile returns the content of path, failing the test if it is missing
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// CaptureLogs sends the global logger to a buffer at level until the test ends
func CaptureLogs(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous, previousLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf).Level(level)
	zerolog.SetGlobalLevel(level)
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(previousLevel)
	})
	return &buf
}
