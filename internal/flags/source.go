package flags

import (
	"context"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// Source loads the authoritative set of worker flags.
type Source interface {
	LoadAll(ctx context.Context) (map[string]string, error)
}

// StaticSource serves a fixed set of flags.
type StaticSource map[string]string

// LoadAll returns a copy of the static flags.
func (s StaticSource) LoadAll(_ context.Context) (map[string]string, error) {
	return maps.Clone(map[string]string(s)), nil
}

// FileSource reads flags from a YAML file of name: value pairs.
// The file is re-read on every load so operators can edit it live.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// LoadAll reads and parses the flag file.
func (s *FileSource) LoadAll(_ context.Context) (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading flag file %s: %w", s.path, err)
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing flag file %s: %w", s.path, err)
	}
	return values, nil
}
