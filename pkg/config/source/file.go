package source

import (
	"context"
	"fmt"
	"os"

	"meridian-hq/meridian/pkg/config"
)

// Source is the fetcher contract config.Manager consumes; implementations
// here plug straight into NewManagerFromSource.
type Source = config.Source

var (
	_ Source = (*FileSource)(nil)
	_ Source = (*GitSource)(nil)
)

// LoadConfig fetches from a source and parses the result.
func LoadConfig(ctx context.Context, src Source) (*config.Config, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching configuration: %w", err)
	}
	return config.Parse(data, src.Format())
}

// FileSource reads configuration from a local file.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads the file.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", s.path, err)
	}
	return data, nil
}

// Format selects the encoding from the file extension.
func (s *FileSource) Format() config.Format {
	return config.FormatForPath(s.path)
}
