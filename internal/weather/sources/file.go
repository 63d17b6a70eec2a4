package sources

import (
	"context"
	"os"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// FileSource reads the weather document from the local filesystem.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return s.path
}

func (s *FileSource) Load(ctx context.Context) (*weather.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return weather.ParseDocument(f)
}
