package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/listmerge/internal/models"
)

// FileListSource reads a lists payload (JSON, or YAML by extension) from disk on every load.
type FileListSource struct {
	path string
}

// NewFileListSource creates a source for the payload file at path.
func NewFileListSource(path string) *FileListSource {
	return &FileListSource{path: path}
}

func (s *FileListSource) Name() string { return s.path }

// Load reads, decodes and partitions the payload file.
func (s *FileListSource) Load(ctx context.Context) ([]models.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := ReadPayloadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	return models.Partition(raw), nil
}
