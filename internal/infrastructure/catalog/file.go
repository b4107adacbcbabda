package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/rooted/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed farms.yaml
var embeddedCatalog []byte

// FileSource reads the catalog from a YAML file
type FileSource struct {
	path string
}

// NewFileSource creates a source reading path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchFarms reads, decodes and validates the file
func (s *FileSource) FetchFarms(ctx context.Context) ([]domain.Farm, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return DecodeYAML(data)
}

// EmbeddedSource serves the default catalog compiled into the binary
type EmbeddedSource struct{}

// NewEmbeddedSource creates the default catalog source
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// FetchFarms decodes the embedded catalog
func (s *EmbeddedSource) FetchFarms(ctx context.Context) ([]domain.Farm, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DecodeYAML(embeddedCatalog)
}

// DecodeYAML parses a YAML catalog document into validated farms
func DecodeYAML(data []byte) ([]domain.Farm, error) {
	var doc CatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding yaml: %v", domain.ErrInvalidCatalog, err)
	}
	return MapToFarms(doc.Farms)
}
