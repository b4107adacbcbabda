package catalog

import (
	"fmt"
	"time"

	"github.com/rooted/backend/internal/domain"
	"go.uber.org/zap"
)

// Catalog source kinds
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceRemote   = "remote"
)

// NewSource builds the catalog source selected by kind
func NewSource(kind, path, baseURL string, timeout time.Duration, logger *zap.Logger) (domain.CatalogSource, error) {
	switch kind {
	case SourceEmbedded, "":
		return NewEmbeddedSource(), nil
	case SourceFile:
		if path == "" {
			return nil, fmt.Errorf("catalog path is required for source %q", kind)
		}
		return NewFileSource(path), nil
	case SourceRemote:
		if baseURL == "" {
			return nil, fmt.Errorf("catalog base URL is required for source %q", kind)
		}
		return NewClient(baseURL, timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", kind)
	}
}
