package catalog

import (
	"context"
	"fmt"

	"github.com/rooted/backend/internal/domain"
	"github.com/rooted/backend/internal/infrastructure/metrics"
)

// Store is the in-memory, read-only farm catalog.
// It is safe for concurrent use because nothing mutates it after construction.
type Store struct {
	farms []domain.Farm
	index map[string]int
}

// NewStore creates a store over farms. The slice must not be modified afterwards.
func NewStore(farms []domain.Farm) *Store {
	index := make(map[string]int, len(farms))
	for i, farm := range farms {
		index[farm.ID] = i
	}
	metrics.CatalogFarms.Set(float64(len(farms)))
	return &Store{farms: farms, index: index}
}

// Load fetches the catalog from source once and wraps it in a Store
func Load(ctx context.Context, source domain.CatalogSource) (*Store, error) {
	farms, err := source.FetchFarms(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return NewStore(farms), nil
}

// List returns the catalog in authored order. Callers must treat it as read-only.
func (s *Store) List(ctx context.Context) ([]domain.Farm, error) {
	return s.farms, nil
}

// GetByID returns the farm with the given ID
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Farm, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, domain.ErrFarmNotFound
	}
	return &s.farms[i], nil
}

// Size returns the number of farms in the catalog
func (s *Store) Size() int {
	return len(s.farms)
}
