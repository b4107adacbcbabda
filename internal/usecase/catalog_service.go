package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rooted/backend/internal/domain"
)

// CatalogService serves the shop view: search, filter and sort over farms
type CatalogService struct {
	catalog domain.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog domain.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// ListFarms returns catalog farms matching the query, sorted as requested
func (s *CatalogService) ListFarms(ctx context.Context, query domain.FarmQuery) ([]*domain.Farm, error) {
	if err := validateFarmQuery(&query); err != nil {
		return nil, err
	}

	farms, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	result := make([]*domain.Farm, 0, len(farms))

	for i := range farms {
		farm := &farms[i]
		if !matchesSearch(farm, search) {
			continue
		}
		switch query.Filter {
		case domain.FilterOrganic:
			if !farm.HasOrganic() {
				continue
			}
		case domain.FilterDelivery:
			if !farm.DeliveryAvailable {
				continue
			}
		}
		result = append(result, farm)
	}

	switch query.SortBy {
	case domain.SortByRating:
		slices.SortStableFunc(result, func(a, b *domain.Farm) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case domain.SortByEcoScore:
		slices.SortStableFunc(result, func(a, b *domain.Farm) int {
			return cmp.Compare(b.EcoScore, a.EcoScore)
		})
	default:
		slices.SortStableFunc(result, func(a, b *domain.Farm) int {
			return cmp.Compare(a.DistanceKm, b.DistanceKm)
		})
	}

	return result, nil
}

// GetFarm returns a single farm by ID
func (s *CatalogService) GetFarm(ctx context.Context, id string) (*domain.Farm, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.catalog.GetByID(ctx, id)
}

// validateFarmQuery fills defaults and rejects unknown filters and sort orders
func validateFarmQuery(query *domain.FarmQuery) error {
	query.Filter = strings.ToLower(strings.TrimSpace(query.Filter))
	query.SortBy = strings.ToLower(strings.TrimSpace(query.SortBy))

	switch query.Filter {
	case "":
		query.Filter = domain.FilterAll
	case domain.FilterAll, domain.FilterOrganic, domain.FilterDelivery:
	default:
		return fmt.Errorf("%w: unknown filter %q", domain.ErrInvalidRequest, query.Filter)
	}

	switch query.SortBy {
	case "":
		query.SortBy = domain.SortByDistance
	case domain.SortByDistance, domain.SortByRating, domain.SortByEcoScore:
	default:
		return fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidRequest, query.SortBy)
	}

	return nil
}

// matchesSearch checks the farm name and produce types for a lower-cased search term
func matchesSearch(farm *domain.Farm, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(farm.Name), search) {
		return true
	}
	for _, listing := range farm.Produce {
		if strings.Contains(strings.ToLower(listing.Type), search) {
			return true
		}
	}
	return false
}
