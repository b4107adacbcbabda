package usecase

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rooted/backend/internal/domain"
	"go.uber.org/zap"
)

// maxSuggestedFarms caps how many farms a single reply recommends
const maxSuggestedFarms = 3

// FarmMatcher selects and ranks catalog farms for a parsed request
type FarmMatcher struct {
	writer *ResponseWriter
	logger *zap.Logger
}

// NewFarmMatcher creates a matcher that renders replies with writer
func NewFarmMatcher(writer *ResponseWriter, logger *zap.Logger) *FarmMatcher {
	if writer == nil {
		writer = NewResponseWriter("")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FarmMatcher{
		writer: writer,
		logger: logger,
	}
}

// Match filters, ranks and selects up to three farms from catalog and renders
// the reply text. The catalog is only read; returned farms point into it.
func (m *FarmMatcher) Match(request domain.ParsedRequest, catalog []domain.Farm) domain.MatchResult {
	if len(request.Items) == 0 {
		return domain.MatchResult{
			Farms:        []*domain.Farm{},
			ResponseText: m.writer.EmptyRequest(),
		}
	}

	farms := m.SelectFarms(request, catalog)
	searchTerms := strings.Join(request.Types(), ", ")

	if len(farms) == 0 {
		return domain.MatchResult{
			Farms:        farms,
			ResponseText: m.writer.NoMatches(request),
			SearchTerms:  searchTerms,
		}
	}

	return domain.MatchResult{
		Farms:        farms,
		ResponseText: m.writer.Matches(request, farms),
		SearchTerms:  searchTerms,
	}
}

// SelectFarms applies the filter, ranking and selection rules without rendering text
func (m *FarmMatcher) SelectFarms(request domain.ParsedRequest, catalog []domain.Farm) []*domain.Farm {
	selected := make([]*domain.Farm, 0)
	if len(request.Items) == 0 {
		return selected
	}

	organicOnly := request.HasPreference(domain.PreferenceOrganic)
	deliveryOnly := request.HasPreference(domain.PreferenceDelivery)

	for i := range catalog {
		farm := &catalog[i]

		if !carriesAnyItem(farm, request.Items) {
			continue
		}
		if organicOnly && !hasOrganicForAnyItem(farm, request.Items) {
			continue
		}
		if deliveryOnly && !farm.DeliveryAvailable {
			continue
		}

		selected = append(selected, farm)
	}

	switch {
	case request.HasPreference(domain.PreferenceCheapest):
		slices.SortStableFunc(selected, func(a, b *domain.Farm) int {
			return cmp.Compare(minAvailablePrice(a), minAvailablePrice(b))
		})
	case request.HasPreference(domain.PreferenceClosest):
		slices.SortStableFunc(selected, func(a, b *domain.Farm) int {
			return cmp.Compare(a.DistanceKm, b.DistanceKm)
		})
	default:
		slices.SortStableFunc(selected, func(a, b *domain.Farm) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	}

	if len(selected) > maxSuggestedFarms {
		selected = selected[:maxSuggestedFarms]
	}

	m.logger.Debug("matched farms",
		zap.Strings("items", request.Types()),
		zap.Any("preferences", request.Preferences),
		zap.Int("selected", len(selected)),
	)

	return selected
}

// typesMatch compares a listing type and a requested type by case-insensitive
// containment in either direction
func typesMatch(listingType, requestedType string) bool {
	listing := strings.ToLower(strings.TrimSpace(listingType))
	requested := strings.ToLower(strings.TrimSpace(requestedType))
	if listing == "" || requested == "" {
		return false
	}
	return strings.Contains(listing, requested) || strings.Contains(requested, listing)
}

// findListing returns the first available listing matching itemType, or nil
func findListing(farm *domain.Farm, itemType string) *domain.ProduceListing {
	for i := range farm.Produce {
		listing := &farm.Produce[i]
		if listing.Available && typesMatch(listing.Type, itemType) {
			return listing
		}
	}
	return nil
}

func carriesAnyItem(farm *domain.Farm, items []domain.RequestedItem) bool {
	for _, item := range items {
		if findListing(farm, item.Type) != nil {
			return true
		}
	}
	return false
}

// hasOrganicForAnyItem reports whether at least one requested item has an
// available organic listing at the farm
func hasOrganicForAnyItem(farm *domain.Farm, items []domain.RequestedItem) bool {
	for _, item := range items {
		if hasOrganicListing(farm, item.Type) {
			return true
		}
	}
	return false
}

func hasOrganicListing(farm *domain.Farm, itemType string) bool {
	for _, listing := range farm.Produce {
		if listing.Available && listing.Organic && typesMatch(listing.Type, itemType) {
			return true
		}
	}
	return false
}

// minAvailablePrice returns the lowest price among the farm's available listings
func minAvailablePrice(farm *domain.Farm) float64 {
	lowest := 0.0
	found := false
	for _, listing := range farm.Produce {
		if !listing.Available {
			continue
		}
		if !found || listing.Price < lowest {
			lowest = listing.Price
			found = true
		}
	}
	return lowest
}
