package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rooted/backend/internal/domain"
)

// FarmRecord is a farm as authored in catalog files and served by the
// catalog service. Distance keeps its display form, e.g. "2.3 km".
type FarmRecord struct {
	ID                string          `json:"id" yaml:"id"`
	Name              string          `json:"name" yaml:"name"`
	Coordinates       []float64       `json:"coordinates" yaml:"coordinates"`
	Distance          string          `json:"distance" yaml:"distance"`
	Rating            float64         `json:"rating" yaml:"rating"`
	EcoScore          float64         `json:"ecoScore" yaml:"ecoScore"`
	DeliveryAvailable bool            `json:"deliveryAvailable" yaml:"deliveryAvailable"`
	PickupTimes       []string        `json:"pickupTimes" yaml:"pickupTimes"`
	ImageURL          string          `json:"imageUrl" yaml:"imageUrl"`
	Description       string          `json:"description" yaml:"description"`
	Specialties       []string        `json:"specialties" yaml:"specialties"`
	Produce           []ProduceRecord `json:"produce" yaml:"produce"`
}

// ProduceRecord is one produce listing as authored
type ProduceRecord struct {
	Type      string  `json:"type" yaml:"type"`
	Price     float64 `json:"price" yaml:"price"`
	Unit      string  `json:"unit" yaml:"unit"`
	Available bool    `json:"available" yaml:"available"`
	Organic   bool    `json:"organic" yaml:"organic"`
}

// CatalogDocument is the top-level shape of catalog files and service responses
type CatalogDocument struct {
	Farms []FarmRecord `json:"farms" yaml:"farms"`
	Total int          `json:"total,omitempty" yaml:"total,omitempty"`
}

// MapToFarm converts an authored record to the domain Farm, validating it
func MapToFarm(record FarmRecord) (domain.Farm, error) {
	distance, err := ParseDistanceKm(record.Distance)
	if err != nil {
		return domain.Farm{}, fmt.Errorf("%w: farm %q: %v", domain.ErrInvalidCatalog, record.ID, err)
	}

	farm := domain.Farm{
		ID:                strings.TrimSpace(record.ID),
		Name:              strings.TrimSpace(record.Name),
		DistanceKm:        distance,
		Rating:            record.Rating,
		EcoScore:          record.EcoScore,
		DeliveryAvailable: record.DeliveryAvailable,
		Produce:           make([]domain.ProduceListing, 0, len(record.Produce)),
		PickupTimes:       record.PickupTimes,
		Description:       record.Description,
		Specialties:       record.Specialties,
		ImageURL:          record.ImageURL,
	}

	switch len(record.Coordinates) {
	case 0:
	case 2:
		farm.Coordinates = [2]float64{record.Coordinates[0], record.Coordinates[1]}
	default:
		return domain.Farm{}, fmt.Errorf("%w: farm %q: coordinates need [lng, lat]", domain.ErrInvalidCatalog, record.ID)
	}

	for _, p := range record.Produce {
		farm.Produce = append(farm.Produce, domain.ProduceListing{
			Type:      strings.TrimSpace(p.Type),
			Price:     p.Price,
			Unit:      strings.TrimSpace(p.Unit),
			Available: p.Available,
			Organic:   p.Organic,
		})
	}

	if err := ValidateFarm(farm); err != nil {
		return domain.Farm{}, err
	}

	return farm, nil
}

// MapToFarms converts a whole document, rejecting duplicate IDs
func MapToFarms(records []FarmRecord) ([]domain.Farm, error) {
	farms := make([]domain.Farm, 0, len(records))
	seen := make(map[string]bool, len(records))
	var errs []error

	for _, record := range records {
		farm, err := MapToFarm(record)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[farm.ID] {
			errs = append(errs, fmt.Errorf("%w: duplicate farm id %q", domain.ErrInvalidCatalog, farm.ID))
			continue
		}
		seen[farm.ID] = true
		farms = append(farms, farm)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return farms, nil
}

// ValidateFarm checks the shape rules every catalog entry must satisfy
func ValidateFarm(farm domain.Farm) error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: farm %q: %s", domain.ErrInvalidCatalog, farm.ID, fmt.Sprintf(format, args...))
	}

	if farm.ID == "" {
		return invalid("id is required")
	}
	if farm.Name == "" {
		return invalid("name is required")
	}
	if farm.DistanceKm < 0 {
		return invalid("distance must not be negative, got %v", farm.DistanceKm)
	}
	if farm.Rating < 0 || farm.Rating > 5 {
		return invalid("rating must be between 0 and 5, got %v", farm.Rating)
	}
	if farm.EcoScore < 0 || farm.EcoScore > 10 {
		return invalid("eco score must be between 0 and 10, got %v", farm.EcoScore)
	}

	for i, p := range farm.Produce {
		if p.Type == "" {
			return invalid("produce[%d]: type is required", i)
		}
		if p.Unit == "" {
			return invalid("produce[%d] %s: unit is required", i, p.Type)
		}
		if p.Price <= 0 {
			return invalid("produce[%d] %s: price must be positive, got %v", i, p.Type, p.Price)
		}
	}

	return nil
}

// ParseDistanceKm reads distances such as "2.3 km", "12km away" or "800 m"
func ParseDistanceKm(distance string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(distance))
	if s == "" {
		return 0, fmt.Errorf("distance is required")
	}

	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("distance %q does not start with a number", distance)
	}

	value, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, fmt.Errorf("distance %q: %w", distance, err)
	}

	unit := strings.Fields(strings.TrimSpace(s[end:]))
	if len(unit) > 0 && unit[0] == "m" {
		value /= 1000
	}

	return value, nil
}
