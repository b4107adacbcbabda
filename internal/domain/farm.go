package domain

// ProduceListing represents one farm's offering of one produce type
type ProduceListing struct {
	Type      string  `json:"type"`
	Price     float64 `json:"price"` // currency units per Unit
	Unit      string  `json:"unit"`
	Available bool    `json:"available"`
	Organic   bool    `json:"organic"`
}

// Farm is a static catalog entry. Farms are loaded once and never mutated.
type Farm struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	DistanceKm        float64          `json:"distanceKm"`
	Rating            float64          `json:"rating"`   // 0-5
	EcoScore          float64          `json:"ecoScore"` // 0-10
	DeliveryAvailable bool             `json:"deliveryAvailable"`
	Produce           []ProduceListing `json:"produce"`

	// Display fields used by the map and shop views
	Coordinates [2]float64 `json:"coordinates"` // [lng, lat]
	PickupTimes []string   `json:"pickupTimes,omitempty"`
	Description string     `json:"description,omitempty"`
	Specialties []string   `json:"specialties,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
}

// HasOrganic reports whether any listing of the farm is organic
func (f *Farm) HasOrganic() bool {
	for _, p := range f.Produce {
		if p.Organic {
			return true
		}
	}
	return false
}

// FarmQuery describes a browse request from the shop view
type FarmQuery struct {
	Search string `form:"search" json:"search,omitempty"`
	Filter string `form:"filter" json:"filter,omitempty"` // "all", "organic" or "delivery"
	SortBy string `form:"sort" json:"sort,omitempty"`     // "distance", "rating" or "eco-score"
}

// Browse filters and sort orders accepted by FarmQuery
const (
	FilterAll      = "all"
	FilterOrganic  = "organic"
	FilterDelivery = "delivery"

	SortByDistance = "distance"
	SortByRating   = "rating"
	SortByEcoScore = "eco-score"
)
