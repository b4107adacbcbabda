package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rooted/backend/internal/domain"
)

// DefaultCurrency is the price label used in replies
const DefaultCurrency = "SEK"

// FallbackReply is shown when anything unexpected goes wrong
const FallbackReply = "Sorry, I encountered an error. Please try again!"

const (
	emptyRequestReply = "I'd love to help you find fresh produce! Try telling me what you need, like '2kg strawberries' or 'organic spinach and potatoes'."
	closingLine       = "Click on a farm pin on the map to see more details, or tell me which farm interests you most!"
)

// Eco-impact estimate factors, kg CO2 per km and per requested unit of weight
const (
	ecoDistanceFactor = 0.1
	ecoWeightFactor   = 0.5
)

// ResponseWriter renders assistant reply text
type ResponseWriter struct {
	currency string
}

// NewResponseWriter creates a writer labelling prices with currency (SEK when empty)
func NewResponseWriter(currency string) *ResponseWriter {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &ResponseWriter{currency: currency}
}

// EmptyRequest is the prompt shown when no produce was recognised
func (w *ResponseWriter) EmptyRequest() string {
	return emptyRequestReply
}

// NoMatches names the requested items when no farm can supply them
func (w *ResponseWriter) NoMatches(request domain.ParsedRequest) string {
	return fmt.Sprintf(
		"I couldn't find any farms with %s available right now. Try searching for other produce or check back later!",
		strings.Join(request.Types(), " and "),
	)
}

// Matches renders one block per farm followed by a closing invitation
func (w *ResponseWriter) Matches(request domain.ParsedRequest, farms []*domain.Farm) string {
	var b strings.Builder

	plural := ""
	if len(farms) > 1 {
		plural = "s"
	}
	fmt.Fprintf(&b, "Great! I found %d farm%s with your requested items:\n\n", len(farms), plural)

	for _, farm := range farms {
		fmt.Fprintf(&b, "🌱 **%s** (%s km)\n", farm.Name, formatNumber(farm.DistanceKm))

		for _, item := range request.Items {
			listing := findListing(farm, item.Type)
			if listing == nil {
				continue
			}
			b.WriteString("   • " + w.ListingLine(listing) + "\n")
		}

		fmt.Fprintf(&b, "   • Eco-impact: %skg CO₂ saved vs supermarket\n",
			formatNumber(EcoImpact(farm.DistanceKm, request.Items)))
		fmt.Fprintf(&b, "   • Rating: %s⭐ | Eco Score: %s/10\n\n",
			formatNumber(farm.Rating), formatNumber(farm.EcoScore))
	}

	b.WriteString(closingLine)
	return b.String()
}

// ListingLine formats a listing as "Type: price CUR/unit (Organic)"
func (w *ResponseWriter) ListingLine(listing *domain.ProduceListing) string {
	line := fmt.Sprintf("%s: %s %s/%s", listing.Type, formatNumber(listing.Price), w.currency, listing.Unit)
	if listing.Organic {
		line += " (Organic)"
	}
	return line
}

// EcoImpact estimates kg of CO2 saved versus a supermarket purchase, rounded to
// two decimals. Display only; it plays no part in filtering or ranking.
func EcoImpact(distanceKm float64, items []domain.RequestedItem) float64 {
	totalWeight := 0.0
	for _, item := range items {
		totalWeight += item.Weight()
	}
	return math.Round((distanceKm*ecoDistanceFactor+totalWeight*ecoWeightFactor)*100) / 100
}

// formatNumber prints the shortest decimal form (45, 4.5, 1.25)
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
