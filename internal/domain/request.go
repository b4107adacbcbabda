package domain

// Unit is the canonical weight unit of a requested item
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitGram     Unit = "g"
)

// Preference is a shopping preference extracted from a chat message
type Preference string

const (
	PreferenceOrganic  Preference = "organic"
	PreferenceCheapest Preference = "cheapest"
	PreferenceClosest  Preference = "closest"
	PreferenceDelivery Preference = "delivery"
	PreferencePickup   Preference = "pickup"
	PreferenceToday    Preference = "today"
	PreferenceTomorrow Preference = "tomorrow"
)

// RequestedItem is one produce type the user asked for.
// Quantity and Unit are only set when the message stated an amount.
type RequestedItem struct {
	Type     string   `json:"type"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     Unit     `json:"unit,omitempty"`
}

// Weight returns the item's contribution to the requested weight total.
// Items without a quantity count as one unit.
func (i RequestedItem) Weight() float64 {
	if i.Quantity == nil {
		return 1
	}
	return *i.Quantity
}

// ParsedRequest is the structured form of one chat message
type ParsedRequest struct {
	Items       []RequestedItem `json:"items"`
	Preferences []Preference    `json:"preferences"`
}

// HasPreference reports whether p was requested
func (r ParsedRequest) HasPreference(p Preference) bool {
	for _, pref := range r.Preferences {
		if pref == p {
			return true
		}
	}
	return false
}

// Types returns the distinct requested produce types in request order
func (r ParsedRequest) Types() []string {
	types := make([]string, 0, len(r.Items))
	seen := make(map[string]bool, len(r.Items))
	for _, item := range r.Items {
		if seen[item.Type] {
			continue
		}
		seen[item.Type] = true
		types = append(types, item.Type)
	}
	return types
}

// MatchResult is the outcome of matching a ParsedRequest against the catalog.
// Farms point into the catalog slice and must not be modified.
type MatchResult struct {
	Farms        []*Farm `json:"farms"`
	ResponseText string  `json:"responseText"`
	SearchTerms  string  `json:"searchTerms,omitempty"`
}

// ReplyOutcome classifies which response shape the assistant produced
type ReplyOutcome string

const (
	OutcomeEmptyRequest ReplyOutcome = "empty_request"
	OutcomeNoMatch      ReplyOutcome = "no_match"
	OutcomeMatched      ReplyOutcome = "matched"
)

// AssistantReply is what the chat UI receives for one user turn
type AssistantReply struct {
	Text           string        `json:"text"`
	SuggestedFarms []string      `json:"suggestedFarms"`
	Farms          []*Farm       `json:"farms"`
	SearchQuery    string        `json:"searchQuery,omitempty"`
	Parsed         ParsedRequest `json:"parsed"`
	Outcome        ReplyOutcome  `json:"outcome"`
	Sequence       int64         `json:"sequence,omitempty"`
	Source         string        `json:"source"` // "Assistant" or "Cache"
}

// ChatRequest represents a chat message sent to the assistant.
// Sequence is echoed back so callers can drop replies that arrive late.
type ChatRequest struct {
	Message  string `json:"message"`
	Sequence int64  `json:"sequence,omitempty"`
}
