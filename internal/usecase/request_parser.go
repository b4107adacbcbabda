package usecase

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/rooted/backend/internal/domain"
	"go.uber.org/zap"
)

// DefaultVocabulary is the produce vocabulary recognised by the assistant
var DefaultVocabulary = []string{
	"strawberries", "potatoes", "spinach", "tomatoes", "carrots", "onions",
	"lettuce", "apples", "pears", "blueberries", "herbs", "microgreens",
}

// unitSynonyms maps every accepted unit spelling to its canonical unit.
// Only the bare "g" means grams.
var unitSynonyms = map[string]domain.Unit{
	"kg":       domain.UnitKilogram,
	"kilo":     domain.UnitKilogram,
	"kilogram": domain.UnitKilogram,
	"gram":     domain.UnitKilogram,
	"g":        domain.UnitGram,
}

// preferenceKeywords lists the substrings that enable each preference,
// in the order preferences are reported
var preferenceKeywords = []struct {
	preference domain.Preference
	keywords   []string
}{
	{domain.PreferenceOrganic, []string{"organic"}},
	{domain.PreferenceCheapest, []string{"cheap", "cheapest"}},
	{domain.PreferenceClosest, []string{"close", "nearby"}},
	{domain.PreferenceDelivery, []string{"delivery"}},
	{domain.PreferencePickup, []string{"pickup", "pick up"}},
	{domain.PreferenceToday, []string{"today"}},
	{domain.PreferenceTomorrow, []string{"tomorrow"}},
}

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenWord
	tokenSymbol
)

// token is one lexical unit of a chat message.
// spaced is true when whitespace separates it from the previous token.
type token struct {
	kind   tokenKind
	text   string
	spaced bool
}

// RequestParser turns free-text chat messages into structured requests
type RequestParser struct {
	vocabulary []string
	logger     *zap.Logger
}

// NewRequestParser creates a parser over the given vocabulary.
// An empty vocabulary falls back to DefaultVocabulary.
func NewRequestParser(vocabulary []string, logger *zap.Logger) *RequestParser {
	vocab := make([]string, 0, len(DefaultVocabulary))
	for _, term := range vocabulary {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			vocab = append(vocab, term)
		}
	}
	if len(vocab) == 0 {
		vocab = append(vocab, DefaultVocabulary...)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RequestParser{
		vocabulary: vocab,
		logger:     logger,
	}
}

// Vocabulary returns a copy of the recognised produce terms
func (p *RequestParser) Vocabulary() []string {
	return append([]string(nil), p.vocabulary...)
}

// Parse extracts requested produce items and preferences from a message.
// It never fails: unrecognised input yields an empty item list.
func (p *RequestParser) Parse(message string) domain.ParsedRequest {
	lower := strings.ToLower(message)

	items := p.quantifiedItems(tokenize(lower))

	// Bare mentions of vocabulary terms not already captured with a quantity,
	// in the order they first appear in the message
	type mention struct {
		term string
		at   int
	}
	var mentions []mention
	for _, term := range p.vocabulary {
		at := strings.Index(lower, term)
		if at >= 0 && !containsItem(items, term) {
			mentions = append(mentions, mention{term: term, at: at})
		}
	}
	slices.SortStableFunc(mentions, func(a, b mention) int {
		return cmp.Compare(a.at, b.at)
	})
	for _, m := range mentions {
		items = append(items, domain.RequestedItem{Type: m.term})
	}

	request := domain.ParsedRequest{
		Items:       items,
		Preferences: extractPreferences(lower),
	}

	p.logger.Debug("parsed chat message",
		zap.String("message", message),
		zap.Int("items", len(request.Items)),
		zap.Any("preferences", request.Preferences),
	)

	return request
}

// quantifiedItems scans for number, unit, whitespace, word sequences
func (p *RequestParser) quantifiedItems(tokens []token) []domain.RequestedItem {
	items := make([]domain.RequestedItem, 0)

	for i := 0; i+2 < len(tokens); i++ {
		number, unit, noun := tokens[i], tokens[i+1], tokens[i+2]
		if number.kind != tokenNumber || unit.kind != tokenWord || noun.kind != tokenWord || !noun.spaced {
			continue
		}

		canonical, ok := unitSynonyms[unit.text]
		if !ok {
			continue
		}

		term, ok := p.resolveTerm(noun.text)
		if !ok {
			continue
		}

		quantity, err := strconv.ParseFloat(number.text, 64)
		if err != nil {
			continue
		}

		if !containsItem(items, term) {
			items = append(items, domain.RequestedItem{
				Type:     term,
				Quantity: &quantity,
				Unit:     canonical,
			})
		}
		i += 2
	}

	return items
}

// resolveTerm finds the first vocabulary term that contains word or is contained by it
func (p *RequestParser) resolveTerm(word string) (string, bool) {
	for _, term := range p.vocabulary {
		if strings.Contains(word, term) || strings.Contains(term, word) {
			return term, true
		}
	}
	return "", false
}

// extractPreferences collects preference flags from a lower-cased message
func extractPreferences(lower string) []domain.Preference {
	prefs := make([]domain.Preference, 0)
	for _, rule := range preferenceKeywords {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				prefs = append(prefs, rule.preference)
				break
			}
		}
	}
	return prefs
}

func containsItem(items []domain.RequestedItem, term string) bool {
	for _, item := range items {
		if item.Type == term {
			return true
		}
	}
	return false
}

// tokenize splits text into number, word and symbol tokens.
// Numbers are digit runs with an optional fractional part ("1.5");
// words are runs of letters and underscores, so "x2" splits into "x" and "2".
func tokenize(text string) []token {
	runes := []rune(text)
	tokens := make([]token, 0, len(runes)/2)
	spaced := false

	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			spaced = true
			i++
			continue

		case isDigit(r):
			start := i
			for i < len(runes) && isDigit(runes[i]) {
				i++
			}
			if i+1 < len(runes) && runes[i] == '.' && isDigit(runes[i+1]) {
				i++
				for i < len(runes) && isDigit(runes[i]) {
					i++
				}
			}
			tokens = append(tokens, token{kind: tokenNumber, text: string(runes[start:i]), spaced: spaced})

		case isWordRune(r):
			start := i
			for i < len(runes) && isWordRune(runes[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenWord, text: string(runes[start:i]), spaced: spaced})

		default:
			tokens = append(tokens, token{kind: tokenSymbol, text: string(r), spaced: spaced})
			i++
		}

		spaced = false
	}

	return tokens
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}
