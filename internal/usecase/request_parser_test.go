package usecase

import (
	"reflect"
	"testing"

	"github.com/rooted/backend/internal/domain"
)

func qty(v float64) *float64 {
	return &v
}

func TestNewRequestParser(t *testing.T) {
	t.Run("falls back to the default vocabulary", func(t *testing.T) {
		p := NewRequestParser(nil, nil)
		if !reflect.DeepEqual(p.Vocabulary(), DefaultVocabulary) {
			t.Errorf("Vocabulary() = %v, want %v", p.Vocabulary(), DefaultVocabulary)
		}
	})

	t.Run("normalizes a custom vocabulary", func(t *testing.T) {
		p := NewRequestParser([]string{" Kale ", "", "Beets"}, nil)
		want := []string{"kale", "beets"}
		if !reflect.DeepEqual(p.Vocabulary(), want) {
			t.Errorf("Vocabulary() = %v, want %v", p.Vocabulary(), want)
		}
	})

	t.Run("vocabulary copy cannot mutate the parser", func(t *testing.T) {
		p := NewRequestParser(nil, nil)
		v := p.Vocabulary()
		v[0] = "durian"
		if p.Vocabulary()[0] != "strawberries" {
			t.Errorf("parser vocabulary was mutated through the returned slice")
		}
	})
}

func TestParse(t *testing.T) {
	p := NewRequestParser(nil, nil)

	testCases := []struct {
		name      string
		message   string
		wantItems []domain.RequestedItem
		wantPrefs []domain.Preference
	}{
		{
			name:      "quantity glued to a preceding word",
			message:   "x2 kg strawberries",
			wantItems: []domain.RequestedItem{{Type: "strawberries", Quantity: qty(2), Unit: domain.UnitKilogram}},
			wantPrefs: []domain.Preference{},
		},
		{
			name:      "quantity attached to unit",
			message:   "2kg strawberries",
			wantItems: []domain.RequestedItem{{Type: "strawberries", Quantity: qty(2), Unit: domain.UnitKilogram}},
			wantPrefs: []domain.Preference{},
		},
		{
			name:    "bare items in message order with organic",
			message: "organic spinach and potatoes",
			wantItems: []domain.RequestedItem{
				{Type: "spinach"},
				{Type: "potatoes"},
			},
			wantPrefs: []domain.Preference{domain.PreferenceOrganic},
		},
		{
			name:      "cheapest with delivery",
			message:   "cheapest tomatoes for delivery",
			wantItems: []domain.RequestedItem{{Type: "tomatoes"}},
			wantPrefs: []domain.Preference{domain.PreferenceCheapest, domain.PreferenceDelivery},
		},
		{
			name:      "empty message",
			message:   "",
			wantItems: []domain.RequestedItem{},
			wantPrefs: []domain.Preference{},
		},
		{
			name:      "term outside the vocabulary is ignored",
			message:   "mangoes",
			wantItems: []domain.RequestedItem{},
			wantPrefs: []domain.Preference{},
		},
		{
			name:      "decimal quantity with kilo",
			message:   "1.5 kilo potatoes please",
			wantItems: []domain.RequestedItem{{Type: "potatoes", Quantity: qty(1.5), Unit: domain.UnitKilogram}},
			wantPrefs: []domain.Preference{},
		},
		{
			name:      "only bare g means grams",
			message:   "250 g herbs",
			wantItems: []domain.RequestedItem{{Type: "herbs", Quantity: qty(250), Unit: domain.UnitGram}},
			wantPrefs: []domain.Preference{},
		},
		{
			name:      "gram normalizes to kg",
			message:   "500 gram carrots",
			wantItems: []domain.RequestedItem{{Type: "carrots", Quantity: qty(500), Unit: domain.UnitKilogram}},
			wantPrefs: []domain.Preference{},
		},
		{
			name:      "singular noun resolves to vocabulary term",
			message:   "3 kilogram strawberry",
			wantItems: []domain.RequestedItem{{Type: "strawberries", Quantity: qty(3), Unit: domain.UnitKilogram}},
			wantPrefs: []domain.Preference{},
		},
		{
			name:    "two quantified items",
			message: "3kg apples, 2 kg pears",
			wantItems: []domain.RequestedItem{
				{Type: "apples", Quantity: qty(3), Unit: domain.UnitKilogram},
				{Type: "pears", Quantity: qty(2), Unit: domain.UnitKilogram},
			},
			wantPrefs: []domain.Preference{},
		},
		{
			name:      "quantified term is not repeated by a bare mention",
			message:   "2 kg strawberries, the best strawberries",
			wantItems: []domain.RequestedItem{{Type: "strawberries", Quantity: qty(2), Unit: domain.UnitKilogram}},
			wantPrefs: []domain.Preference{},
		},
		{
			name:    "quantified item precedes bare mentions",
			message: "onions and 2kg carrots",
			wantItems: []domain.RequestedItem{
				{Type: "carrots", Quantity: qty(2), Unit: domain.UnitKilogram},
				{Type: "onions"},
			},
			wantPrefs: []domain.Preference{},
		},
		{
			name:      "unknown unit leaves a bare item",
			message:   "2 lb carrots",
			wantItems: []domain.RequestedItem{{Type: "carrots"}},
			wantPrefs: []domain.Preference{},
		},
		{
			name:      "noun must be separated from the unit",
			message:   "2kg,carrots",
			wantItems: []domain.RequestedItem{{Type: "carrots"}},
			wantPrefs: []domain.Preference{},
		},
		{
			name:      "single letter noun resolves to first containing term",
			message:   "2 kg a",
			wantItems: []domain.RequestedItem{{Type: "strawberries", Quantity: qty(2), Unit: domain.UnitKilogram}},
			wantPrefs: []domain.Preference{},
		},
		{
			name:      "mixed case message",
			message:   "ORGANIC Carrots",
			wantItems: []domain.RequestedItem{{Type: "carrots"}},
			wantPrefs: []domain.Preference{domain.PreferenceOrganic},
		},
		{
			name:      "preferences reported in canonical order",
			message:   "tomorrow or today, pick up nearby lettuce",
			wantItems: []domain.RequestedItem{{Type: "lettuce"}},
			wantPrefs: []domain.Preference{
				domain.PreferenceClosest,
				domain.PreferencePickup,
				domain.PreferenceToday,
				domain.PreferenceTomorrow,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Parse(tc.message)
			if !reflect.DeepEqual(got.Items, tc.wantItems) {
				t.Errorf("Parse(%q).Items = %+v, want %+v", tc.message, got.Items, tc.wantItems)
			}
			if !reflect.DeepEqual(got.Preferences, tc.wantPrefs) {
				t.Errorf("Parse(%q).Preferences = %v, want %v", tc.message, got.Preferences, tc.wantPrefs)
			}
		})
	}
}

func TestParse_CustomVocabulary(t *testing.T) {
	p := NewRequestParser([]string{"kale"}, nil)

	got := p.Parse("1 kg kale and some carrots")

	want := []domain.RequestedItem{{Type: "kale", Quantity: qty(1), Unit: domain.UnitKilogram}}
	if !reflect.DeepEqual(got.Items, want) {
		t.Errorf("Items = %+v, want %+v", got.Items, want)
	}
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want []token
	}{
		{
			name: "number unit and word",
			text: "2.5kg, tomatoes",
			want: []token{
				{kind: tokenNumber, text: "2.5"},
				{kind: tokenWord, text: "kg"},
				{kind: tokenSymbol, text: ","},
				{kind: tokenWord, text: "tomatoes", spaced: true},
			},
		},
		{
			name: "trailing dot is a symbol",
			text: "buy 1.",
			want: []token{
				{kind: tokenWord, text: "buy"},
				{kind: tokenNumber, text: "1", spaced: true},
				{kind: tokenSymbol, text: "."},
			},
		},
		{
			name: "digits end a word",
			text: "  b12 gård",
			want: []token{
				{kind: tokenWord, text: "b", spaced: true},
				{kind: tokenNumber, text: "12"},
				{kind: tokenWord, text: "gård", spaced: true},
			},
		},
		{
			name: "empty text",
			text: "",
			want: []token{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tokenize(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("tokenize(%q) = %+v, want %+v", tc.text, got, tc.want)
			}
		})
	}
}
