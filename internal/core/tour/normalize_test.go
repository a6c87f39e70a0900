// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package tour_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soultanzania/safari-api/internal/core/tour"
)

/*
TestStringList verifies order preservation, blank dropping, and duplicate
retention of the list coercer.
*/
func TestStringList(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"drops_blanks_keeps_duplicates", []any{"Arusha", "", nil, "Serengeti", "Serengeti"}, []string{"Arusha", "Serengeti", "Serengeti"}},
		{"single_string", "Ngorongoro", []string{"Ngorongoro"}},
		{"trims_entries", []any{"  Tarangire  ", "\tManyara"}, []string{"Tarangire", "Manyara"}},
		{"absent", nil, []string{}},
		{"wrong_type", 42, []string{}},
		{"empty_string", "", []string{}},
		{"stringifies_numbers", []any{float64(3), "Zanzibar"}, []string{"3", "Zanzibar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tour.StringList(tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestFloatOrNil verifies numeric coercion across the input shapes the admin
form has historically produced.
*/
func TestFloatOrNil(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  *float64
	}{
		{"float", 12.5, ptr(12.5)},
		{"numeric_string", "1200", ptr(1200.0)},
		{"padded_string", " 99.9 ", ptr(99.9)},
		{"empty_string", "", nil},
		{"absent", nil, nil},
		{"garbage", "expensive", nil},
		{"bool", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tour.FloatOrNil(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.InDelta(t, *tt.want, *got, 0.0001)
			}
		})
	}
}

/*
TestPositiveInt verifies defaulting of missing, non-numeric, and
non-positive values.
*/
func TestPositiveInt(t *testing.T) {
	assert.Equal(t, 5, tour.PositiveInt(float64(5), 7))
	assert.Equal(t, 5, tour.PositiveInt("5", 7))
	assert.Equal(t, 7, tour.PositiveInt(nil, 7))
	assert.Equal(t, 7, tour.PositiveInt(0, 7))
	assert.Equal(t, 7, tour.PositiveInt(-3, 7))
	assert.Equal(t, 7, tour.PositiveInt("many", 7))
}

/*
TestStringOr verifies trimming and defaulting of scalar values.
*/
func TestStringOr(t *testing.T) {
	assert.Equal(t, "Safari", tour.StringOr(nil, "Safari"))
	assert.Equal(t, "Safari", tour.StringOr("   ", "Safari"))
	assert.Equal(t, "Walking", tour.StringOr("  Walking ", "Safari"))
	assert.Equal(t, "7", tour.StringOr(float64(7), ""))
	assert.Equal(t, "7.5", tour.StringOr(7.5, ""))
	// Compound values never leak their encoded form into a text field
	assert.Equal(t, "Safari", tour.StringOr(map[string]any{"a": 1}, "Safari"))
}

/*
TestParsers_DefaultTotality checks that every structured-field parser maps
absent, empty, and wrong-typed input to its full documented default with no
nil leaves.
*/
func TestParsers_DefaultTotality(t *testing.T) {
	malformed := []any{nil, "", float64(42), true, []any{}}

	for _, input := range malformed {
		itinerary := tour.ParseItinerary(input)
		require.NotNil(t, itinerary)
		assert.Empty(t, itinerary)

		pricing := tour.ParsePricing(input)
		assert.Zero(t, pricing.BasePrice)
		require.NotNil(t, pricing.SeasonalPricing)
		require.NotNil(t, pricing.GroupDiscounts)
		assert.Empty(t, pricing.SeasonalPricing)
		assert.Empty(t, pricing.GroupDiscounts)

		accommodation := tour.ParseAccommodationDetails(input)
		assert.Empty(t, accommodation.Note)
		require.NotNil(t, accommodation.Inclusions)

		transport := tour.ParseTransportation(input)
		require.NotNil(t, transport.Activities)
		assert.Empty(t, transport.Vehicle)
		assert.Empty(t, transport.Transfer)

		inclusions := tour.ParseInclusions(input)
		require.NotNil(t, inclusions.Included)
		require.NotNil(t, inclusions.Excluded)

		gettingThere := tour.ParseGettingThere(input)
		assert.Empty(t, gettingThere.Description)
		require.NotNil(t, gettingThere.Details)

		policies := tour.ParsePolicies(input)
		assert.Empty(t, policies.Cancellation)
		assert.Empty(t, policies.HealthSafety)
		assert.Empty(t, policies.Insurance)
	}
}

/*
TestParsers_FreshDefaults ensures parsers hand out independently-owned
defaults: mutating one call's result must not leak into the next.
*/
func TestParsers_FreshDefaults(t *testing.T) {
	first := tour.ParseInclusions(nil)
	first.Included = append(first.Included, "mutated")

	second := tour.ParseInclusions(nil)
	assert.Empty(t, second.Included)
}

/*
TestParseItinerary covers day-number defaulting and meal flag coercion.
*/
func TestParseItinerary(t *testing.T) {
	input := []any{
		map[string]any{
			"title": "Arrival in Arusha",
			"meals": map[string]any{"dinner": true},
		},
		"not an object",
		map[string]any{
			"day":           float64(5),
			"title":         "Serengeti Crossing",
			"accommodation": "Tented Camp",
			"meals":         map[string]any{"breakfast": true, "lunch": "1", "dinner": false},
		},
		map[string]any{
			"day":   float64(-2),
			"title": "Crater Descent",
		},
	}

	days := tour.ParseItinerary(input)
	require.Len(t, days, 3)

	// Missing day number falls back to 1-based position
	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, "Arrival in Arusha", days[0].Title)
	assert.True(t, days[0].Meals.Dinner)
	assert.False(t, days[0].Meals.Breakfast)

	assert.Equal(t, 5, days[1].Day)
	assert.Equal(t, "Tented Camp", days[1].Accommodation)
	assert.True(t, days[1].Meals.Lunch)

	// Invalid day number also falls back to position
	assert.Equal(t, 3, days[2].Day)
}

/*
TestParsePricing covers entry dropping rules and month defaults.
*/
func TestParsePricing(t *testing.T) {
	input := map[string]any{
		"base_price": "2400",
		"seasonal_pricing": []any{
			map[string]any{"season": "High Season", "price": "2800"},
			map[string]any{"season": "", "price": "0"},
			map[string]any{"season": "Green Season", "price": "2100", "start_month": "April", "end_month": "May"},
		},
		"group_discounts": []any{
			map[string]any{"min_people": float64(4), "discount": float64(10)},
			map[string]any{"min_people": float64(0), "discount": float64(50)},
			map[string]any{"min_people": "six", "discount": float64(15)},
		},
	}

	pricing := tour.ParsePricing(input)
	assert.InDelta(t, 2400, pricing.BasePrice, 0.0001)

	require.Len(t, pricing.SeasonalPricing, 2)
	assert.Equal(t, "January", pricing.SeasonalPricing[0].StartMonth)
	assert.Equal(t, "December", pricing.SeasonalPricing[0].EndMonth)
	assert.Equal(t, "April", pricing.SeasonalPricing[1].StartMonth)

	require.Len(t, pricing.GroupDiscounts, 1)
	assert.Equal(t, 4, pricing.GroupDiscounts[0].MinPeople)
	assert.InDelta(t, 10, pricing.GroupDiscounts[0].Discount, 0.0001)
}

/*
TestParsers_LegacyStringEncoding verifies that a structured field stored as a
raw JSON string (a historical double-encoding) still parses to the canonical
shape.
*/
func TestParsers_LegacyStringEncoding(t *testing.T) {
	inclusions := tour.ParseInclusions(`{"included":["Park fees","Meals"],"excluded":["Flights"]}`)
	assert.Equal(t, []string{"Park fees", "Meals"}, inclusions.Included)
	assert.Equal(t, []string{"Flights"}, inclusions.Excluded)

	itinerary := tour.ParseItinerary(`[{"day":1,"title":"Arrival"}]`)
	require.Len(t, itinerary, 1)
	assert.Equal(t, "Arrival", itinerary[0].Title)

	// A string that is not valid JSON degrades to the default
	assert.Empty(t, tour.ParseItinerary("not json"))
}

/*
TestParsers_Idempotent verifies parse(parse(x)) == parse(x) for an
already-canonical structure pushed back through generic JSON.
*/
func TestParsers_Idempotent(t *testing.T) {
	raw := map[string]any{
		"base_price": float64(1800),
		"seasonal_pricing": []any{
			map[string]any{"season": "Migration", "price": "2200", "start_month": "June", "end_month": "October"},
		},
		"group_discounts": []any{
			map[string]any{"min_people": float64(6), "discount": float64(12.5)},
		},
	}

	once := tour.ParsePricing(raw)
	twice := tour.ParsePricing(roundTrip(t, once))
	assert.Equal(t, once, twice)

	itineraryRaw := []any{
		map[string]any{
			"day": float64(1), "title": "Arrival", "description": "Transfer to lodge",
			"meals": map[string]any{"breakfast": false, "lunch": true, "dinner": true}, "accommodation": "Lodge",
		},
	}
	itineraryOnce := tour.ParseItinerary(itineraryRaw)
	itineraryTwice := tour.ParseItinerary(roundTrip(t, itineraryOnce))
	assert.Equal(t, itineraryOnce, itineraryTwice)
}

// # Test Helpers

// roundTrip pushes a canonical structure back through generic JSON, the same
// shape it would have coming off the wire or out of a JSONB column.
func roundTrip(t *testing.T, v any) any {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var out any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func ptr(f float64) *float64 { return &f }
