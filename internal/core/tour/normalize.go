// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package tour

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document is the loosely-typed admin payload for a package operation.
//
// The back-office form has gone through several generations, so any field may
// arrive as a string, a number, an array, or an object — or be missing
// entirely. Every accessor below is total: it never fails, it falls back to a
// documented default instead.
type Document map[string]any

// Has reports whether the document carries a non-nil value for key.
func (d Document) Has(key string) bool {
	v, ok := d[key]
	return ok && v != nil
}

// # Field Coercers
//
// Each coercer converts one raw value into exactly one canonical shape,
// independent of business meaning.

// FloatOrNil parses v as a floating point number.
//
// Absent values, empty strings, and unparseable input all map to the
// canonical "unset" (nil) so the assembler can apply a field-specific default.
func FloatOrNil(v any) *float64 {
	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		return &value
	case int:
		f := float64(value)
		return &f
	case int64:
		f := float64(value)
		return &f
	case json.Number:
		if f, err := value.Float64(); err == nil {
			return &f
		}
		return nil
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return &f
		}
		return nil
	case bool:
		return nil
	default:
		return nil
	}
}

// PositiveInt parses v as an integer, substituting def when the value is
// missing, non-numeric, or not strictly positive.
func PositiveInt(v any, def int) int {
	f := FloatOrNil(v)
	if f == nil {
		return def
	}
	n := int(*f)
	if n <= 0 {
		return def
	}
	return n
}

// StringOr stringifies and trims v, substituting def when the result is empty.
//
// Non-scalar values (objects, arrays) are treated as unset rather than being
// dumped into the record as their encoded form.
func StringOr(v any, def string) string {
	switch value := v.(type) {
	case nil:
		return def
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return def
		}
		return trimmed
	case float64:
		// JSON numbers decode as float64; render integers without a decimal point.
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	default:
		return def
	}
}

// BoolValue coerces v into a boolean.
//
// Accepts native booleans, the strings "true"/"1"/"false"/"0", and numbers
// (non-zero is true). Anything else is false.
func BoolValue(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		return err == nil && parsed
	case float64:
		return value != 0
	case int:
		return value != 0
	default:
		return false
	}
}

// StringList coerces v into an ordered sequence of trimmed strings.
//
// # Rules
//
//   - An existing sequence keeps its order; nil and empty-string entries are
//     dropped; remaining entries are stringified and trimmed. Duplicates are
//     NOT removed.
//   - A non-empty single string becomes a one-element sequence.
//   - Anything else (absent, wrong type) becomes an empty sequence.
//
// The result is never nil so it always encodes as a JSON array.
func StringList(v any) []string {
	result := []string{}

	switch value := v.(type) {
	case []any:
		for _, entry := range value {
			if entry == nil {
				continue
			}
			s := StringOr(entry, "")
			if s == "" {
				continue
			}
			result = append(result, s)
		}
	case []string:
		for _, entry := range value {
			trimmed := strings.TrimSpace(entry)
			if trimmed == "" {
				continue
			}
			result = append(result, trimmed)
		}
	case string:
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// # Structured-Field Parsers
//
// Each parser accepts the caller's raw value for one compound field and
// returns the canonical structure. A value that is not an object/array of the
// expected shape yields the full default — never a partial merge with nil
// holes. Defaults are fresh instances per call; parsers share no state.

// asObject resolves v into a generic JSON object.
//
// Legacy rows store some structured fields as raw JSON strings rather than
// parsed structures; a string value is decoded once before giving up.
func asObject(v any) (map[string]any, bool) {
	switch value := v.(type) {
	case map[string]any:
		return value, true
	case string:
		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err != nil {
			return nil, false
		}
		obj, ok := decoded.(map[string]any)
		return obj, ok
	default:
		return nil, false
	}
}

// asArray resolves v into a generic JSON array, decoding legacy string
// encodings the same way as [asObject].
func asArray(v any) ([]any, bool) {
	switch value := v.(type) {
	case []any:
		return value, true
	case string:
		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err != nil {
			return nil, false
		}
		arr, ok := decoded.([]any)
		return arr, ok
	default:
		return nil, false
	}
}

// ParseItinerary normalizes the day-by-day programme.
//
// Day numbers default to the 1-based position when missing or invalid.
// Entries that are not objects are dropped. Default: empty sequence.
func ParseItinerary(v any) []ItineraryDay {
	days := []ItineraryDay{}

	entries, ok := asArray(v)
	if !ok {
		return days
	}

	for _, entry := range entries {
		obj, ok := asObject(entry)
		if !ok {
			continue
		}

		day := ItineraryDay{
			Day:           PositiveInt(obj["day"], len(days)+1),
			Title:         StringOr(obj["title"], ""),
			Description:   StringOr(obj["description"], ""),
			Accommodation: StringOr(obj["accommodation"], ""),
		}

		if meals, ok := asObject(obj["meals"]); ok {
			day.Meals = MealPlan{
				Breakfast: BoolValue(meals["breakfast"]),
				Lunch:     BoolValue(meals["lunch"]),
				Dinner:    BoolValue(meals["dinner"]),
			}
		}

		days = append(days, day)
	}

	return days
}

// ParsePricing normalizes the price table.
//
// Seasonal entries with an empty season are dropped; month bounds default to
// the calendar year. Group-discount entries with a non-positive minimum are
// dropped. Default: base price 0, both sequences empty.
func ParsePricing(v any) Pricing {
	pricing := Pricing{
		SeasonalPricing: []SeasonalPrice{},
		GroupDiscounts:  []GroupDiscount{},
	}

	obj, ok := asObject(v)
	if !ok {
		return pricing
	}

	if base := FloatOrNil(obj["base_price"]); base != nil && *base >= 0 {
		pricing.BasePrice = *base
	}

	if seasons, ok := asArray(obj["seasonal_pricing"]); ok {
		for _, entry := range seasons {
			season, ok := asObject(entry)
			if !ok {
				continue
			}

			name := StringOr(season["season"], "")
			if name == "" {
				continue
			}

			pricing.SeasonalPricing = append(pricing.SeasonalPricing, SeasonalPrice{
				Season:     name,
				Price:      StringOr(season["price"], ""),
				StartMonth: StringOr(season["start_month"], "January"),
				EndMonth:   StringOr(season["end_month"], "December"),
			})
		}
	}

	if discounts, ok := asArray(obj["group_discounts"]); ok {
		for _, entry := range discounts {
			discount, ok := asObject(entry)
			if !ok {
				continue
			}

			minPeople := PositiveInt(discount["min_people"], 0)
			if minPeople <= 0 {
				continue
			}

			var amount float64
			if f := FloatOrNil(discount["discount"]); f != nil {
				amount = *f
			}

			pricing.GroupDiscounts = append(pricing.GroupDiscounts, GroupDiscount{
				MinPeople: minPeople,
				Discount:  amount,
			})
		}
	}

	return pricing
}

// ParseAccommodationDetails normalizes the lodging block. Default: empty note,
// empty inclusion list.
func ParseAccommodationDetails(v any) AccommodationDetails {
	details := AccommodationDetails{Inclusions: []string{}}

	obj, ok := asObject(v)
	if !ok {
		return details
	}

	details.Note = StringOr(obj["note"], "")
	details.Inclusions = StringList(obj["inclusions"])
	return details
}

// ParseTransportation normalizes the activities/transport block.
// Default: empty activity list, empty vehicle and transfer.
func ParseTransportation(v any) Transportation {
	transport := Transportation{Activities: []string{}}

	obj, ok := asObject(v)
	if !ok {
		return transport
	}

	transport.Activities = StringList(obj["activities"])
	transport.Vehicle = StringOr(obj["vehicle"], "")
	transport.Transfer = StringOr(obj["transfer"], "")
	return transport
}

// ParseInclusions normalizes the included/excluded lists. Default: both empty.
func ParseInclusions(v any) Inclusions {
	inclusions := Inclusions{Included: []string{}, Excluded: []string{}}

	obj, ok := asObject(v)
	if !ok {
		return inclusions
	}

	inclusions.Included = StringList(obj["included"])
	inclusions.Excluded = StringList(obj["excluded"])
	return inclusions
}

// ParseGettingThere normalizes the arrival block. Default: empty description
// and details.
func ParseGettingThere(v any) GettingThere {
	getting := GettingThere{Details: []string{}}

	obj, ok := asObject(v)
	if !ok {
		return getting
	}

	getting.Description = StringOr(obj["description"], "")
	getting.Details = StringList(obj["details"])
	return getting
}

// ParsePolicies normalizes the policy text blocks. Default: all empty.
func ParsePolicies(v any) Policies {
	policies := Policies{}

	obj, ok := asObject(v)
	if !ok {
		return policies
	}

	policies.Cancellation = StringOr(obj["cancellation"], "")
	policies.HealthSafety = StringOr(obj["health_safety"], "")
	policies.Insurance = StringOr(obj["insurance"], "")
	return policies
}

// # Record Assembly Helpers

// groupSizeLabel renders the display label for a group size range.
func groupSizeLabel(min, max int) string {
	return fmt.Sprintf("%d-%d People", min, max)
}

// applyDocument coerces every non-identity field of doc onto pkg.
//
// This is the shared body of the create and update assemblers: scalars go
// through the field coercers, structured fields through the parsers — a full
// replace, not a patch. Identity (ID, Slug), status, and timestamps are
// handled by the caller.
func applyDocument(pkg *Package, doc Document) {
	pkg.Name = StringOr(doc["name"], "")
	pkg.Description = StringOr(doc["description"], "")
	pkg.LongDescription = StringOr(doc["long_description"], "")
	pkg.Location = StringOr(doc["location"], "")
	pkg.TourType = StringOr(doc["tour_type"], DefaultTourType)
	pkg.ComfortLevel = StringOr(doc["comfort_level"], DefaultComfortLevel)
	pkg.Accommodation = StringOr(doc["accommodation"], DefaultAccommodation)
	pkg.DifficultyLevel = StringOr(doc["difficulty_level"], DefaultDifficulty)
	pkg.TourOperator = StringOr(doc["tour_operator"], DefaultTourOperator)

	pkg.Duration = PositiveInt(doc["duration"], DefaultDuration)

	if price := FloatOrNil(doc["price"]); price != nil && *price >= 0 {
		pkg.Price = *price
	}

	// Rating and review count default rather than reject.
	pkg.Rating = DefaultRating
	if rating := FloatOrNil(doc["rating"]); rating != nil && *rating >= 0 && *rating <= 5 {
		pkg.Rating = *rating
	}
	pkg.ReviewCount = 0
	if reviews := FloatOrNil(doc["review_count"]); reviews != nil && *reviews >= 0 {
		pkg.ReviewCount = int(*reviews)
	}

	pkg.GroupSizeMin = PositiveInt(doc["group_size_min"], DefaultGroupSizeMin)
	pkg.GroupSizeMax = PositiveInt(doc["group_size_max"], DefaultGroupSizeMax)
	pkg.GroupSize = StringOr(doc["group_size"], groupSizeLabel(pkg.GroupSizeMin, pkg.GroupSizeMax))

	pkg.Featured = BoolValue(doc["featured"])
	pkg.Popular = BoolValue(doc["popular"])
	pkg.Availability = true
	if doc.Has("availability") {
		pkg.Availability = BoolValue(doc["availability"])
	}

	pkg.Image = StringOr(doc["image"], "")
	pkg.Gallery = StringList(doc["gallery"])

	// Structured fields: total parsers, fresh defaults per call.
	pkg.Itinerary = ParseItinerary(doc["itinerary"])
	pkg.Pricing = ParsePricing(doc["pricing"])
	pkg.AccommodationDetails = ParseAccommodationDetails(doc["accommodation_details"])
	pkg.Transportation = ParseTransportation(doc["activities_transportation"])
	pkg.Inclusions = ParseInclusions(doc["inclusions"])
	pkg.GettingThere = ParseGettingThere(doc["getting_there"])
	pkg.Policies = ParsePolicies(doc["policies"])

	pkg.BestSeason = StringList(doc["best_season"])
	pkg.Destinations = StringList(doc["destinations"])
	pkg.Highlights = StringList(doc["highlights"])
	pkg.Activities = StringList(doc["activities"])
	pkg.IncludedActivities = StringList(doc["included_activities"])
	pkg.TourFeatures = StringList(doc["tour_features"])
}
