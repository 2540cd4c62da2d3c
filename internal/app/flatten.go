package app

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"hotelpoc/internal/domain"
)

const cancelSummaryMax = 140

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path, or nil when absent or not a string.
func lookupStr(m map[string]any, path string) *string {
	if s, ok := lookupAny(m, path).(string); ok {
		return &s
	}
	return nil
}

// lookupMap returns the object at path or an empty map.
func lookupMap(m map[string]any, path string) map[string]any {
	if obj, ok := lookupAny(m, path).(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

// lookupSlice returns the array at path, or nil.
func lookupSlice(m map[string]any, path string) []any {
	if s, ok := lookupAny(m, path).([]any); ok {
		return s
	}
	return nil
}

// parseFloatFlexible: float64/int/numeric string ("123.40").
func parseFloatFlexible(v any) *float64 {
	switch t := v.(type) {
	case float64:
		f := t
		return &f
	case int:
		f := float64(t)
		return &f
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return &f
		}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	return nil
}

func lookupFloat(m map[string]any, path string) *float64 {
	return parseFloatFlexible(lookupAny(m, path))
}

// lookupInt accepts whole numbers only (JSON numbers or numeric strings).
func lookupInt(m map[string]any, path string) *int {
	f := lookupFloat(m, path)
	if f == nil || *f != math.Trunc(*f) {
		return nil
	}
	n := int(*f)
	return &n
}

/********** hotel listing **********/

// FlattenHotels turns the by-city `data` array into one row per hotel.
func FlattenHotels(hotels []map[string]any) []domain.HotelSummary {
	out := make([]domain.HotelSummary, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, domain.HotelSummary{
			HotelID:    lookupStr(h, "hotelId"),
			Name:       lookupStr(h, "name"),
			ChainCode:  lookupStr(h, "chainCode"),
			City:       lookupStr(h, "address.cityName"),
			Country:    lookupStr(h, "address.countryCode"),
			PostalCode: lookupStr(h, "address.postalCode"),
			Latitude:   lookupFloat(h, "geoCode.latitude"),
			Longitude:  lookupFloat(h, "geoCode.longitude"),
		})
	}
	return out
}

/********** hotel offers **********/

// FlattenOffers turns the offers `data` array into one row per offer.
// Items without offers contribute no rows.
func FlattenOffers(items []map[string]any) []domain.OfferRow {
	out := make([]domain.OfferRow, 0, len(items))
	for _, it := range items {
		h := lookupMap(it, "hotel")
		for _, raw := range lookupSlice(it, "offers") {
			of, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, offerRow(h, of))
		}
	}
	return out
}

func offerRow(h, of map[string]any) domain.OfferRow {
	ci, co := lookupStr(of, "checkInDate"), lookupStr(of, "checkOutDate")
	total := lookupFloat(of, "price.total")

	row := domain.OfferRow{
		PriceTotal: total,
		Currency:   lookupStr(of, "price.currency"),

		HotelID:   lookupStr(h, "hotelId"),
		HotelName: lookupStr(h, "name"),
		City:      lookupStr(h, "cityCode"),
		Latitude:  lookupFloat(h, "latitude"),
		Longitude: lookupFloat(h, "longitude"),

		CheckIn:  ci,
		CheckOut: co,

		OfferID:      lookupStr(of, "id"),
		RoomType:     lookupStr(of, "room.type"),
		RoomCategory: lookupStr(of, "room.typeEstimated.category"),
		RoomBeds:     lookupInt(of, "room.typeEstimated.beds"),
		BedType:      lookupStr(of, "room.typeEstimated.bedType"),
		RoomDesc:     lookupStr(of, "room.description.text"),
		BoardType:    lookupStr(of, "boardType"),
		PaymentType:  lookupStr(of, "paymentType"),
		CancelPolicy: cancelSummary(lookupSlice(of, "policies.cancellations")),
	}

	if stay := StayOf(ci, co); stay.OK {
		nights := stay.Nights
		row.Nights = &nights
		if total != nil {
			ppn := round2(*total / float64(nights))
			row.PricePerNight = &ppn
		}
	}
	return row
}

// StayOf derives the number of nights between two ISO dates, at least 1.
// When either date is missing or unparseable the result is not OK and the
// row keeps nights and price per night null.
func StayOf(checkIn, checkOut *string) domain.Stay {
	if checkIn == nil || checkOut == nil {
		return domain.Stay{}
	}
	d0, err := time.Parse(time.DateOnly, *checkIn)
	if err != nil {
		return domain.Stay{}
	}
	d1, err := time.Parse(time.DateOnly, *checkOut)
	if err != nil {
		return domain.Stay{}
	}
	nights := int((d1.Unix() - d0.Unix()) / 86400)
	return domain.Stay{Nights: max(nights, 1), OK: true}
}

// cancelSummary keeps the first cancellation rule: its description text when
// present, else the raw rule truncated to 140 characters.
func cancelSummary(policies []any) *string {
	if len(policies) == 0 {
		return nil
	}
	p0 := policies[0]
	if obj, ok := p0.(map[string]any); ok {
		if txt := lookupStr(obj, "description.text"); txt != nil {
			if s := strings.TrimSpace(*txt); s != "" {
				return &s
			}
		}
	}
	s := truncate(compactJSON(p0), cancelSummaryMax)
	return &s
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// round2 rounds the exact binary value to 2 decimals, ties to even.
func round2(f float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	if err != nil {
		return f
	}
	return r
}
