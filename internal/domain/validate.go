package domain

import (
	"strings"
	"time"
)

const (
	DefaultAdults   = 2
	DefaultLang     = "FR"
	DefaultCurrency = "EUR"
	dateLayout      = "2006-01-02"
)

// NormalizeCityCode checks that code is a 3-letter IATA city code and upper-cases it.
func NormalizeCityCode(code string) (string, error) {
	if len(code) != 3 {
		return "", &ValidationError{Field: "cityCode", Reason: "must be a 3-letter IATA code (e.g. PAR)"}
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return "", &ValidationError{Field: "cityCode", Reason: "must contain letters only"}
		}
	}
	return strings.ToUpper(code), nil
}

// Normalize applies defaults and validates q.
func (q OffersQuery) Normalize() (OffersQuery, error) {
	ids := make([]string, 0, len(q.HotelIDs))
	for _, id := range q.HotelIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return q, &ValidationError{Field: "hotelIds", Reason: "at least one hotel ID is required"}
	}
	q.HotelIDs = ids

	if q.Adults == 0 {
		q.Adults = DefaultAdults
	}
	if q.Adults < 1 {
		return q, &ValidationError{Field: "adults", Reason: "must be >= 1"}
	}
	if q.Lang == "" {
		q.Lang = DefaultLang
	}
	if _, err := time.Parse(dateLayout, q.CheckInDate); err != nil {
		return q, &ValidationError{Field: "checkInDate", Reason: "must be YYYY-MM-DD"}
	}
	if _, err := time.Parse(dateLayout, q.CheckOutDate); err != nil {
		return q, &ValidationError{Field: "checkOutDate", Reason: "must be YYYY-MM-DD"}
	}
	return q, nil
}
