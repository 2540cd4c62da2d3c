package domain

import "strconv"

// Column orders of the flattened tables.
var (
	HotelSummaryColumns = []string{
		"hotelId", "name", "chainCode", "city", "country", "postalCode", "latitude", "longitude",
	}
	OfferRowColumns = []string{
		"price_total", "currency", "price_per_night", "nights",
		"hotelId", "hotel_name", "city", "latitude", "longitude",
		"checkIn", "checkOut",
		"offerId", "room_type", "room_category", "room_beds", "bed_type", "room_desc",
		"boardType", "paymentType", "cancel_policy",
	}
)

// Record renders h in HotelSummaryColumns order; nulls are empty strings.
func (h HotelSummary) Record() []string {
	return []string{
		str(h.HotelID), str(h.Name), str(h.ChainCode), str(h.City),
		str(h.Country), str(h.PostalCode), num(h.Latitude), num(h.Longitude),
	}
}

// Record renders o in OfferRowColumns order; nulls are empty strings.
func (o OfferRow) Record() []string {
	return []string{
		num(o.PriceTotal), str(o.Currency), num(o.PricePerNight), integer(o.Nights),
		str(o.HotelID), str(o.HotelName), str(o.City), num(o.Latitude), num(o.Longitude),
		str(o.CheckIn), str(o.CheckOut),
		str(o.OfferID), str(o.RoomType), str(o.RoomCategory), integer(o.RoomBeds), str(o.BedType), str(o.RoomDesc),
		str(o.BoardType), str(o.PaymentType), str(o.CancelPolicy),
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func integer(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
