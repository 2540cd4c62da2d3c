package domain

// HotelSummary is one row of the by-city hotel listing.
type HotelSummary struct {
	HotelID    *string  `json:"hotelId"`
	Name       *string  `json:"name"`
	ChainCode  *string  `json:"chainCode"`
	City       *string  `json:"city"`
	Country    *string  `json:"country"`
	PostalCode *string  `json:"postalCode"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// Stay is the derived length of an offer's stay.
// OK is false when either date could not be parsed; Nights is then meaningless.
type Stay struct {
	Nights int
	OK     bool
}

// OfferRow is one hotel offer flattened together with its hotel context.
type OfferRow struct {
	PriceTotal    *float64 `json:"price_total"`
	Currency      *string  `json:"currency"`
	PricePerNight *float64 `json:"price_per_night"`
	Nights        *int     `json:"nights"`

	HotelID   *string  `json:"hotelId"`
	HotelName *string  `json:"hotel_name"`
	City      *string  `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut"`

	OfferID      *string `json:"offerId"`
	RoomType     *string `json:"room_type"`
	RoomCategory *string `json:"room_category"`
	RoomBeds     *int    `json:"room_beds"`
	BedType      *string `json:"bed_type"`
	RoomDesc     *string `json:"room_desc"`
	BoardType    *string `json:"boardType"`
	PaymentType  *string `json:"paymentType"`
	CancelPolicy *string `json:"cancel_policy"`
}

// OffersQuery holds the parameters of a hotel offers search.
type OffersQuery struct {
	HotelIDs     []string
	CheckInDate  string // YYYY-MM-DD
	CheckOutDate string // YYYY-MM-DD
	Adults       int
	Lang         string
}
