package domain

import "context"

type Authenticator interface {
	Token(ctx context.Context) (string, error)
}

// AmadeusClient returns the raw `data` arrays of the hotel endpoints.
type AmadeusClient interface {
	ListHotelsByCity(ctx context.Context, token, cityCode string) ([]map[string]any, error)
	SearchOffers(ctx context.Context, token string, q OffersQuery) ([]map[string]any, error)
}
