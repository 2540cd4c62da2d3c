package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotelpoc/internal/domain"
)

// SearchService runs one pipeline per call: token, fetch, flatten.
// Nothing is kept between calls.
type SearchService struct {
	auth   domain.Authenticator
	client domain.AmadeusClient
}

func NewSearchService(a domain.Authenticator, c domain.AmadeusClient) *SearchService {
	return &SearchService{auth: a, client: c}
}

func (s *SearchService) ListHotels(ctx context.Context, cityCode string) ([]domain.HotelSummary, error) {
	// validate before authenticating so bad input never reaches the network
	code, err := domain.NormalizeCityCode(cityCode)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.Token(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := s.client.ListHotelsByCity(ctx, token, code)
	if err != nil {
		return nil, fmt.Errorf("list hotels in %s: %w", code, err)
	}

	rows := FlattenHotels(raw)
	log.Info().Str("city", code).Int("hotels", len(rows)).Msg("hotels listed")
	return rows, nil
}

func (s *SearchService) SearchOffers(ctx context.Context, q domain.OffersQuery) ([]domain.OfferRow, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	token, err := s.auth.Token(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := s.client.SearchOffers(ctx, token, q)
	if err != nil {
		return nil, fmt.Errorf("search offers: %w", err)
	}

	rows := FlattenOffers(raw)
	log.Info().
		Strs("hotel_ids", q.HotelIDs).
		Str("check_in", q.CheckInDate).
		Str("check_out", q.CheckOutDate).
		Int("items", len(raw)).
		Int("offers", len(rows)).
		Msg("hotel offers searched")
	return rows, nil
}
