package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"hotelpoc/internal/adapters/amadeus"
	"hotelpoc/internal/adapters/observability"
	"hotelpoc/internal/app"
	"hotelpoc/internal/domain"
	"hotelpoc/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	log.Logger = observability.NewLogger(cfg.AppEnv)

	client := amadeus.New(amadeus.SandboxBaseURL, cfg.RPS)
	auth, err := amadeus.NewAuthenticator(client, amadeus.Credentials{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Amadeus authenticator")
	}

	// sample hotel IDs that return offers in the sandbox
	checkIn, checkOut := shared.SampleStay(time.Now())
	q := domain.OffersQuery{
		HotelIDs:     shared.SampleHotelIDs,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Adults:       2,
		Lang:         "FR",
	}

	offers, err := app.NewSearchService(auth, client).SearchOffers(ctx, q)
	if err != nil {
		log.Fatal().Err(err).Strs("hotel_ids", q.HotelIDs).Msg("offer search failed")
	}
	if err := shared.Emit(os.Stdout, cfg, domain.OfferRowColumns, offers, 20); err != nil {
		log.Fatal().Err(err).Msg("output failed")
	}
}
