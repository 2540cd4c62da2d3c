package main

import (
	"context"
	"os"

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

	hotels, err := app.NewSearchService(auth, client).ListHotels(ctx, shared.SampleCity)
	if err != nil {
		log.Fatal().Err(err).Str("city", shared.SampleCity).Msg("hotel listing failed")
	}
	if err := shared.Emit(os.Stdout, cfg, domain.HotelSummaryColumns, hotels, 10); err != nil {
		log.Fatal().Err(err).Msg("output failed")
	}
}
