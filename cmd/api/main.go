package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"hotelpoc/internal/adapters/amadeus"
	server "hotelpoc/internal/adapters/http_server"
	"hotelpoc/internal/adapters/observability"
	"hotelpoc/internal/app"
	"hotelpoc/internal/shared"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	// deps
	client := amadeus.New(amadeus.SandboxBaseURL, cfg.RPS)
	auth, err := amadeus.NewAuthenticator(client, amadeus.Credentials{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Amadeus authenticator")
	}
	svc := app.NewSearchService(auth, client)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
