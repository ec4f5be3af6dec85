package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/crypto"
	"github.com/MKhiriev/go-identity-portal/internal/handler"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/metrics"
	"github.com/MKhiriev/go-identity-portal/internal/server"
	"github.com/MKhiriev/go-identity-portal/internal/service"
	"github.com/MKhiriev/go-identity-portal/internal/store"
	"github.com/MKhiriev/go-identity-portal/internal/verifier"
	"github.com/MKhiriev/go-identity-portal/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("identity-portal")

	// a missing .env file is fine: the real environment still applies
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env file")
	}

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Storage.Backend).
		Bool("uploads", cfg.Uploads.IsConfigured()).
		Msg("received configs")

	ctx := context.Background()

	identityStore, err := store.NewIdentityStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating identity store")
	}
	defer func() {
		if err := identityStore.Close(); err != nil {
			log.Err(err).Msg("error closing identity store")
		}
	}()

	cipher, err := crypto.NewFieldCipher(cfg.App.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating field cipher")
	}

	m := metrics.New()

	services, err := service.NewServices(ctx, service.Dependencies{
		IdentityStore: identityStore,
		Cipher:        cipher,
		Verifier:      verifier.NewVerifier(cfg.Verification, log),
		Metrics:       m,
		BuildInfo:     models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
	}, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
