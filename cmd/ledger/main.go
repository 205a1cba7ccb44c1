package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/handler"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/metrics"
	"github.com/MKhiriev/go-gene-consent/internal/server"
	"github.com/MKhiriev/go-gene-consent/internal/service"
	"github.com/MKhiriev/go-gene-consent/internal/store"
	"github.com/MKhiriev/go-gene-consent/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(info.String())

	log := logger.NewLogger("gene-consent-ledger")
	cfg, err := config.GetLedgerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = info.BuildVersion()
	}

	log.Debug().Str("http", cfg.Server.HTTPAddress).Str("grpc", cfg.Server.GRPCAddress).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage.DB, log.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	m := metrics.New()
	services, err := service.NewServices(storages, cfg, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, m, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
