package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-party-swipe/internal/config"
	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/internal/server"
	"github.com/MKhiriev/go-party-swipe/internal/store"
	"github.com/MKhiriev/go-party-swipe/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("party-swipe-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	catalog, err := store.NewCatalog(context.Background(), cfg.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening restaurant catalog")
	}
	defer catalog.Close()

	hub := server.NewHub(cfg.Party, catalog, log)
	handler := server.NewHandler(hub, buildVersion, log)

	srv, err := server.NewServer(handler, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	sweeper := server.NewSweeper(hub, cfg.Party.SweepInterval, log)
	workers.NewWorkers(sweeper).Run()

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
