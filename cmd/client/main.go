package main

import (
	"fmt"

	"github.com/MKhiriev/go-party-swipe/internal/adapter"
	"github.com/MKhiriev/go-party-swipe/internal/client"
	"github.com/MKhiriev/go-party-swipe/internal/config"
	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("party-swipe-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	api := adapter.NewHTTPPartyAPI(adapter.HTTPClientConfig{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.RequestTimeout,
	})

	ui, err := tui.New(api, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(cfg, api, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
