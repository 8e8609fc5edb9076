// Package main starts the household expense settlement API server.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/splitbook/splitbook/cmd/httpserver"
	"github.com/splitbook/splitbook/internal/middleware"
	"github.com/splitbook/splitbook/pkg/configpkg"
	"github.com/splitbook/splitbook/pkg/ledgerapi"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	client := ledgerapi.NewClient(config.LedgerBaseURL, config.LedgerTimeout)

	server, err := httpserver.New(client, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("SPLITBOOK API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
