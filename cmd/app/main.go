package main

import (
	"drivingschool/config"
	"drivingschool/di"
	"drivingschool/helper"
	"drivingschool/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Run(cfg, helper.ActionUp, 0); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	server, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	server.Serve()
}
