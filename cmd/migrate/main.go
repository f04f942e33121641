package main

import (
	"drivingschool/config"
	"drivingschool/helper"
	"drivingschool/shared/logger"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if len(os.Args) < 2 {
		log.Fatal().Msg("Migration action is required: up, down, step-up, drop, version or force <version>")
	}

	action := os.Args[1]

	var version int

	if action == helper.ActionForce {
		if len(os.Args) < 3 {
			log.Fatal().Msg("force needs the version to mark as clean")
		}

		parsed, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid version")
		}

		version = parsed
	}

	if err := helper.Run(cfg, action, version); err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("Migration failed")
	}
}
