package main

import (
	"kingdom/config"
	"kingdom/di"
	"kingdom/helper"
	"kingdom/shared/logger"
	"kingdom/shared/metrics"
	"kingdom/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title						Kingdom Seekers API
// @version					1.0
// @description				Retreat center bookings, congregation records and giving.
// @BasePath					/api
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if err := timezone.Init(cfg.App.Timezone); err != nil {
		log.Warn().Err(err).Msg("using UTC")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to run database migrations")
		}
	}

	if cfg.Metrics.Enable {
		metrics.Register()
	}

	http := di.InitializeService()
	http.Serve()
}
