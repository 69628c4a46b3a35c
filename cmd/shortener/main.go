package main

import (
	"context"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/link-shortener/internal/app"
	"github.com/MikhailRaia/link-shortener/internal/config"
	"github.com/MikhailRaia/link-shortener/internal/logger"
)

func main() {
	cfg := config.NewConfig()
	logger.InitLogger(cfg.LogLevel)

	log.Info().Int("gomaxprocs", runtime.GOMAXPROCS(0)).Msg("Starting link shortener")

	application, err := app.NewApp(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error building application")
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		log.Fatal().Err(err).Msg("Error running application")
	}
}
