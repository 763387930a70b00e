package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/shortlink/internal/app"
	"github.com/MikhailRaia/shortlink/internal/config"
	"github.com/MikhailRaia/shortlink/internal/logger"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}

	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("Error initializing logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening storage")
	}

	if err := application.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Error running application")
	}
}
