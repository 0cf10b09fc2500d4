package main

import (
	"context"

	"github.com/offerspot/offerspot-backend/internal/app"
	"github.com/offerspot/offerspot-backend/internal/config"
	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()

	var log *zap.Logger
	if cfg.Env == "prod" {
		log, _ = zap.NewProduction()
	} else {
		log, _ = zap.NewDevelopment()
	}
	defer log.Sync()

	application := app.NewApp(context.Background(), log, *cfg)

	log.Info("starting server", zap.String("addr", cfg.HTTPServer.Address))

	application.MustRun()
}
