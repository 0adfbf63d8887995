package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"shieldmail/internal/config"
	"shieldmail/internal/explain"
	"shieldmail/internal/server"
	"shieldmail/internal/service"
	"shieldmail/internal/store"
)

func main() {
	// Load configuration
	cfgPath := "configs/config.yml"
	if p := os.Getenv("SHIELDMAIL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.Server.Env)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load the pretrained classifier. A missing artifact is not fatal;
	// the service reports not-loaded until one is provided.
	modelService := service.NewModelService(cfg.Model.ArtifactPath, cfg.Model.MetadataPath, logger)
	modelService.Load()

	predictionStore := store.NewPredictionStore(logger)
	explanationEngine := explain.NewHeuristicEngine()

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.NewServer(cfg, modelService, predictionStore, explanationEngine, logger)
	if err := srv.Run(ctx, cfg.Server.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
	logger.Info("Application stopped.")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
