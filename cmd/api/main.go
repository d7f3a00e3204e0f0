package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/CeciG24/fibo-backend/internal/adapter/repo"
	"github.com/CeciG24/fibo-backend/internal/generation"
	"github.com/CeciG24/fibo-backend/internal/http/handlers"
	httpapi "github.com/CeciG24/fibo-backend/internal/http/httpapi"
	"github.com/CeciG24/fibo-backend/internal/infra"
	"github.com/CeciG24/fibo-backend/internal/providers/fibo"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	if err := repo.EnsureSchema(ctx, dbpool); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure database schema")
	}
	generations := repo.NewGenerationRepository(dbpool)

	client := fibo.NewClient(fibo.Options{
		APIKey:         cfg.FiboAPIKey,
		BaseURL:        cfg.FiboBaseURL,
		MockMode:       cfg.FiboMockMode,
		RequestTimeout: cfg.FiboTimeout,
		Logger:         &logger,
	})
	if client.MockMode() {
		logger.Warn().Msg("provider running in mock mode, images will be placeholders")
	}

	service := generation.NewService(generation.Options{
		Repo:       generations,
		Client:     client,
		Logger:     &logger,
		DailyQuota: cfg.DailyQuota,
	})

	app := handlers.NewApp(service, generations, logger)
	router := httpapi.NewRouter(app, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
