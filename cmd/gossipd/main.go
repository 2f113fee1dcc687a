package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilgisen/gossipd/internal/ai"
	"github.com/bilgisen/gossipd/internal/api"
	"github.com/bilgisen/gossipd/internal/apikey"
	"github.com/bilgisen/gossipd/internal/config"
	"github.com/bilgisen/gossipd/internal/favorites"
	"github.com/bilgisen/gossipd/internal/gossip"
	"github.com/bilgisen/gossipd/internal/kv"
	"github.com/bilgisen/gossipd/internal/logger"
	"github.com/bilgisen/gossipd/internal/middleware"
	"github.com/bilgisen/gossipd/internal/storage"
	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	output := cfg.LogFile
	if output == "" {
		output = "stdout"
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: output,
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().
		Str("ai_backend", cfg.AIBackend).
		Str("kv_backend", cfg.KVBackend).
		Str("image_store", cfg.ImageStore).
		Msg("Starting gossipd...")

	ctx := context.Background()

	slot, err := kv.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize key-value store")
	}
	defer func() {
		log.Info().Msg("Closing key-value store...")
		if err := slot.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing key-value store")
		}
	}()

	favs := favorites.New(slot, cfg.FavoritesKey)
	favs.Load(ctx)

	creds := apikey.NewCredentials(cfg.AIApiKey)
	if creds.Source() == "none" {
		log.Warn().Msg("GOOGLE_AI_API_KEY is not set; generation fails until a session key is provided")
	}

	generator, err := ai.NewGenerator(cfg, creds)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize generator")
	}

	images, err := storage.NewImageStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize image store")
	}

	service := gossip.NewService(generator, images, cfg.PlaceholderImageURL)
	checker := apikey.NewChecker(service.Ping)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	api.SetupRoutes(app, api.NewHandlers(service, favs, checker, creds), cfg.AdminAPIKey)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Int("favorites", favs.Len()).Msg("Server exited properly")
}
