package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/myrecipebox/recipebox-be/internal/ai"
	"github.com/myrecipebox/recipebox-be/internal/api"
	"github.com/myrecipebox/recipebox-be/internal/auth"
	"github.com/myrecipebox/recipebox-be/internal/config"
	"github.com/myrecipebox/recipebox-be/internal/database"
	"github.com/myrecipebox/recipebox-be/internal/logger"
	"github.com/myrecipebox/recipebox-be/internal/seed"
	"github.com/myrecipebox/recipebox-be/internal/services"
)

func main() {
	logger.Init()

	// Load configuration. A missing signing secret fails here, before
	// anything is served.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Seed the catalog from the dataset CSV when configured
	if cfg.SeedDataset != "" {
		if err := seed.Run(db, cfg.SeedDataset); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed database")
		}
	}

	// Set up the auth core
	hasher := auth.NewHasher()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	// Set up services
	userService := services.NewUserService(db, hasher)
	recipeService := services.NewRecipeService(db)
	favoriteService := services.NewFavoriteService(db)
	resolver := auth.NewResolver(tokens, userService)
	suggester := ai.NewClient(cfg.AIBaseURL, cfg.HFAPIToken, cfg.AIModel)

	// Set up router
	router := api.NewRouter(resolver, tokens, userService, recipeService, favoriteService, suggester, cfg.AllowedOrigin, cfg.ImageDir)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
