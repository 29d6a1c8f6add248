package main

import (
	"log"

	api "treemap-backend/cmd/api"
	authRepo "treemap-backend/internal/auth/repository"
	authUsecase "treemap-backend/internal/auth/usecase"
	partnerRepo "treemap-backend/internal/partner/repository"
	partnerUsecase "treemap-backend/internal/partner/usecase"
	treeRepo "treemap-backend/internal/tree/repository"
	treeUsecase "treemap-backend/internal/tree/usecase"
	"treemap-backend/pkg/config"
	"treemap-backend/pkg/nocodb"
	"treemap-backend/pkg/ratelimit"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize NocoDB client
	db := nocodb.NewClient(cfg.NocoDBBaseURL, cfg.NocoDBAPIKey)

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db, cfg.UserTableID)
	treeRepository := treeRepo.NewTreeRepository(db, cfg.TreeInfoTableID)
	locationRepository := treeRepo.NewLocationRepository(db, cfg.LocationTableID, cfg.LocationViewID)
	plantingRepository := treeRepo.NewPlantingRepository(db, cfg.PlantedTreesTableID, treeRepo.PlantingLinks{
		User:     cfg.PlantedUserLinkID,
		Location: cfg.PlantedLocationLinkID,
		TreeInfo: cfg.PlantedTreeInfoLinkID,
	})
	partnerRepository := partnerRepo.NewPartnerRepository(db, cfg.PartnerSponsorTableID)

	// Login rate limiter
	loginLimiter := ratelimit.NewDefault()

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, loginLimiter, cfg)
	treeUsecaseInstance := treeUsecase.NewTreeUsecase(treeRepository, locationRepository, plantingRepository)
	partnerUsecaseInstance := partnerUsecase.NewPartnerUsecase(partnerRepository)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, treeUsecaseInstance, partnerUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
