package api

import (
	"net/http"

	"treemap-backend/internal/auth/delivery"
	authUsecase "treemap-backend/internal/auth/usecase"
	partnerDelivery "treemap-backend/internal/partner/delivery"
	partnerUsecase "treemap-backend/internal/partner/usecase"
	treeDelivery "treemap-backend/internal/tree/delivery"
	treeUsecase "treemap-backend/internal/tree/usecase"
	"treemap-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, treeUsecase treeUsecase.TreeUsecase, partnerUsecase partnerUsecase.PartnerUsecase, cfg *config.Config) {
	authHandler := delivery.NewAuthHandler(authUsecase)
	treeHandler := treeDelivery.NewTreeHandler(treeUsecase)
	partnerHandler := partnerDelivery.NewPartnerHandler(partnerUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUsecase), authHandler.Me)
			auth.PATCH("/profile", delivery.AuthMiddleware(authUsecase), authHandler.UpdateProfile)
			auth.POST("/change-password", delivery.AuthMiddleware(authUsecase), authHandler.ChangePassword)
		}

		// Tree routes (reads public, writes protected)
		trees := api.Group("/trees")
		{
			trees.GET("", treeHandler.GetTrees)
			trees.GET("/count", treeHandler.CountTrees)
			trees.GET("/search", treeHandler.SearchTrees)
			trees.GET("/:id", treeHandler.GetTreeByID)
			trees.GET("/:id/locations", treeHandler.GetLocationsByTree)
			trees.POST("", delivery.AuthMiddleware(authUsecase), treeHandler.CreateTree)
			trees.PATCH("/:id", delivery.AuthMiddleware(authUsecase), treeHandler.UpdateTree)
			trees.DELETE("/:id", delivery.AuthMiddleware(authUsecase), treeHandler.DeleteTree)
		}

		// Location routes (reads public, writes protected)
		locations := api.Group("/locations")
		{
			locations.GET("", treeHandler.GetLocations)
			locations.GET("/:id", treeHandler.GetLocationByID)
			locations.POST("", delivery.AuthMiddleware(authUsecase), treeHandler.CreateLocation)
			locations.PATCH("/:id", delivery.AuthMiddleware(authUsecase), treeHandler.UpdateLocation)
			locations.DELETE("/:id", delivery.AuthMiddleware(authUsecase), treeHandler.DeleteLocation)
		}

		// Planting routes (protected)
		plantings := api.Group("/plantings")
		plantings.Use(delivery.AuthMiddleware(authUsecase))
		{
			plantings.POST("", treeHandler.PlantTree)
			plantings.GET("/:id/locations", treeHandler.GetPlantedLocations)
		}

		// Partner and sponsor routes (public)
		api.GET("/partners", partnerHandler.GetPartners)
		api.GET("/partners/:id/logos", partnerHandler.GetLogos)
		api.GET("/sponsors", partnerHandler.GetSponsors)
	}
}
