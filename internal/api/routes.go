package api

import (
	"github.com/bilgisen/gossipd/internal/middleware"
	"github.com/bilgisen/gossipd/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers, adminKey string) {
	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	// API group with versioning
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HealthCheck)
	api.Get("/catalog", handlers.GetCatalog)
	api.Get("/status", handlers.GetStatus)

	// Session credential
	key := api.Group("/apikey", middleware.AdminOnly(adminKey))
	{
		key.Put("", middleware.ValidateBody[models.APIKeyRequest](), handlers.SetAPIKey)
		key.Delete("", handlers.ClearAPIKey)
	}

	// Generation
	gen := api.Group("/gossip")
	{
		gen.Post("", middleware.ValidateBody[models.GossipRequest](), handlers.GenerateGossip)
		gen.Post("/image", middleware.ValidateBody[models.ImageRequest](), handlers.GenerateImage)
	}

	// Favorites
	favs := api.Group("/favorites")
	{
		favs.Get("", handlers.ListFavorites)
		favs.Get("/:id", handlers.GetFavorite)
		favs.Post("", middleware.ValidateBody[models.SavedGossip](), handlers.AddFavorite)
		favs.Delete("/:id", handlers.RemoveFavorite)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
