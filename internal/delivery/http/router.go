package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healthdash/backend/internal/service"
)

// SetupRoutes configures all HTTP routes. Every route is read-only; webDir,
// when set, is served as the dashboard page at /.
func SetupRoutes(app *fiber.App, datasetSvc *service.DatasetService, webDir string) {
	handler := NewHandler(datasetSvc)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/dataset", handler.GetDataset)
		api.Get("/states", handler.GetStates)
		api.Get("/states/:code", handler.GetState)
		api.Get("/metrics/:metric", handler.GetMetric)
		api.Get("/demographics/:category", handler.GetDemographics)
	}

	if webDir != "" {
		app.Static("/", webDir, fiber.Static{Index: "index.html"})
	}

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found: "+c.Path())
	})
}
