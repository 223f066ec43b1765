package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healthdash/backend/internal/domain"
	"github.com/healthdash/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	datasetSvc *service.DatasetService
}

// NewHandler creates a new handler
func NewHandler(datasetSvc *service.DatasetService) *Handler {
	return &Handler{datasetSvc: datasetSvc}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "healthdash-backend",
		"states":  len(h.datasetSvc.Dataset().States),
	})
}

// GetDataset returns the whole aggregated artifact
func (h *Handler) GetDataset(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.datasetSvc.Dataset(),
	})
}

// GetStates returns every state summary in alphabetical order
func (h *Handler) GetStates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.datasetSvc.States(),
	})
}

// GetState returns one state summary by two-letter code
func (h *Handler) GetState(c *fiber.Ctx) error {
	code := c.Params("code")
	state, ok := h.datasetSvc.State(code)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Unknown state code: "+code)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    state,
	})
}

// GetMetric returns the trend, KPI and ranking of one metric
func (h *Handler) GetMetric(c *fiber.Ctx) error {
	raw := c.Params("metric")
	metric, err := domain.ParseMetric(raw)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Unknown metric: "+raw)
	}

	view, ok := h.datasetSvc.Metric(metric)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "No data for metric: "+raw)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    view,
	})
}

// GetDemographics returns the strata of one category
func (h *Handler) GetDemographics(c *fiber.Ctx) error {
	raw := c.Params("category")
	category, err := domain.ParseCategory(raw)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Unknown demographic category: "+raw)
	}

	rows, ok := h.datasetSvc.Demographics(category)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "No data for category: "+raw)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"category":    category,
			"strata":      rows,
			"disparities": h.datasetSvc.Dataset().Analysis.Disparities[category],
		},
	})
}

// ErrorHandler renders every error as a JSON body
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
