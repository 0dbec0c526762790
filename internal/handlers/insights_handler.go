package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mindshield/mindshield-backend/internal/services"
)

// InsightsHandler serves mood analytics, the dashboard, and data export/reset.
type InsightsHandler struct {
	insightsService *services.InsightsService
	dataService     *services.DataService
}

func NewInsightsHandler(insightsService *services.InsightsService, dataService *services.DataService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService, dataService: dataService}
}

// GetInsights handles GET /api/insights/:userId
func (h *InsightsHandler) GetInsights(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	days := c.QueryInt("days", 30)
	if days < 1 || days > 365 {
		days = 30
	}

	resp, err := h.insightsService.GetInsights(userID, days)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(resp)
}

// GetDashboard handles GET /api/dashboard/:userId
func (h *InsightsHandler) GetDashboard(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	resp, err := h.insightsService.GetDashboard(userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(resp)
}

// ExportData handles GET /api/export/:userId
func (h *InsightsHandler) ExportData(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	resp, err := h.dataService.Export(userID)
	if err != nil {
		return fail(c, err)
	}

	c.Set("Content-Disposition", "attachment; filename=mindshield-export.json")
	return c.JSON(resp)
}

// ResetData handles POST /api/reset/:userId
func (h *InsightsHandler) ResetData(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.dataService.Reset(userID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "All wellness data has been reset"})
}
