package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindshield/mindshield-backend/internal/database"
	"github.com/mindshield/mindshield-backend/internal/dto"
)

type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		UptimeSec: time.Since(h.startedAt).Round(time.Second).Seconds(),
	})
}
