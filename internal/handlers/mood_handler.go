package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindshield/mindshield-backend/internal/dto"
	"github.com/mindshield/mindshield-backend/internal/services"
)

// MoodHandler handles mood logging requests.
type MoodHandler struct {
	moodService *services.MoodService
}

func NewMoodHandler(moodService *services.MoodService) *MoodHandler {
	return &MoodHandler{moodService: moodService}
}

// LogMood handles POST /api/mood
func (h *MoodHandler) LogMood(c *fiber.Ctx) error {
	var req dto.MoodRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.moodService.LogMood(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(resp)
}
