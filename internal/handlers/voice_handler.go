package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindshield/mindshield-backend/internal/dto"
	"github.com/mindshield/mindshield-backend/internal/services"
)

// VoiceHandler handles voice analysis requests.
type VoiceHandler struct {
	voiceService *services.VoiceService
}

func NewVoiceHandler(voiceService *services.VoiceService) *VoiceHandler {
	return &VoiceHandler{voiceService: voiceService}
}

// Analyze handles POST /api/voice/analyze
func (h *VoiceHandler) Analyze(c *fiber.Ctx) error {
	var req dto.VoiceAnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.voiceService.Analyze(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(resp)
}
