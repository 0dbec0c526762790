package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindshield/mindshield-backend/internal/dto"
	"github.com/mindshield/mindshield-backend/internal/services"
)

// GameHandler handles activity session requests.
type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// SaveSession handles POST /api/games/session
func (h *GameHandler) SaveSession(c *fiber.Ctx) error {
	var req dto.GameSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.gameService.SaveSession(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": resp})
}
