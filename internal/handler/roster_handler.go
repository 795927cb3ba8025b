package handler

import (
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type RosterHandler struct {
	userRepo *repository.UserRepository
}

func NewRosterHandler(userRepo *repository.UserRepository) *RosterHandler {
	return &RosterHandler{userRepo: userRepo}
}

// GetAll lists the roster, every worker expected to check in.
func (h *RosterHandler) GetAll(c *fiber.Ctx) error {
	users, err := h.userRepo.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load the roster"})
	}

	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, fiber.Map{"id": u.ID, "name": u.Name})
	}
	return c.JSON(fiber.Map{"data": out})
}
