package handler

import (
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/checkin"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/model"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	repo repository.SettingRepository
}

func NewSettingsHandler(repo repository.SettingRepository) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

// GetCutoff returns the configured cutoff time, default when unset.
func (h *SettingsHandler) GetCutoff(c *fiber.Ctx) error {
	value, err := h.repo.Get(model.SettingCutoffTime)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load settings"})
	}
	if value == "" {
		value = checkin.DefaultCutoff
	}
	return c.JSON(fiber.Map{"cutoff_time": value})
}

type CutoffRequest struct {
	CutoffTime string `json:"cutoff_time"`
}

// PutCutoff updates the cutoff. Only HH:mm is accepted; records classify
// against the new value from the next read on.
func (h *SettingsHandler) PutCutoff(c *fiber.Ctx) error {
	var req CutoffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if !checkin.ValidCutoff(req.CutoffTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cutoff must be HH:mm, 24-hour"})
	}

	if err := h.repo.Put(model.SettingCutoffTime, req.CutoffTime); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save the cutoff"})
	}

	return c.JSON(fiber.Map{"message": "Cutoff updated", "cutoff_time": req.CutoffTime})
}
