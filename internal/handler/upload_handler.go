package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/FrisSoftwareteam/AttendanceApp-V1/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UploadHandler struct {
	dir string // served statically under /uploads
}

func NewUploadHandler() *UploadHandler {
	dir := config.GetEnv("UPLOAD_DIR", "./uploads")
	os.MkdirAll(dir, 0o755)
	return &UploadHandler{dir: dir}
}

// Upload stores one check-in photo and returns its durable reference. The
// public id doubles as the on-disk name so deletion stays trivial.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A photo file is required"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		ext = ".jpg"
	}

	publicID := uuid.NewString()
	filename := publicID + ext
	if err := c.SaveFile(file, filepath.Join(h.dir, filename)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not store the photo"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Photo uploaded",
		"url":       fmt.Sprintf("/uploads/%s", filename),
		"public_id": publicID,
	})
}
