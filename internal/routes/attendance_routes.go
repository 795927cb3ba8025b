package routes

import (
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/handler"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/middleware"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB) {
	attendanceRepo := repository.NewAttendanceRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	hdl := handler.NewAttendanceHandler(attendanceRepo, userRepo, settingRepo)

	api := app.Group("/api/attendance", middleware.Auth)

	api.Post("/checkin", hdl.CheckIn)
	api.Get("/today", hdl.GetToday)
	api.Delete("/:id", hdl.Delete)
	api.Put("/:id/flag", hdl.Flag)
	api.Get("/month", hdl.GetMonth)
	api.Get("/stats", hdl.GetStats)

	// Admin listings
	api.Get("/day", middleware.Role("admin"), hdl.GetDay)
}
