package routes

import (
	httpdelivery "github.com/FrisSoftwareteam/AttendanceApp-V1/internal/delivery/http"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/handler"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/middleware"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/repository"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB) {
	userRepo := repository.NewUserRepository(db)
	userUsecase := usecase.NewUserUsecase(userRepo)
	userHdl := httpdelivery.NewUserHandler(userUsecase)
	rosterHdl := handler.NewRosterHandler(userRepo)

	api := app.Group("/api/users")

	api.Post("/register", userHdl.Register)
	api.Post("/login", userHdl.Login)

	// Roster listing drives the Missing derivation in admin views
	api.Get("/", middleware.Auth, middleware.Role("admin"), rosterHdl.GetAll)
}
