package main

import (
	"fmt"

	"github.com/FrisSoftwareteam/AttendanceApp-V1/config"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file found, using system environment variables.")
	}

	config.ConnectDB()

	app := fiber.New()

	// Global middleware
	app.Use(cors.New())
	app.Use(logger.New())

	// Check-in photos are served straight from disk
	app.Static("/uploads", config.GetEnv("UPLOAD_DIR", "./uploads"))

	routes.SetupUserRoutes(app, config.DB)
	routes.SetupAttendanceRoutes(app, config.DB)
	routes.SetupSettingsRoutes(app, config.DB)
	routes.SetupUploadRoutes(app)
	routes.SetupGeolocationRoutes(app)

	port := config.GetEnv("PORT", "3000")
	fmt.Println("Server ready on port :" + port)
	app.Listen(":" + port)
}
