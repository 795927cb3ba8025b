package main

import (
	"fmt"

	"github.com/FrisSoftwareteam/AttendanceApp-V1/config"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file found, using system environment variables.")
	}

	config.ConnectDB()
	database.SeedAll(config.DB)
}
