package config

import (
	"fmt"

	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	// Format: user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "attendance_db"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Could not connect to the database!")
	}

	// Auto migration keeps the schema in sync with the models
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.AttendanceRecord{})
	db.AutoMigrate(&model.Setting{})

	DB = db
}
