package database

import (
	"log"

	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/checkin"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedAll(db *gorm.DB) {
	// 1. Default cutoff
	cutoff := model.Setting{Key: model.SettingCutoffTime, Value: checkin.DefaultCutoff}
	db.FirstOrCreate(&cutoff, model.Setting{Key: cutoff.Key})

	// 2. First admin account
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)

	admin := model.User{
		Name:     "Administrator",
		Email:    "admin@example.com",
		Password: string(hashedPassword),
		Role:     "admin",
	}

	result := db.FirstOrCreate(&admin, model.User{Email: admin.Email})
	if result.Error == nil {
		// Keep the password in sync with "admin123" even when the user exists
		db.Model(&admin).Update("password", string(hashedPassword))
		log.Println("Admin seeded")
	}

	// 3. Sample roster workers
	workers := []model.User{
		{Name: "Alice Worker", Email: "alice@example.com", Role: "worker"},
		{Name: "Bob Worker", Email: "bob@example.com", Role: "worker"},
	}
	workerPassword, _ := bcrypt.GenerateFromPassword([]byte("worker123"), bcrypt.DefaultCost)
	for _, w := range workers {
		w.Password = string(workerPassword)
		db.FirstOrCreate(&w, model.User{Email: w.Email})
	}

	log.Println("Seeding finished")
}
