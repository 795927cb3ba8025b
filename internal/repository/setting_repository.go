package repository

import (
	"errors"

	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/model"

	"gorm.io/gorm"
)

type SettingRepository interface {
	Get(key string) (string, error)
	Put(key string, value string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db}
}

// Get returns the stored value, or "" when the key was never set.
func (r *settingRepository) Get(key string) (string, error) {
	var setting model.Setting
	err := r.db.Where("`key` = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (r *settingRepository) Put(key string, value string) error {
	var setting model.Setting
	err := r.db.Where("`key` = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&model.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	setting.Value = value
	return r.db.Save(&setting).Error
}
