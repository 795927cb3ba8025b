package repository

import (
	"errors"

	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(record *model.AttendanceRecord) error
	GetByID(id uint) (*model.AttendanceRecord, error)
	GetByUserAndDay(userID uint, day string) (*model.AttendanceRecord, error)
	GetByDay(day string) ([]model.AttendanceRecord, error)
	GetByMonth(userID uint, month string, year string) ([]model.AttendanceRecord, error)
	GetAllByMonth(month string, year string) ([]model.AttendanceRecord, error)
	UpdateFlagComment(id uint, comment string) error
	Delete(id uint) error
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) Create(record *model.AttendanceRecord) error {
	return r.db.Create(record).Error
}

func (r *attendanceRepository) GetByID(id uint) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByUserAndDay backs the one-check-in-per-day gate. The caller supplies
// the day in the record's own zone; a nil record with a nil error means that
// day is still open.
func (r *attendanceRepository) GetByUserAndDay(userID uint, day string) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.Where("user_id = ? AND day = ?", userID, day).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) GetByDay(day string) ([]model.AttendanceRecord, error) {
	var list []model.AttendanceRecord
	err := r.db.Where("day = ?", day).Find(&list).Error
	return list, err
}

func (r *attendanceRepository) GetByMonth(userID uint, month string, year string) ([]model.AttendanceRecord, error) {
	var list []model.AttendanceRecord
	err := r.db.Where("user_id = ? AND day LIKE ?", userID, year+"-"+month+"-%").Order("day asc").Find(&list).Error
	return list, err
}

func (r *attendanceRepository) GetAllByMonth(month string, year string) ([]model.AttendanceRecord, error) {
	var list []model.AttendanceRecord
	err := r.db.Where("day LIKE ?", year+"-"+month+"-%").Order("day asc").Find(&list).Error
	return list, err
}

func (r *attendanceRepository) UpdateFlagComment(id uint, comment string) error {
	return r.db.Model(&model.AttendanceRecord{}).Where("id = ?", id).Update("flag_comment", comment).Error
}

func (r *attendanceRepository) Delete(id uint) error {
	return r.db.Delete(&model.AttendanceRecord{}, id).Error
}
