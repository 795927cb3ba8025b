package repository

import (
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user model.User) error {
	return r.db.Create(&user).Error
}

func (r *UserRepository) GetByEmail(email string) (model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return user, err
}

func (r *UserRepository) GetByID(id uint) (model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	return user, err
}

// GetAll returns the roster, every worker expected to check in.
func (r *UserRepository) GetAll() ([]model.User, error) {
	var users []model.User
	err := r.db.Order("name asc").Find(&users).Error
	return users, err
}
