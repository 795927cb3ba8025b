package model

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"column:email;unique;not null"`
	Password string `json:"-"`
	Role     string `json:"role"` // admin / worker
}
