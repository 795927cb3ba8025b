package usecase

import (
	"errors"
	"time"

	"github.com/FrisSoftwareteam/AttendanceApp-V1/config"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/model"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func jwtSecret() []byte {
	return []byte(config.GetEnv("JWT_SECRET", "change-me-in-production"))
}

type UserUsecase struct {
	repo *repository.UserRepository
}

func NewUserUsecase(repo *repository.UserRepository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

func (u *UserUsecase) Register(name, email, password string) error {
	// 1. Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// 2. Store the user; new accounts are workers until promoted
	user := model.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     "worker",
	}
	return u.repo.Create(user)
}

func (u *UserUsecase) Login(email, password string) (string, string, error) {
	// 1. Find the user by email
	user, err := u.repo.GetByEmail(email)
	if err != nil {
		return "", "", errors.New("invalid email or password")
	}

	// 2. Compare the password against the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", errors.New("invalid email or password")
	}

	// 3. Issue a 24h JWT
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", "", err
	}

	return t, user.Name, nil
}
