package models

import (
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// RegisterRequest регистрация покупателя
type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	ContactNumber string `json:"contactNumber"`
}

// LoginRequest вход по email и паролю
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse профиль без хеша пароля
type UserResponse struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Surname       string    `json:"surname"`
	ContactNumber string    `json:"contactNumber"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SessionResponse выданный токен и профиль
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Surname:       u.Surname,
		ContactNumber: u.ContactNumber,
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt,
	}
}
