package auth

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/service/auth/models"
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.SessionResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.SessionResponse, error)
	Me(ctx context.Context, userID int64) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
