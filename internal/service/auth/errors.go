package auth

import (
	"errors"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	// ErrEmailTaken email уже зарегистрирован
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials неверный email или пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken токен не прошёл проверку
	ErrInvalidToken = errors.New("invalid token")

	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput некорректные данные регистрации
	ErrInvalidInput = fmt.Errorf("auth: %w", domain.ErrValidation)

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("auth.service: internal error")
)
