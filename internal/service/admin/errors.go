package admin

import "errors"

var (
	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("admin.service: internal error")
)
