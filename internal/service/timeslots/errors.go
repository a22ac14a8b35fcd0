package timeslots

import (
	"errors"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	// ErrTemplateNotFound возвращается, когда шаблон не найден
	ErrTemplateNotFound = errors.New("time slot not found")

	// ErrTemplateExists шаблон с тем же днём и интервалом уже есть
	ErrTemplateExists = errors.New("time slot already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("timeslots: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("timeslots.service: internal error")
)
