package verifier

import (
	"errors"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	// ErrInternal ошибка построения или отправки запроса
	ErrInternal = fmt.Errorf("verifier client: %w", domain.ErrUpstreamFailure)

	// ErrInvalidResponse неуспешный статус или пустой ответ модели
	ErrInvalidResponse = fmt.Errorf("verifier client: invalid response: %w", domain.ErrUpstreamFailure)

	// ErrNoJSON в ответе модели не найден JSON-объект
	ErrNoJSON = fmt.Errorf("verifier client: no JSON in model output: %w", domain.ErrParseFailure)

	// ErrEmptyDocument документ не передан
	ErrEmptyDocument = errors.New("verifier client: empty document")
)
