package domain

import "errors"

// Базовая таксономия ошибок. Ошибки слоёв оборачивают их через %w,
// поэтому errors.Is(err, domain.ErrSlotUnavailable) работает сквозь все слои
var (
	// ErrSlotUnavailable у слота нет свободных мест или он совпадает с активной записью
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrInvalidTransition смена статуса из терминального или несовместимого состояния
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation некорректные входные данные
	ErrValidation = errors.New("validation error")

	// ErrUpstreamFailure сбой внешнего сервиса (БД, почта, проверка платежа)
	ErrUpstreamFailure = errors.New("upstream failure")

	// ErrParseFailure ответ внешнего сервиса не удалось разобрать
	ErrParseFailure = errors.New("parse failure")
)
