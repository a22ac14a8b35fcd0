package order

import "errors"

var (
	// ErrOrderNotFound заказ не найден
	ErrOrderNotFound = errors.New("order.repository: order not found")

	// ErrStatusConflict условное обновление статуса не затронуло ни одной строки
	ErrStatusConflict = errors.New("order.repository: status precondition failed")

	ErrBuildQuery = errors.New("order.repository: failed to build query")
	ErrExecQuery  = errors.New("order.repository: failed to execute query")
	ErrScanRow    = errors.New("order.repository: failed to scan row")
)
