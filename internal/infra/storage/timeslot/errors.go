package timeslot

import "errors"

var (
	// ErrTemplateNotFound шаблон слота не найден
	ErrTemplateNotFound = errors.New("timeslot.repository: template not found")

	// ErrTemplateExists шаблон с тем же (day_of_week, start_time, end_time) уже есть
	ErrTemplateExists = errors.New("timeslot.repository: template already exists")

	ErrBuildQuery = errors.New("timeslot.repository: failed to build query")
	ErrExecQuery  = errors.New("timeslot.repository: failed to execute query")
	ErrScanRow    = errors.New("timeslot.repository: failed to scan row")
)
