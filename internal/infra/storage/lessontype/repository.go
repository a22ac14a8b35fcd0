package lessontype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/pkg/dbmetrics"
	"github.com/m04kA/EquestrianHub/pkg/psqlbuilder"
)

var (
	ErrLessonTypeNotFound = errors.New("lessontype.repository: lesson type not found")
	ErrBuildQuery         = errors.New("lessontype.repository: failed to build query")
	ErrExecQuery          = errors.New("lessontype.repository: failed to execute query")
	ErrScanRow            = errors.New("lessontype.repository: failed to scan row")
)

var columns = []string{"id", "name", "description", "duration_minutes", "price_per_hour", "active"}

// Repository справочник типов уроков (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID тип урока по ID, включая неактивные
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.LessonType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("lesson_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var lt domain.LessonType
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&lt.ID, &lt.Name, &lt.Description, &lt.DurationMinutes, &lt.PricePerHour, &lt.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLessonTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan lesson type: %v", ErrScanRow, err)
	}

	return &lt, nil
}

// ListActive активные типы уроков по названию
func (r *Repository) ListActive(ctx context.Context) ([]*domain.LessonType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("lesson_types").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.LessonType, 0)
	for rows.Next() {
		var lt domain.LessonType
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.Description, &lt.DurationMinutes, &lt.PricePerHour, &lt.Active); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		types = append(types, &lt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return types, nil
}
