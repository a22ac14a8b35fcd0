package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/infra/storage/pgutil"
	"github.com/m04kA/EquestrianHub/pkg/dbmetrics"
	"github.com/m04kA/EquestrianHub/pkg/psqlbuilder"
)

const table = "time_slots"

var columns = []string{
	"id",
	"day_of_week",
	"start_time",
	"end_time",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий еженедельных шаблонов слотов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActiveByDays активные шаблоны для указанных дней недели
func (r *Repository) ListActiveByDays(ctx context.Context, days []time.Weekday) ([]*domain.TimeSlotTemplate, error) {
	if len(days) == 0 {
		return []*domain.TimeSlotTemplate{}, nil
	}

	dayNumbers := make([]int, len(days))
	for i, d := range days {
		dayNumbers[i] = int(d)
	}

	return r.list(ctx, "ListActiveByDays", squirrel.And{
		squirrel.Eq{"active": true},
		squirrel.Eq{"day_of_week": dayNumbers},
	})
}

// List все шаблоны, для админки. includeInactive=false скрывает выключенные
func (r *Repository) List(ctx context.Context, includeInactive bool) ([]*domain.TimeSlotTemplate, error) {
	if includeInactive {
		return r.list(ctx, "List", nil)
	}
	return r.list(ctx, "List", squirrel.Eq{"active": true})
}

// GetByID получает шаблон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	template, err := scanTemplate(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan template: %v", ErrScanRow, err)
	}

	return template, nil
}

// Create создает шаблон
func (r *Repository) Create(ctx context.Context, template *domain.TimeSlotTemplate) (*domain.TimeSlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("day_of_week", "start_time", "end_time", "active").
		Values(int(template.DayOfWeek), template.StartTime, template.EndTime, template.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&template.ID, &createdAt, &updatedAt)
	if pgutil.IsUniqueViolation(err) {
		return nil, ErrTemplateExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	template.CreatedAt = createdAt.Time
	template.UpdatedAt = updatedAt.Time

	return template, nil
}

// Update полностью перезаписывает шаблон
func (r *Repository) Update(ctx context.Context, template *domain.TimeSlotTemplate) (*domain.TimeSlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("day_of_week", int(template.DayOfWeek)).
		Set("start_time", template.StartTime).
		Set("end_time", template.EndTime).
		Set("active", template.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": template.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrTemplateNotFound
	case pgutil.IsUniqueViolation(err):
		return nil, ErrTemplateExists
	case err != nil:
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	template.CreatedAt = createdAt.Time
	template.UpdatedAt = updatedAt.Time

	return template, nil
}

// Delete удаляет шаблон. Существующие записи не затрагиваются
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.TimeSlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("day_of_week ASC", "start_time ASC")
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	templates := make([]*domain.TimeSlotTemplate, 0)
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return templates, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*domain.TimeSlotTemplate, error) {
	var template domain.TimeSlotTemplate
	var dayOfWeek int
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&template.ID,
		&dayOfWeek,
		&template.StartTime,
		&template.EndTime,
		&template.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	template.DayOfWeek = time.Weekday(dayOfWeek)
	template.CreatedAt = createdAt.Time
	template.UpdatedAt = updatedAt.Time

	return &template, nil
}
