package reservation

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

const table = "lesson_bookings"

var columns = []string{
	"id",
	"user_id",
	"lesson_type_id",
	"booking_date",
	"start_time",
	"end_time",
	"weeks_booked",
	"total_amount",
	"status",
	"payment_proof_url",
	"verification",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей на уроки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Если в контексте передана активная транзакция, использует её.
// Гонку за один слот закрывает частичный уникальный индекс: 23505 -> ErrSlotNotAvailable
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	verification, err := pgutil.VerificationValue(reservation.Verification)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode verification: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"lesson_type_id",
			"booking_date",
			"start_time",
			"end_time",
			"weeks_booked",
			"total_amount",
			"status",
			"payment_proof_url",
			"verification",
			"notes",
		).
		Values(
			reservation.UserID,
			reservation.LessonTypeID,
			reservation.BookingDate,
			reservation.StartTime,
			reservation.EndTime,
			reservation.WeeksBooked,
			reservation.TotalAmount,
			reservation.Status,
			reservation.PaymentProofRef,
			verification,
			reservation.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&reservation.ID, &createdAt, &updatedAt)
	if pgutil.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s %s-%s", ErrSlotNotAvailable,
			domain.DateKey(reservation.BookingDate), reservation.StartTime, reservation.EndTime)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// GetDetails запись вместе с типом урока
func (r *Repository) GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selected := make([]string, 0, len(columns)+6)
	for _, c := range columns {
		selected = append(selected, "b."+c)
	}
	selected = append(selected,
		"lt.id",
		"lt.name",
		"lt.description",
		"lt.duration_minutes",
		"lt.price_per_hour",
		"lt.active",
	)

	query, args, err := psqlbuilder.Select(selected...).
		From(table + " b").
		Join("lesson_types lt ON lt.id = b.lesson_type_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - build select query: %v", ErrBuildQuery, err)
	}

	var details domain.ReservationDetails
	var createdAt, updatedAt sql.NullTime
	var verification pgutil.NullVerification

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&details.ID,
		&details.UserID,
		&details.LessonTypeID,
		&details.BookingDate,
		&details.StartTime,
		&details.EndTime,
		&details.WeeksBooked,
		&details.TotalAmount,
		&details.Status,
		&details.PaymentProofRef,
		&verification,
		&details.Notes,
		&createdAt,
		&updatedAt,
		&details.LessonType.ID,
		&details.LessonType.Name,
		&details.LessonType.Description,
		&details.LessonType.DurationMinutes,
		&details.LessonType.PricePerHour,
		&details.LessonType.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - scan reservation: %v", ErrScanRow, err)
	}

	details.Verification = verification.Verification
	details.CreatedAt = createdAt.Time
	details.UpdatedAt = updatedAt.Time

	return &details, nil
}

// ListByUser записи пользователя, новые сверху
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	return r.ListWithFilter(ctx, domain.ReservationFilter{UserID: &userID})
}

// ListWithFilter записи с фильтрацией по периоду, статусам, пользователю и типу урока.
//
// Для одной даты сортировка по времени начала, иначе сначала новые.
// Внутри транзакции на одну дату добавляется FOR UPDATE: так создание записи
// блокирует строки дня до коммита
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.LessonTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"lesson_type_id": *filter.LessonTypeID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": domain.DateOnly(*filter.EndDate)})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Expr("status = ANY(?)", pgutil.StringArray(filter.Statuses)))
	}

	if filter.IsSingleDate() {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
		if dbmetrics.IsInTransaction(ctx) {
			selectBuilder = selectBuilder.Suffix("FOR UPDATE")
		}
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus условный переход: обновляет статус, только если текущий входит в from.
// Ноль затронутых строк -> ErrStatusConflict (записи нет или переход недопустим)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from []domain.ReservationStatus, to domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("status = ANY(?)", pgutil.StringArray(from))).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args, ErrStatusConflict)
}

// UpdateNotes заметки администратора (в любом статусе)
func (r *Repository) UpdateNotes(ctx context.Context, id int64, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateNotes", query, args, ErrReservationNotFound)
}

// SetVerification сохраняет результат проверки оплаты
func (r *Repository) SetVerification(ctx context.Context, id int64, verification *domain.Verification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	value, err := pgutil.VerificationValue(verification)
	if err != nil {
		return fmt.Errorf("%w: SetVerification - encode verification: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update(table).
		Set("verification", value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetVerification - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "SetVerification", query, args, ErrReservationNotFound)
}

// Delete физическое удаление записи (только администратор)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args, ErrReservationNotFound)
}

// CompleteBefore переводит confirmed записи с датой строго раньше date в completed
// и возвращает их ID
func (r *Repository) CompleteBefore(ctx context.Context, date time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"booking_date": domain.DateOnly(date)}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CompleteBefore - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CompleteBefore - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: CompleteBefore - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CompleteBefore - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, notAffected error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return notAffected
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime
	var verification pgutil.NullVerification

	err := row.Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.LessonTypeID,
		&reservation.BookingDate,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.WeeksBooked,
		&reservation.TotalAmount,
		&reservation.Status,
		&reservation.PaymentProofRef,
		&verification,
		&reservation.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.Verification = verification.Verification
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс записей
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
