package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/infra/storage/pgutil"
	"github.com/m04kA/EquestrianHub/pkg/dbmetrics"
	"github.com/m04kA/EquestrianHub/pkg/psqlbuilder"
)

const (
	ordersTable = "orders"
	itemsTable  = "order_items"
)

var orderColumns = []string{
	"id",
	"user_id",
	"total_amount",
	"status",
	"pickup_location",
	"payment_proof_url",
	"verification",
	"notes",
	"created_at",
	"updated_at",
}

var itemColumns = []string{"id", "order_id", "product_id", "product_name", "quantity", "price"}

// Repository репозиторий заказов и их позиций
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет заказ. Позиции вставляются отдельно через CreateItems в той же транзакции
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	verification, err := pgutil.VerificationValue(order.Verification)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode verification: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert(ordersTable).
		Columns("user_id", "total_amount", "status", "pickup_location", "payment_proof_url", "verification", "notes").
		Values(order.UserID, order.TotalAmount, order.Status, order.PickupLocation, order.PaymentProofRef, verification, order.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&order.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return order, nil
}

// CreateItems вставляет позиции заказа одним запросом и проставляет им ID
func (r *Repository) CreateItems(ctx context.Context, orderID int64, items []domain.OrderItem) ([]domain.OrderItem, error) {
	if len(items) == 0 {
		return items, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(itemsTable).
		Columns("order_id", "product_id", "product_name", "quantity", "price")
	for _, item := range items {
		insert = insert.Values(orderID, item.ProductID, item.ProductName, item.Quantity, item.PriceAtPurchase)
	}

	query, args, err := insert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateItems - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateItems - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// RETURNING отдаёт строки в порядке VALUES
	created := make([]domain.OrderItem, 0, len(items))
	for i := 0; rows.Next(); i++ {
		item := items[i]
		if err := rows.Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("%w: CreateItems - scan id: %v", ErrScanRow, err)
		}
		item.OrderID = orderID
		created = append(created, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateItems - rows error: %v", ErrScanRow, err)
	}

	return created, nil
}

// GetByID получает заказ без позиций
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	return order, nil
}

// GetDetails заказ вместе с позициями
func (r *Repository) GetDetails(ctx context.Context, id int64) (*domain.OrderDetails, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := r.ListItems(ctx, []int64{id})
	if err != nil {
		return nil, err
	}

	return &domain.OrderDetails{Order: *order, Items: items[id]}, nil
}

// ListWithFilter заказы, новые сверху
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From(ordersTable).
		OrderBy("created_at DESC", "id DESC")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Expr("status = ANY(?)", pgutil.StringArray(filter.Statuses)))
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

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithFilter - scan row: %v", ErrScanRow, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - rows error: %v", ErrScanRow, err)
	}

	return orders, nil
}

// ListItems позиции заказов, сгруппированные по order_id
func (r *Repository) ListItems(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	result := make(map[int64][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(itemColumns...).
		From(itemsTable).
		Where(squirrel.Expr("order_id = ANY(?)", pq.Array(orderIDs))).
		OrderBy("order_id ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.PriceAtPurchase); err != nil {
			return nil, fmt.Errorf("%w: ListItems - scan row: %v", ErrScanRow, err)
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListItems - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpdateStatus условный переход: обновляет статус, только если текущий входит в from
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from []domain.OrderStatus, to domain.OrderStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(ordersTable).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("status = ANY(?)", pgutil.StringArray(from))).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "UpdateStatus", query, args, ErrStatusConflict)
}

// UpdateNotes заметки администратора
func (r *Repository) UpdateNotes(ctx context.Context, id int64, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(ordersTable).
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "UpdateNotes", query, args, ErrOrderNotFound)
}

// Delete удаляет позиции, затем сам заказ. Вызывать внутри транзакции
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	itemsQuery, itemsArgs, err := psqlbuilder.Delete(itemsTable).Where(squirrel.Eq{"order_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete items query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, itemsQuery, itemsArgs...); err != nil {
		return fmt.Errorf("%w: Delete - delete items: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Delete(ordersTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "Delete", query, args, ErrOrderNotFound)
}

func execAffectingOne(ctx context.Context, executor dbmetrics.DBExecutor, op, query string, args []interface{}, notAffected error) error {
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

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var createdAt, updatedAt sql.NullTime
	var verification pgutil.NullVerification

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.TotalAmount,
		&order.Status,
		&order.PickupLocation,
		&order.PaymentProofRef,
		&verification,
		&order.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Verification = verification.Verification
	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}
