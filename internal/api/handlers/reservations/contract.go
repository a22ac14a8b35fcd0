package reservations

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/service/reservations/models"
)

type ReservationService interface {
	GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error)
	ListUser(ctx context.Context, userID int64) (*models.ReservationListResponse, error)
	ListAll(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error)
	Confirm(ctx context.Context, id int64) (*models.ReservationResponse, error)
	Complete(ctx context.Context, id int64) (*models.ReservationResponse, error)
	Cancel(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error)
	Annotate(ctx context.Context, id int64, notes string) (*models.ReservationResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
