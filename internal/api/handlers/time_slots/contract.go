package time_slots

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/service/timeslots/models"
)

type TimeSlotService interface {
	Create(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error)
	List(ctx context.Context) (*models.TemplateListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
