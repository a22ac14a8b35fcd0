package get_day_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// UseCase use case для получения слотов конкретного дня
type UseCase struct {
	reservationRepo ReservationRepository
	templateRepo    TemplateRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	templateRepo TemplateRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		templateRepo:    templateRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: date=%s", req.Date)

	// 1. Валидация даты
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDate, req.Date)
	}

	now := uc.timeProvider.Now()

	// 2. Шаблоны дня недели
	templates, err := uc.templateRepo.ListActiveByDays(ctx, []time.Weekday{date.Weekday()})
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get templates: %v", err)
		return nil, fmt.Errorf("%w: failed to get templates: %v", ErrInternal, err)
	}

	// 3. Все не отменённые записи даты: completed занимает слот в сетке, но не вместимость
	reservations, err := uc.reservationRepo.ListWithFilter(ctx, domain.ReservationFilter{
		StartDate: &date,
		EndDate:   &date,
		Statuses:  []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted},
	})
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 4. Сводка дня и сетка слотов
	summary := domain.ComputeAvailability(templates, reservations, date, date, now)[domain.DateKey(date)]
	slots := buildSlots(domain.SlotsForDate(templates, reservations, date), date, now)

	uc.logger.Info("GetDaySlots: %d slots on %s, %d remaining", len(slots), req.Date, summary.Remaining)

	return &Response{Date: date, Summary: summary, Slots: slots}, nil
}
