package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// UseCase use case для календаря доступности по дням
type UseCase struct {
	reservationRepo ReservationRepository
	templateRepo    TemplateRepository
	timeProvider    TimeProvider
	maxDays         int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	templateRepo TemplateRepository,
	maxDays int,
	logger Logger,
) *UseCase {
	if maxDays <= 0 {
		maxDays = domain.DefaultCalendarMaxDays
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		templateRepo:    templateRepo,
		timeProvider:    &RealTimeProvider{},
		maxDays:         maxDays,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: from=%s, to=%s", req.From, req.To)

	// 1. Валидация диапазона
	from, to, err := validateRequest(req, uc.maxDays)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Шаблоны только для встречающихся в диапазоне дней недели
	templates, err := uc.templateRepo.ListActiveByDays(ctx, domain.WeekdaysInRange(from, to))
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get templates: %v", err)
		return nil, fmt.Errorf("%w: failed to get templates: %v", ErrInternal, err)
	}

	// 3. Записи диапазона, занимающие место
	reservations, err := uc.reservationRepo.ListWithFilter(ctx, domain.ReservationFilter{
		StartDate: &from,
		EndDate:   &to,
		Statuses:  domain.CapacityStatuses,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 4. Расчёт по дням
	days := domain.SortedDays(domain.ComputeAvailability(templates, reservations, from, to, uc.timeProvider.Now()))

	uc.logger.Info("GetAvailability: computed %d days from %d templates and %d reservations",
		len(days), len(templates), len(reservations))

	return &Response{From: from, To: to, Days: days}, nil
}
