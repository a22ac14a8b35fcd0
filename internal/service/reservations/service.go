package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
	reservationRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/reservation"
	"github.com/m04kA/EquestrianHub/internal/integrations/events"
	"github.com/m04kA/EquestrianHub/internal/service/reservations/models"
)

// Service сервис записей на уроки: чтение, переходы статусов, заметки
type Service struct {
	reservationRepo ReservationRepository
	publisher       EventPublisher
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	reservationRepo ReservationRepository,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetByID запись с типом урока. Доступна владельцу и администратору
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, actor.UserID)

	details, err := s.reservationRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.CanAccess(details.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainDetails(details), nil
}

// ListUser записи пользователя
func (s *Service) ListUser(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	reservations, err := s.reservationRepo.ListWithFilter(ctx, domain.ReservationFilter{UserID: &userID})
	if err != nil {
		s.logger.Error("ListUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUser: fetched %d reservations for user=%d", len(reservations), userID)
	return models.FromDomainReservationList(reservations), nil
}

// ListAll все записи с фильтром (администратор)
func (s *Service) ListAll(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListAll: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reservations, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// Confirm pending -> confirmed (администратор)
func (s *Service) Confirm(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	return s.transition(ctx, "Confirm", id, domain.Actor{Role: domain.RoleAdmin}, domain.StatusConfirmed)
}

// Complete pending|confirmed -> completed (администратор)
func (s *Service) Complete(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	return s.transition(ctx, "Complete", id, domain.Actor{Role: domain.RoleAdmin}, domain.StatusCompleted)
}

// Cancel pending|confirmed -> cancelled. Владелец или администратор
func (s *Service) Cancel(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	return s.transition(ctx, "Cancel", id, actor, domain.StatusCancelled)
}

// Annotate заметки администратора, допустимы в любом статусе
func (s *Service) Annotate(ctx context.Context, id int64, notes string) (*models.ReservationResponse, error) {
	if len(notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	var value *string
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		value = &trimmed
	}

	if err := s.reservationRepo.UpdateNotes(ctx, id, value); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Annotate: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Annotate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Annotate: notes updated for reservation id=%d", id)
	return s.reload(ctx, "Annotate", id)
}

// Delete физическое удаление (администратор)
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: reservation id=%d deleted", id)
	return nil
}

// CompletePast переводит confirmed записи прошедших дат в completed
func (s *Service) CompletePast(ctx context.Context, today time.Time) ([]int64, error) {
	ids, err := s.reservationRepo.CompleteBefore(ctx, today)
	if err != nil {
		s.logger.Error("CompletePast: repository error: %v", err)
		return nil, fmt.Errorf("%w: CompletePast - repository error: %v", ErrInternal, err)
	}

	for _, id := range ids {
		s.metrics.RecordTransition("reservation", string(domain.StatusCompleted))
		s.publisher.Publish(ctx, events.ReservationStatusChanged, events.ReservationEvent{
			ReservationID: id,
			Status:        string(domain.StatusCompleted),
			PreviousState: string(domain.StatusConfirmed),
		})
	}

	return ids, nil
}

// transition общий сценарий смены статуса:
// 1. читаем запись (not found / access denied)
// 2. проверяем переход по таблице
// 3. условный UPDATE ... WHERE status = ANY(sources)
func (s *Service) transition(ctx context.Context, op string, id int64, actor domain.Actor, to domain.ReservationStatus) (*models.ReservationResponse, error) {
	s.logger.Info("%s: reservation id=%d -> %s by user=%d", op, id, to, actor.UserID)

	// 1. Текущее состояние
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !actor.CanAccess(reservation.UserID) {
		s.logger.Warn("%s: access denied for user=%d to reservation id=%d", op, actor.UserID, id)
		return nil, ErrAccessDenied
	}

	// 2. Таблица переходов
	previous := reservation.Status
	if err := reservation.Transition(to); err != nil {
		s.logger.Warn("%s: %v", op, err)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, previous, to)
	}

	// 3. Условное обновление: параллельный переход другого администратора не пройдёт
	if err := s.reservationRepo.UpdateStatus(ctx, id, domain.SourcesFor(to), to); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrStatusConflict):
			s.logger.Warn("%s: reservation id=%d changed concurrently", op, id)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		default:
			s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
			return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
	}

	s.metrics.RecordTransition("reservation", string(to))
	s.publisher.Publish(ctx, events.ReservationStatusChanged, events.ReservationEvent{
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		LessonTypeID:  reservation.LessonTypeID,
		Date:          domain.DateKey(reservation.BookingDate),
		StartTime:     reservation.StartTime.String(),
		EndTime:       reservation.EndTime.String(),
		TotalAmount:   reservation.TotalAmount,
		Status:        string(to),
		PreviousState: string(previous),
	})

	s.logger.Info("%s: reservation id=%d %s -> %s", op, id, previous, to)
	return s.reload(ctx, op, id)
}

func (s *Service) reload(ctx context.Context, op string, id int64) (*models.ReservationResponse, error) {
	details, err := s.reservationRepo.GetDetails(ctx, id)
	if err != nil {
		s.logger.Error("%s: reload reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - reload: %v", ErrInternal, op, err)
	}
	return models.FromDomainDetails(details), nil
}
