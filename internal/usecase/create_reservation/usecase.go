package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
	lessonTypeRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/lessontype"
	reservationRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/reservation"
	"github.com/m04kA/EquestrianHub/internal/integrations/events"
	"github.com/m04kA/EquestrianHub/internal/integrations/verifier"
)

const notifyTimeout = 15 * time.Second

// Итоги для метрик
const (
	resultCreated  = "created"
	resultRejected = "rejected"
	resultInvalid  = "invalid"
	resultError    = "error"
)

// UseCase use case создания записи на урок
type UseCase struct {
	reservationRepo ReservationRepository
	templateRepo    TemplateRepository
	lessonTypeRepo  LessonTypeRepository
	userRepo        UserRepository
	proofStore      ProofStore
	verifier        PaymentVerifier
	notifier        Notifier
	publisher       EventPublisher
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	maxProofBytes   int
	logger          Logger

	async func(fn func())
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	templateRepo TemplateRepository,
	lessonTypeRepo LessonTypeRepository,
	userRepo UserRepository,
	proofStore ProofStore,
	verifier PaymentVerifier,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	maxProofBytes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		templateRepo:    templateRepo,
		lessonTypeRepo:  lessonTypeRepo,
		userRepo:        userRepo,
		proofStore:      proofStore,
		verifier:        verifier,
		notifier:        notifier,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		maxProofBytes:   maxProofBytes,
		logger:          logger,
		async:           func(fn func()) { go fn() },
	}
}

// Execute выполняет use case создания записи.
// Проверка оплаты выполняется до транзакции и не блокирует создание;
// занятость слота проверяется в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, lessonType=%d, date=%s, time=%s-%s, weeks=%d",
		req.UserID, req.LessonTypeID, req.Date, req.StartTime, req.EndTime, req.WeeksBooked)

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	parsed, err := validateRequest(req, now, uc.maxProofBytes)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		uc.metrics.RecordReservation(resultInvalid)
		return nil, err
	}

	// 2. Тип урока должен существовать и быть активным
	lessonType, err := uc.lessonTypeRepo.GetByID(ctx, req.LessonTypeID)
	if err != nil {
		if errors.Is(err, lessonTypeRepo.ErrLessonTypeNotFound) {
			uc.logger.Warn("CreateReservation: lesson type id=%d not found", req.LessonTypeID)
			uc.metrics.RecordReservation(resultInvalid)
			return nil, ErrLessonTypeNotFound
		}
		uc.logger.Error("CreateReservation: failed to get lesson type id=%d: %v", req.LessonTypeID, err)
		return nil, fmt.Errorf("%w: failed to get lesson type: %v", ErrInternal, err)
	}
	if !lessonType.Active {
		uc.logger.Warn("CreateReservation: lesson type id=%d is inactive", req.LessonTypeID)
		uc.metrics.RecordReservation(resultInvalid)
		return nil, ErrLessonTypeNotFound
	}

	// 3. Сохраняем подтверждение оплаты
	contentType := strings.ToLower(req.Proof.ContentType)
	proofRef, err := uc.proofStore.Save(ctx, req.UserID, contentType, req.Proof.Data)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to store payment proof: %v", err)
		uc.metrics.RecordReservation(resultError)
		return nil, fmt.Errorf("%w: failed to store payment proof: %v", ErrInternal, err)
	}

	// 4. Проверка оплаты: результат только прикладывается к записи
	verification := uc.verifier.Verify(ctx, verifier.Document{Data: req.Proof.Data, MimeType: contentType}, req.TotalAmount, "")
	uc.logger.Info("CreateReservation: payment proof %s verification=%s", proofRef, verification.Summary)

	var created *domain.Reservation

	// 5. Проверка слота и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Шаблоны дня недели
		templates, err := uc.templateRepo.ListActiveByDays(txCtx, []time.Weekday{parsed.date.Weekday()})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get templates: %v", err)
			return fmt.Errorf("%w: failed to get templates: %v", ErrInternal, err)
		}

		if !hasTemplate(templates, parsed) {
			uc.logger.Warn("CreateReservation: no active template for %s %s-%s", req.Date, parsed.start, parsed.end)
			return fmt.Errorf("%w: %s-%s is not a scheduled slot on %s", ErrSlotNotAvailable, parsed.start, parsed.end, req.Date)
		}

		// 5.2. Записи этой даты, занимающие место (FOR UPDATE)
		reservations, err := uc.reservationRepo.ListWithFilter(txCtx, domain.ReservationFilter{
			StartDate: &parsed.date,
			EndDate:   &parsed.date,
			Statuses:  []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed},
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 5.3. Точный слот и вместимость дня
		if slotTaken(templates, reservations, parsed) {
			uc.logger.Warn("CreateReservation: slot %s %s-%s already taken", req.Date, parsed.start, parsed.end)
			return fmt.Errorf("%w: slot already taken", ErrSlotNotAvailable)
		}

		day := domain.ComputeAvailability(templates, reservations, parsed.date, parsed.date, now)[domain.DateKey(parsed.date)]
		if day.Remaining <= 0 {
			uc.logger.Warn("CreateReservation: day %s is full (%d/%d)", req.Date, day.BookedSlots, day.TotalSlots)
			return fmt.Errorf("%w: day is fully booked", ErrSlotNotAvailable)
		}
		uc.logger.Info("CreateReservation: slot available, %d/%d booked on %s", day.BookedSlots, day.TotalSlots, req.Date)

		// 5.4. Вставка. Уникальный индекс отсекает проигравшего в гонке
		reservation, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			UserID:          req.UserID,
			LessonTypeID:    req.LessonTypeID,
			BookingDate:     parsed.date,
			StartTime:       parsed.start,
			EndTime:         parsed.end,
			WeeksBooked:     req.WeeksBooked,
			TotalAmount:     req.TotalAmount,
			Status:          domain.StatusPending,
			PaymentProofRef: &proofRef,
			Verification:    verification,
			Notes:           req.Notes,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateReservation: lost race for slot %s %s-%s", req.Date, parsed.start, parsed.end)
				return fmt.Errorf("%w: slot already taken", ErrSlotNotAvailable)
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		created = reservation
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			uc.metrics.RecordReservation(resultRejected)
		} else {
			uc.metrics.RecordReservation(resultError)
		}
		uc.discardProof(ctx, proofRef)
		return nil, err
	}

	uc.metrics.RecordReservation(resultCreated)
	uc.logger.Info("CreateReservation: successfully created reservation id=%d", created.ID)

	details := &domain.ReservationDetails{Reservation: *created, LessonType: *lessonType}

	// 6. Побочные эффекты после коммита
	uc.publisher.Publish(ctx, events.ReservationCreated, events.ReservationEvent{
		ReservationID: created.ID,
		UserID:        created.UserID,
		LessonTypeID:  created.LessonTypeID,
		Date:          domain.DateKey(created.BookingDate),
		StartTime:     created.StartTime.String(),
		EndTime:       created.EndTime.String(),
		TotalAmount:   created.TotalAmount,
		Status:        string(created.Status),
		Verification:  string(verification.Summary),
	})
	uc.notifyOperator(ctx, details)

	return &Response{Details: details}, nil
}

func (uc *UseCase) notifyOperator(ctx context.Context, details *domain.ReservationDetails) {
	detached := context.WithoutCancel(ctx)

	uc.async(func() {
		ctx, cancel := context.WithTimeout(detached, notifyTimeout)
		defer cancel()

		customer, err := uc.userRepo.GetByID(ctx, details.UserID)
		if err != nil {
			uc.logger.Error("CreateReservation: load customer id=%d for email: %v", details.UserID, err)
			return
		}
		if err := uc.notifier.ReservationCreated(ctx, details, customer); err != nil {
			uc.logger.Error("CreateReservation: booking email for reservation id=%d: %v", details.ID, err)
		}
	})
}

func hasTemplate(templates []*domain.TimeSlotTemplate, p *parsedRequest) bool {
	for _, t := range templates {
		if t.AppliesTo(p.date) && t.Matches(p.start, p.end) {
			return true
		}
	}
	return false
}

func slotTaken(templates []*domain.TimeSlotTemplate, reservations []*domain.Reservation, p *parsedRequest) bool {
	for _, slot := range domain.SlotsForDate(templates, reservations, p.date) {
		if slot.StartTime.Equal(p.start) && slot.EndTime.Equal(p.end) {
			return slot.Booked
		}
	}
	return false
}

// discardProof удаляет документ, на который не ссылается ни одна запись
func (uc *UseCase) discardProof(ctx context.Context, key string) {
	if err := uc.proofStore.Delete(context.WithoutCancel(ctx), key); err != nil {
		uc.logger.Warn("CreateReservation: failed to delete orphan payment proof %s: %v", key, err)
	}
}
