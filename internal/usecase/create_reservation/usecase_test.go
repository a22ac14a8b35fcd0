package create_reservation

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquestrianHub/internal/domain"
	lessonTypeRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/lessontype"
	reservationRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/reservation"
	"github.com/m04kA/EquestrianHub/internal/integrations/events"
	"github.com/m04kA/EquestrianHub/internal/integrations/verifier"
	"github.com/m04kA/EquestrianHub/pkg/logger"
	"github.com/m04kA/EquestrianHub/pkg/types"
)

// 2025-10-13 понедельник
var testNow = time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type memReservations struct {
	mu       sync.Mutex
	items    []*domain.Reservation
	nextID   int64
	raceNext bool
}

func (m *memReservations) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raceNext {
		return nil, reservationRepo.ErrSlotNotAvailable
	}
	m.nextID++
	created := *r
	created.ID = m.nextID
	created.CreatedAt = testNow
	m.items = append(m.items, &created)
	return &created, nil
}

func (m *memReservations) ListWithFilter(_ context.Context, f domain.ReservationFilter) ([]*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Reservation
	for _, r := range m.items {
		if f.StartDate != nil && r.BookingDate.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && r.BookingDate.After(*f.EndDate) {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, r.Status) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func containsStatus(list []domain.ReservationStatus, s domain.ReservationStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type memTemplates struct{ items []*domain.TimeSlotTemplate }

func (m *memTemplates) ListActiveByDays(_ context.Context, days []time.Weekday) ([]*domain.TimeSlotTemplate, error) {
	var out []*domain.TimeSlotTemplate
	for _, t := range m.items {
		for _, d := range days {
			if t.Active && t.DayOfWeek == d {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

type memLessonTypes struct{ items map[int64]*domain.LessonType }

func (m *memLessonTypes) GetByID(_ context.Context, id int64) (*domain.LessonType, error) {
	lt, ok := m.items[id]
	if !ok {
		return nil, lessonTypeRepo.ErrLessonTypeNotFound
	}
	return lt, nil
}

type memUsers struct{}

func (memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return &domain.User{ID: id, Email: "rider@example.com", Name: "Ann"}, nil
}

type memProofs struct {
	saved   int
	deleted []string
	err     error
}

func (m *memProofs) Save(_ context.Context, userID int64, contentType string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.saved++
	return "2025/10/proof.png", nil
}

func (m *memProofs) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

type stubVerifier struct {
	result   *domain.Verification
	expected decimal.Decimal
}

func (s *stubVerifier) Verify(_ context.Context, _ verifier.Document, expected decimal.Decimal, _ string) *domain.Verification {
	s.expected = expected
	return s.result
}

type recordingNotifier struct {
	calls    int
	customer *domain.User
}

func (n *recordingNotifier) ReservationCreated(_ context.Context, _ *domain.ReservationDetails, customer *domain.User) error {
	n.calls++
	n.customer = customer
	return nil
}

type recordingPublisher struct{ keys []string }

func (p *recordingPublisher) Publish(_ context.Context, key string, _ interface{}) {
	p.keys = append(p.keys, key)
}

type recordingMetrics struct{ results []string }

func (m *recordingMetrics) RecordReservation(result string) { m.results = append(m.results, result) }

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	uc           *UseCase
	reservations *memReservations
	proofs       *memProofs
	verifier     *stubVerifier
	notifier     *recordingNotifier
	publisher    *recordingPublisher
	metrics      *recordingMetrics
}

func mondayTemplate(id int64, start, end string) *domain.TimeSlotTemplate {
	return &domain.TimeSlotTemplate{
		ID:        id,
		DayOfWeek: time.Monday,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
		Active:    true,
	}
}

func newFixture() *fixture {
	f := &fixture{
		reservations: &memReservations{},
		proofs:       &memProofs{},
		verifier: &stubVerifier{result: domain.NewVerification(&domain.VerificationResult{
			IsPaymentProof: true, AmountMatches: true, Confidence: 90, IsValid: true,
		}, testNow)},
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
		metrics:   &recordingMetrics{},
	}

	templates := &memTemplates{items: []*domain.TimeSlotTemplate{
		mondayTemplate(1, "09:00", "10:00"),
		mondayTemplate(2, "10:00", "11:00"),
		mondayTemplate(3, "11:00", "12:00"),
	}}
	lessonTypes := &memLessonTypes{items: map[int64]*domain.LessonType{
		1: {ID: 1, Name: "Private lesson", DurationMinutes: 60, PricePerHour: decimal.NewFromInt(40), Active: true},
		2: {ID: 2, Name: "Retired", Active: false},
	}}

	f.uc = NewUseCase(f.reservations, templates, lessonTypes, memUsers{}, f.proofs, f.verifier,
		f.notifier, f.publisher, f.metrics, inlineTx{}, 1<<20, logger.NewWriter(io.Discard, logger.LevelDebug))
	f.uc.timeProvider = fixedTime{t: testNow}
	f.uc.async = func(fn func()) { fn() }
	return f
}

func (f *fixture) seed(date string, start, end string, status domain.ReservationStatus) {
	d, _ := domain.ParseDate(date)
	f.reservations.nextID++
	f.reservations.items = append(f.reservations.items, &domain.Reservation{
		ID:           f.reservations.nextID,
		UserID:       99,
		LessonTypeID: 1,
		BookingDate:  d,
		StartTime:    types.MustTimeString(start),
		EndTime:      types.MustTimeString(end),
		WeeksBooked:  1,
		TotalAmount:  decimal.NewFromInt(40),
		Status:       status,
	})
}

func validRequest(start, end string) *Request {
	return &Request{
		UserID:       7,
		LessonTypeID: 1,
		Date:         "2025-10-20",
		StartTime:    start,
		EndTime:      end,
		WeeksBooked:  4,
		TotalAmount:  decimal.NewFromInt(160),
		Proof:        PaymentProof{FileName: "receipt.png", ContentType: "image/png", Data: []byte("png")},
	}
}

func TestExecute_BooksLastFreeSlot(t *testing.T) {
	f := newFixture()
	f.seed("2025-10-20", "09:00", "10:00", domain.StatusPending)
	f.seed("2025-10-20", "10:00", "11:00", domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), validRequest("11:00", "12:00"))
	require.NoError(t, err)

	r := resp.Details.Reservation
	assert.Equal(t, domain.StatusPending, r.Status)
	assert.Equal(t, "11:00", r.StartTime.String())
	assert.Equal(t, 4, r.WeeksBooked)
	require.NotNil(t, r.PaymentProofRef)
	assert.Equal(t, "2025/10/proof.png", *r.PaymentProofRef)
	assert.Equal(t, domain.SummaryVerified, r.Verification.Summary)
	assert.Equal(t, "Private lesson", resp.Details.LessonType.Name)
	assert.Empty(t, f.proofs.deleted)

	assert.True(t, f.verifier.expected.Equal(decimal.NewFromInt(160)))
	assert.Equal(t, []string{events.ReservationCreated}, f.publisher.keys)
	assert.Equal(t, 1, f.notifier.calls)
	assert.Equal(t, int64(7), f.notifier.customer.ID)
	assert.Equal(t, []string{resultCreated}, f.metrics.results)
}

func TestExecute_OccupiedSlotRejected(t *testing.T) {
	f := newFixture()
	f.seed("2025-10-20", "09:00", "10:00", domain.StatusPending)

	_, err := f.uc.Execute(context.Background(), validRequest("09:00", "10:00"))

	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, f.reservations.items, 1)
	assert.Empty(t, f.publisher.keys)
	assert.Zero(t, f.notifier.calls)
	assert.Equal(t, []string{resultRejected}, f.metrics.results)
	assert.Equal(t, []string{"2025/10/proof.png"}, f.proofs.deleted)
}

func TestExecute_CancelledAndCompletedFreeTheSlot(t *testing.T) {
	f := newFixture()
	f.seed("2025-10-20", "09:00", "10:00", domain.StatusCancelled)
	f.seed("2025-10-20", "10:00", "11:00", domain.StatusCompleted)

	_, err := f.uc.Execute(context.Background(), validRequest("09:00", "10:00"))
	require.NoError(t, err)
}

func TestExecute_UnscheduledInterval(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), validRequest("09:30", "10:30"))
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	req := validRequest("09:00", "10:00")
	req.Date = "2025-10-21" // вторник без шаблонов
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	assert.Len(t, f.proofs.deleted, 2)
}

func TestExecute_LostRaceMapsToSlotUnavailable(t *testing.T) {
	f := newFixture()
	f.reservations.raceNext = true

	_, err := f.uc.Execute(context.Background(), validRequest("09:00", "10:00"))

	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	assert.Empty(t, f.publisher.keys)
	assert.Equal(t, []string{"2025/10/proof.png"}, f.proofs.deleted)
}

func TestExecute_VerificationFailureDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.verifier.result = domain.FailedVerification(errors.New("upstream timeout"), testNow)

	resp, err := f.uc.Execute(context.Background(), validRequest("09:00", "10:00"))
	require.NoError(t, err)

	v := resp.Details.Verification
	require.NotNil(t, v)
	assert.False(t, v.Success)
	assert.Equal(t, domain.SummaryManualReview, v.Summary)
	assert.Equal(t, domain.StatusPending, resp.Details.Status)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{"past date", func(r *Request) { r.Date = "2025-10-06" }},
		{"bad date", func(r *Request) { r.Date = "20-10-2025" }},
		{"bad time", func(r *Request) { r.StartTime = "9am" }},
		{"start after end", func(r *Request) { r.StartTime, r.EndTime = "12:00", "11:00" }},
		{"zero weeks", func(r *Request) { r.WeeksBooked = 0 }},
		{"too many weeks", func(r *Request) { r.WeeksBooked = 53 }},
		{"zero amount", func(r *Request) { r.TotalAmount = decimal.Zero }},
		{"missing proof", func(r *Request) { r.Proof.Data = nil }},
		{"unsupported proof", func(r *Request) { r.Proof.ContentType = "text/plain" }},
		{"inactive lesson type", func(r *Request) { r.LessonTypeID = 2 }},
		{"unknown lesson type", func(r *Request) { r.LessonTypeID = 42 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest("09:00", "10:00")
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, f.proofs.saved)
			assert.Empty(t, f.reservations.items)
		})
	}
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	f := newFixture()
	req := validRequest("11:00", "12:00")
	req.Date = "2025-10-13"

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_ProofStoreFailure(t *testing.T) {
	f := newFixture()
	f.proofs.err = errors.New("disk full")

	_, err := f.uc.Execute(context.Background(), validRequest("09:00", "10:00"))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.reservations.items)
}
