package reservations

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquestrianHub/internal/domain"
	reservationRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/reservation"
	"github.com/m04kA/EquestrianHub/internal/integrations/events"
	"github.com/m04kA/EquestrianHub/internal/service/reservations/models"
	"github.com/m04kA/EquestrianHub/pkg/logger"
	"github.com/m04kA/EquestrianHub/pkg/types"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Reservation)
	return r, args.Error(1)
}

func (m *mockRepo) GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*domain.ReservationDetails)
	return d, args.Error(1)
}

func (m *mockRepo) ListWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	r, _ := args.Get(0).([]*domain.Reservation)
	return r, args.Error(1)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, from []domain.ReservationStatus, to domain.ReservationStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockRepo) UpdateNotes(ctx context.Context, id int64, notes *string) error {
	return m.Called(ctx, id, notes).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) CompleteBefore(ctx context.Context, date time.Time) ([]int64, error) {
	args := m.Called(ctx, date)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, data interface{}) {
	m.Called(routingKey, data)
}

type nopMetrics struct{}

func (nopMetrics) RecordTransition(string, string) {}

func newService() (*Service, *mockRepo, *mockPublisher) {
	repo := &mockRepo{}
	pub := &mockPublisher{}
	svc := NewService(repo, pub, nopMetrics{}, logger.NewWriter(io.Discard, logger.LevelDebug))
	return svc, repo, pub
}

func reservation(id, userID int64, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:          id,
		UserID:      userID,
		BookingDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   types.MustTimeString("09:00"),
		EndTime:     types.MustTimeString("10:00"),
		WeeksBooked: 1,
		TotalAmount: decimal.NewFromInt(450),
		Status:      status,
	}
}

func details(r *domain.Reservation) *domain.ReservationDetails {
	return &domain.ReservationDetails{Reservation: *r, LessonType: domain.LessonType{ID: 1, Name: "Private lesson"}}
}

var ctx = context.Background()

func TestConfirm_FromPending(t *testing.T) {
	svc, repo, pub := newService()
	current := reservation(7, 3, domain.StatusPending)
	confirmed := reservation(7, 3, domain.StatusConfirmed)

	repo.On("GetByID", ctx, int64(7)).Return(current, nil)
	repo.On("UpdateStatus", ctx, int64(7), []domain.ReservationStatus{domain.StatusPending}, domain.StatusConfirmed).Return(nil)
	repo.On("GetDetails", ctx, int64(7)).Return(details(confirmed), nil)
	pub.On("Publish", events.ReservationStatusChanged, mock.Anything).Return()

	resp, err := svc.Confirm(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "Private lesson", resp.LessonType.Name)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestConfirm_CancelledIsTerminal(t *testing.T) {
	svc, repo, pub := newService()
	repo.On("GetByID", ctx, int64(7)).Return(reservation(7, 3, domain.StatusCancelled), nil)

	_, err := svc.Confirm(ctx, 7)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestConfirm_FromConfirmedRejected(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("GetByID", ctx, int64(7)).Return(reservation(7, 3, domain.StatusConfirmed), nil)

	_, err := svc.Confirm(ctx, 7)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestComplete_ConcurrentChange(t *testing.T) {
	svc, repo, pub := newService()
	repo.On("GetByID", ctx, int64(7)).Return(reservation(7, 3, domain.StatusConfirmed), nil)
	repo.On("UpdateStatus", ctx, int64(7), mock.Anything, domain.StatusCompleted).Return(reservationRepo.ErrStatusConflict)

	_, err := svc.Complete(ctx, 7)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCancel_OwnerOnly(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("GetByID", ctx, int64(7)).Return(reservation(7, 3, domain.StatusPending), nil)

	_, err := svc.Cancel(ctx, 7, domain.Actor{UserID: 99, Role: domain.RoleCustomer})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_ByOwner(t *testing.T) {
	svc, repo, pub := newService()
	repo.On("GetByID", ctx, int64(7)).Return(reservation(7, 3, domain.StatusConfirmed), nil)
	repo.On("UpdateStatus", ctx, int64(7), []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed}, domain.StatusCancelled).Return(nil)
	repo.On("GetDetails", ctx, int64(7)).Return(details(reservation(7, 3, domain.StatusCancelled)), nil)
	pub.On("Publish", events.ReservationStatusChanged, mock.MatchedBy(func(e events.ReservationEvent) bool {
		return e.PreviousState == "confirmed" && e.Status == "cancelled"
	})).Return()

	resp, err := svc.Cancel(ctx, 7, domain.Actor{UserID: 3, Role: domain.RoleCustomer})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	pub.AssertExpectations(t)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("GetDetails", ctx, int64(1)).Return(nil, reservationRepo.ErrReservationNotFound)

	_, err := svc.GetByID(ctx, 1, domain.Actor{UserID: 1})

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestAnnotate_AnyStatus(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("UpdateNotes", ctx, int64(7), mock.MatchedBy(func(n *string) bool { return n != nil && *n == "bring boots" })).Return(nil)
	repo.On("GetDetails", ctx, int64(7)).Return(details(reservation(7, 3, domain.StatusCompleted)), nil)

	resp, err := svc.Annotate(ctx, 7, "  bring boots ")

	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
}

func TestListAll_InvalidFilter(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.ListAll(ctx, &models.ListReservationsRequest{Statuses: []string{"shipped"}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompletePast_PublishesPerReservation(t *testing.T) {
	svc, repo, pub := newService()
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	repo.On("CompleteBefore", ctx, today).Return([]int64{1, 2}, nil)
	pub.On("Publish", events.ReservationStatusChanged, mock.Anything).Return()

	ids, err := svc.CompletePast(ctx, today)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
	pub.AssertNumberOfCalls(t, "Publish", 2)
}
