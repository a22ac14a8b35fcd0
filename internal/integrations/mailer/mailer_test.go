package mailer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/mailersend/mailersend-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/pkg/logger"
	"github.com/m04kA/EquestrianHub/pkg/ptr"
	"github.com/m04kA/EquestrianHub/pkg/types"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, message *mailersend.Message) (*mailersend.Response, error) {
	args := m.Called(ctx, message)
	res, _ := args.Get(0).(*mailersend.Response)
	return res, args.Error(1)
}

var testConfig = Config{
	FromEmail:     "bookings@meadowbrook.example",
	FromName:      "Meadowbrook Equestrian",
	OperatorEmail: "tessa.engelbrecht@gmail.com",
	TemplateID:    "tpl-1",
	ProofsBaseURL: "https://hub.example/api/v1/admin/proofs",
}

var customer = &domain.User{ID: 7, Email: "rider@example.com", Name: "Anna", Surname: "Smit", ContactNumber: "0820000000"}

func okResponse() *mailersend.Response {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("X-Message-Id", "msg-1")
	return &mailersend.Response{Response: resp}
}

func newTestMailer(sender Sender) *Mailer {
	m := NewWithSender(sender, testConfig, logger.NewWriter(io.Discard, logger.LevelDebug), nil)
	m.now = func() time.Time { return time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC) }
	return m
}

// captured персонализация отправленного письма
func captured(t *testing.T, sender *mockSender) map[string]interface{} {
	t.Helper()
	require.Len(t, sender.Calls, 1)
	msg := sender.Calls[0].Arguments.Get(1).(*mailersend.Message)
	require.Len(t, msg.Personalization, 1)
	return msg.Personalization[0].Data
}

func TestOrderCreated_UniversalTemplate(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(okResponse(), nil)
	m := newTestMailer(sender)

	order := &domain.OrderDetails{
		Order: domain.Order{
			ID:              15,
			TotalAmount:     decimal.NewFromInt(130),
			PaymentProofRef: ptr.Ptr("7_abc.png"),
			Verification: domain.NewVerification(&domain.VerificationResult{
				Confidence: 88, IsValid: true, AmountMatches: true, IsPaymentProof: true,
				DocumentType: "EFT receipt", Issues: []string{},
			}, time.Now()),
			CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		Items: []domain.OrderItem{
			{ProductName: "Saddle pad", Quantity: 2, PriceAtPurchase: decimal.NewFromInt(50)},
			{ProductName: "Hoof pick", Quantity: 1, PriceAtPurchase: decimal.NewFromInt(30)},
		},
	}

	require.NoError(t, m.OrderCreated(context.Background(), order, customer))

	params := captured(t, sender)
	for _, key := range templateKeys {
		assert.Contains(t, params, key)
	}
	assert.Equal(t, "tessa.engelbrecht@gmail.com", params["to_email"])
	assert.Equal(t, "Order #15", params["subject_line"])
	assert.Equal(t, "Anna Smit", params["customer_name"])
	assert.Equal(t, "• Saddle pad × 2 - R100.00\n• Hoof pick × 1 - R30.00", params["order_items"])
	assert.Equal(t, "R130.00", params["total_amount"])
	assert.Equal(t, domain.DefaultPickupLocation, params["pickup_location"])
	assert.Equal(t, "https://hub.example/api/v1/admin/proofs/7_abc.png", params["payment_proof_url"])
	assert.Equal(t, "AI VERIFIED (88% confidence)", params["ai_verification_summary"])
	assert.Contains(t, params["ai_verification_details"], "• Amount Matches: Yes")
	assert.Equal(t, "", params["lesson_type"])
}

func TestReservationCreated(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(okResponse(), nil)
	m := newTestMailer(sender)

	details := &domain.ReservationDetails{
		Reservation: domain.Reservation{
			ID:          3,
			BookingDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			StartTime:   types.MustTimeString("09:00"),
			EndTime:     types.MustTimeString("10:00"),
			WeeksBooked: 4,
			TotalAmount: decimal.NewFromInt(1800),
		},
		LessonType: domain.LessonType{Name: "Private lesson"},
	}

	require.NoError(t, m.ReservationCreated(context.Background(), details, customer))

	params := captured(t, sender)
	assert.Equal(t, "Booking #3", params["subject_line"])
	assert.Equal(t, "2025-06-10", params["lesson_date"])
	assert.Equal(t, "09:00 - 10:00", params["lesson_time"])
	assert.Equal(t, "4", params["weeks_booked"])
	assert.Equal(t, "No AI verification performed", params["ai_verification_summary"])
	assert.Equal(t, "No payment proof uploaded", params["payment_proof_url"])
}

func TestContactMessage_DefaultPhone(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(okResponse(), nil)
	m := newTestMailer(sender)

	require.NoError(t, m.ContactMessage(context.Background(), ContactForm{
		Name: "Lee", Email: "lee@example.com", Subject: "Livery", Message: "Do you have space?",
	}))

	params := captured(t, sender)
	assert.Equal(t, "Not provided", params["customer_phone"])
	assert.Equal(t, "Do you have space?", params["contact_message"])
	assert.Equal(t, "2025-06-02 09:30", params["date"])
}

func TestOrderStatusChanged_ToCustomer(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(okResponse(), nil)
	m := newTestMailer(sender)

	order := &domain.Order{ID: 9, Status: domain.OrderStatusCompleted, TotalAmount: decimal.NewFromInt(60)}
	require.NoError(t, m.OrderStatusChanged(context.Background(), order, customer))

	msg := sender.Calls[0].Arguments.Get(1).(*mailersend.Message)
	assert.Equal(t, "Your Order #9 - completed", msg.Subject)
	assert.Equal(t, "rider@example.com", msg.Recipients[0].Email)
}

func TestSend_Failure(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil, errors.New("401 unauthorized"))
	m := newTestMailer(sender)

	err := m.ContactMessage(context.Background(), ContactForm{Name: "Lee", Email: "lee@example.com", Message: "hi"})

	assert.ErrorIs(t, err, ErrSendFailed)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}

func TestDisabled_NoOp(t *testing.T) {
	m := NewDisabled(logger.NewWriter(io.Discard, logger.LevelDebug))

	assert.False(t, m.Enabled())
	assert.NoError(t, m.ContactMessage(context.Background(), ContactForm{Name: "x"}))
}
