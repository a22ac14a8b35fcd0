package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquestrianHub/pkg/logger"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, msg).Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

func TestPublish_Envelope(t *testing.T) {
	ch := &mockChannel{}
	ch.On("PublishWithContext", "equestrian.events", OrderCreated, mock.Anything).Return(nil)

	p := NewPublisher(ch, "equestrian.events", logger.NewWriter(io.Discard, logger.LevelDebug))
	p.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	p.Publish(context.Background(), OrderCreated, OrderEvent{OrderID: 5, UserID: 2, TotalAmount: decimal.NewFromInt(130), Status: "pending"})

	ch.AssertExpectations(t)
	msg := ch.Calls[0].Arguments.Get(2).(amqp.Publishing)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Body, &envelope))
	assert.Equal(t, msg.MessageId, envelope["event_id"])
	assert.Equal(t, OrderCreated, envelope["type"])
	assert.Equal(t, "2025-01-02T03:04:05Z", envelope["occurred_at"])
	assert.Equal(t, "130", envelope["data"].(map[string]interface{})["total_amount"])
}

func TestPublish_FailureIsSwallowed(t *testing.T) {
	ch := &mockChannel{}
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	p := NewPublisher(ch, "x", logger.NewWriter(io.Discard, logger.LevelDebug))

	assert.NotPanics(t, func() { p.Publish(context.Background(), ReservationCreated, ReservationEvent{}) })
}

func TestPublish_NilPublisher(t *testing.T) {
	var p *Publisher
	assert.NotPanics(t, func() { p.Publish(context.Background(), OrderCreated, nil) })
	assert.NoError(t, p.Close())
}
