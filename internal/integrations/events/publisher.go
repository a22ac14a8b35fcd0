package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher публикует доменные события в topic exchange.
// Nil или выключенный Publisher ничего не делает, ошибки только логируются
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  Channel
	exchange string
	log      Logger
	now      func() time.Time
}

// Dial подключается к брокеру и объявляет durable topic exchange
func Dial(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("events: declare exchange %s: %w", exchange, err)
	}

	p := NewPublisher(ch, exchange, log)
	p.conn = conn
	return p, nil
}

// NewPublisher publisher поверх готового канала
func NewPublisher(ch Channel, exchange string, log Logger) *Publisher {
	return &Publisher{channel: ch, exchange: exchange, log: log, now: time.Now}
}

// Publish отправляет событие. Не возвращает ошибку: сбой брокера не ломает основной сценарий
func (p *Publisher) Publish(ctx context.Context, routingKey string, data interface{}) {
	if p == nil || p.channel == nil {
		return
	}

	envelope := Envelope{
		EventID:    uuid.NewString(),
		Type:       routingKey,
		OccurredAt: p.now().UTC(),
		Data:       data,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		p.log.Error("Publish %s: marshal event: %v", routingKey, err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    envelope.EventID,
		Timestamp:    envelope.OccurredAt,
		Type:         routingKey,
		Body:         body,
	})
	if err != nil {
		p.log.Error("Publish %s: event_id=%s: %v", routingKey, envelope.EventID, err)
		return
	}

	p.log.Info("Published %s: event_id=%s", routingKey, envelope.EventID)
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			return fmt.Errorf("events: close channel: %w", err)
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
