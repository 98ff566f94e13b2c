// Package queue публикует доменные события бронирований в RabbitMQ.
// Публикация не должна ломать основной поток запроса: ошибки логируются
// и возвращаются, вызывающая сторона вправе их игнорировать.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys событий бронирований
const (
	RoutingKeyBookingCreated       = "booking.created"
	RoutingKeyBookingStatusChanged = "booking.status_changed"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BookingEvent полезная нагрузка события бронирования
type BookingEvent struct {
	BookingID int64     `json:"bookingId"`
	SlotID    int64     `json:"slotId"`
	PodcastID int64     `json:"podcastId"`
	UserID    int64     `json:"userId"`
	Status    string    `json:"status"`
	OldStatus string    `json:"oldStatus,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher издатель событий в топик-exchange.
// Соединение ленивое и переустанавливается при обрыве.
type Publisher struct {
	url      string
	exchange string
	log      Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher создает издателя. Соединение устанавливается при первой
// публикации, поэтому недоступный брокер не блокирует старт сервиса.
func NewPublisher(url, exchange string, log Logger) *Publisher {
	return &Publisher{url: url, exchange: exchange, log: log}
}

// NopPublisher возвращает выключенного издателя (все публикации no-op)
func NopPublisher() *Publisher {
	return &Publisher{}
}

// Publish отправляет событие с указанным routing key.
// Сообщения персистентные и переживают рестарт брокера.
func (p *Publisher) Publish(ctx context.Context, routingKey string, event BookingEvent) error {
	if p.url == "" {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("queue: marshal event: %w", err)
	}

	ch, err := p.channel()
	if err != nil {
		p.log.Error("queue: channel unavailable: %v", err)
		return err
	}

	err = ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		// Сбрасываем соединение, следующая публикация переподключится
		p.reset()
		p.log.Error("queue: publish %s failed: %v", routingKey, err)
		return fmt.Errorf("queue: publish %s: %w", routingKey, err)
	}

	return nil
}

// channel возвращает открытый канал, при необходимости устанавливая соединение
func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("queue: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("queue: open channel: %w", err)
	}

	// Durable topic exchange, объявление идемпотентно
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("queue: declare exchange %q: %w", p.exchange, err)
	}

	p.conn = conn
	p.ch = ch

	return ch, nil
}

func (p *Publisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close закрывает соединение с брокером
func (p *Publisher) Close() error {
	p.reset()
	return nil
}
