package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"bookable-slots-generator/internal/config"
	"bookable-slots-generator/internal/core/ports/in"
	"bookable-slots-generator/internal/core/ports/out"
)

// BookingEventListener слушает события жизненного цикла броней и сбрасывает
// кэш слотов затронутых ресурсов. Сами слоты пересчитаются при следующем запросе
type BookingEventListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.SlotGeneratorUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	BookingEventType     string
	BookingEventResource string
)

const (
	BookingEventResourceAll     BookingEventResource = "_all_"
	BookingEventResourceBooking BookingEventResource = "booking"
)

const (
	BookingEventTypeStore      BookingEventType = "store"
	BookingEventTypeInvalidate BookingEventType = "invalidate"
)

type BookingEventRoutingKey struct {
	Source    string
	Receiver  string
	Resource  BookingEventResource
	EventType BookingEventType
}

type BookingEventMessage struct {
	ResourceID uuid.UUID `json:"resource_id"`
}

func NewBookingEventListener(useCase in.SlotGeneratorUseCase, cfg *config.Config, logger out.LoggerPort) (*BookingEventListener, error) {
	if !cfg.RabbitMq.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMq.AmqpUri,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &BookingEventListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *BookingEventListener) Start(ctx context.Context) error {
	if err := l.startBookingQueue(ctx); err != nil {
		return err
	}

	l.logger.Info("booking.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.BookingQueueName,
	})

	return nil
}

func (l *BookingEventListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *BookingEventListener) startBookingQueue(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMq.QueueConfig.BookingQueueName,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMq.QueueConfig.BookingQueueBind,
		l.cfg.RabbitMq.QueueConfig.BookingQueueExchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				if err := l.processBookingMessage(ctx, msg); err != nil {
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

// Пример routingKey:
// booking.slots-generator.booking.<bookingId>.store
// booking.slots-generator.booking.<bookingId>.invalidate
// booking.slots-generator._all_.<anything>.invalidate
func (l *BookingEventListener) parseBookingEventRoutingKey(msg amqp.Delivery) (BookingEventRoutingKey, error) {
	parts := strings.Split(msg.RoutingKey, ".")

	if len(parts) < 5 {
		return BookingEventRoutingKey{}, fmt.Errorf("invalid routing key: %s", msg.RoutingKey)
	}

	return BookingEventRoutingKey{
		Source:    parts[0],
		Receiver:  parts[1],
		Resource:  BookingEventResource(parts[2]),
		EventType: BookingEventType(parts[4]),
	}, nil
}

func (l *BookingEventListener) processBookingMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseBookingEventRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.Resource == BookingEventResourceAll {
		l.logger.Info("booking.message.invalidate_all", out.LogFields{
			"routingKey": msg.RoutingKey,
		})
		l.useCase.InvalidateAllSlots(ctx)
		return nil
	}

	if routingKey.Resource != BookingEventResourceBooking {
		return nil
	}

	var event BookingEventMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return err
	}

	l.logger.Info("booking.message.received", out.LogFields{
		"resourceId": event.ResourceID,
		"eventType":  routingKey.EventType,
	})

	// Новая и снятая бронь одинаково меняют набор свободных слотов,
	// в обоих случаях кэш ресурса сбрасывается
	switch routingKey.EventType {
	case BookingEventTypeStore, BookingEventTypeInvalidate:
		l.useCase.InvalidateResourceSlots(ctx, event.ResourceID)
	}

	return nil
}
