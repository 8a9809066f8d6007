package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/delivery-price-compare/internal/queue"
)

// EventPublisher publishes domain events.  Handlers treat publishing as
// best effort: a failure is logged by the implementation and never fails
// the request.
type EventPublisher interface {
	PublishFavoritesChanged(ctx context.Context, ev queue.FavoritesChangedEvent)
	PublishUserRegistered(ctx context.Context, ev queue.UserRegisteredEvent)
}

// NopPublisher drops every event.  It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) PublishFavoritesChanged(context.Context, queue.FavoritesChangedEvent) {}
func (NopPublisher) PublishUserRegistered(context.Context, queue.UserRegisteredEvent)     {}

// RabbitPublisher publishes events as persistent JSON messages.  It dials
// the broker per message; event volume here is a handful per user action.
// The dial is bounded by timeout and by the request context, so an
// unreachable broker delays a request by at most that long.
type RabbitPublisher struct {
	url     string
	timeout time.Duration
	log     *zap.Logger
}

// NewRabbitPublisher returns a publisher for the broker at url.
func NewRabbitPublisher(url string, log *zap.Logger) *RabbitPublisher {
	return &RabbitPublisher{url: url, timeout: queue.DefaultDialTimeout, log: log}
}

func (p *RabbitPublisher) PublishFavoritesChanged(ctx context.Context, ev queue.FavoritesChangedEvent) {
	if err := p.publish(ctx, queue.FavoritesChangedQueue, ev); err != nil {
		p.log.Warn("publish favorites event failed",
			zap.String("user_id", ev.UserID), zap.String("action", ev.Action), zap.Error(err))
	}
}

func (p *RabbitPublisher) PublishUserRegistered(ctx context.Context, ev queue.UserRegisteredEvent) {
	if err := p.publish(ctx, queue.UserRegisteredQueue, ev); err != nil {
		p.log.Warn("publish registration event failed", zap.String("user_id", ev.UserID), zap.Error(err))
	}
}

func (p *RabbitPublisher) publish(ctx context.Context, queueName string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := queue.Dial(ctx, p.url, p.timeout)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// durable, not auto-deleted, not exclusive
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	return ch.PublishWithContext(ctx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
