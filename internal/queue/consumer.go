package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// FavoritesConsumer listens to the favorites.changed queue and appends one
// audit line per event to a log file.
type FavoritesConsumer struct {
	URL     string
	LogPath string
	Log     *zap.Logger
}

// Run consumes favorites.changed until ctx is cancelled.
func (fc *FavoritesConsumer) Run(ctx context.Context) error {
	return consumeLoop{
		name:   "favorites-consumer",
		queue:  FavoritesChangedQueue,
		url:    fc.URL,
		log:    fc.Log,
		handle: fc.HandleMessage,
	}.run(ctx)
}

// HandleMessage decodes one favorites event and appends it to LogPath.
func (fc *FavoritesConsumer) HandleMessage(body []byte) error {
	var ev FavoritesChangedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.UserID == "" || ev.RestaurantID == "" {
		return errors.New("event missing user or restaurant id")
	}
	return appendLine(fc.LogPath, FormatFavoritesLine(ev))
}

// FormatFavoritesLine renders an event as a single audit log line.
func FormatFavoritesLine(ev FavoritesChangedEvent) string {
	return fmt.Sprintf("[%s] Favorite %s | user_id=%s | restaurant_id=%s\n",
		ev.OccurredAt, ev.Action, ev.UserID, ev.RestaurantID)
}

// RegistrationConsumer listens to the user.registered queue and appends one
// line per new account to a log file.  The first name is not logged.
type RegistrationConsumer struct {
	URL     string
	LogPath string
	Log     *zap.Logger
}

// Run consumes user.registered until ctx is cancelled.
func (rc *RegistrationConsumer) Run(ctx context.Context) error {
	return consumeLoop{
		name:   "registration-consumer",
		queue:  UserRegisteredQueue,
		url:    rc.URL,
		log:    rc.Log,
		handle: rc.HandleMessage,
	}.run(ctx)
}

// HandleMessage decodes one registration event and appends it to LogPath.
func (rc *RegistrationConsumer) HandleMessage(body []byte) error {
	var ev UserRegisteredEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.UserID == "" || ev.Email == "" {
		return errors.New("event missing user id or email")
	}
	return appendLine(rc.LogPath, FormatRegistrationLine(ev))
}

// FormatRegistrationLine renders a registration as a single log line.
func FormatRegistrationLine(ev UserRegisteredEvent) string {
	return fmt.Sprintf("[%s] User registered | user_id=%s | email=%s\n",
		ev.OccurredAt, ev.UserID, ev.Email)
}

// consumeLoop connects to the broker, declares the queue and consumes until
// ctx is cancelled.  Broker failures trigger a reconnect with exponential
// backoff capped at 30s.  A message that cannot be handled is rejected
// without requeue so a poison message cannot spin the loop.
type consumeLoop struct {
	name   string
	queue  string
	url    string
	log    *zap.Logger
	handle func(body []byte) error
}

func (l consumeLoop) run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := Dial(ctx, l.url, DefaultDialTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.log.Warn(l.name+": dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = l.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.log.Warn(l.name+": consume loop ended; reconnecting", zap.Error(err))
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (l consumeLoop) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		l.log.Warn(l.name+": set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(l.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, l.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := l.handle(d.Body); err != nil {
			l.log.Error(l.name+": handle message failed", zap.Error(err))
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func appendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
