package queue

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultDialTimeout bounds the TCP connect and the AMQP handshake.
const DefaultDialTimeout = 2 * time.Second

// Dial opens a broker connection.  The timeout covers both the TCP connect
// and the protocol handshake, and is shortened to ctx's deadline when that
// comes first.
func Dial(ctx context.Context, url string, timeout time.Duration) (*amqp.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	if dl, ok := ctx.Deadline(); ok {
		left := time.Until(dl)
		if left <= 0 {
			return nil, context.DeadlineExceeded
		}
		if left < timeout {
			timeout = left
		}
	}
	return amqp.DialConfig(url, amqp.Config{
		Dial:      amqp.DefaultDial(timeout),
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
}
