package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// EventKind names a notification-worthy moment. The subscriber on the
// other end (the mail subsystem) owns composing and delivering any
// resulting message.
type EventKind string

const (
	EventAccountCreated EventKind = "account.created"
	EventPasswordReset  EventKind = "account.password_reset"
	EventEmailChange    EventKind = "account.email_change"
)

// Event is the payload handed to the notification collaborator. Token
// carries the single-purpose link token for flows that need one.
type Event struct {
	UserID    uuid.UUID `json:"user_id"`
	Kind      EventKind `json:"kind"`
	Email     string    `json:"email,omitempty"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NATSPublisher publishes events on a NATS subject named after the
// event kind.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(string(event.Kind), data); err != nil {
		return err
	}
	slog.Info("published notification event", "kind", event.Kind, "user_id", event.UserID)
	return nil
}

func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// LogPublisher stands in when no NATS server is configured. Events are
// logged and dropped.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, event Event) error {
	slog.Info("notification event (no publisher configured)", "kind", event.Kind, "user_id", event.UserID)
	return nil
}
