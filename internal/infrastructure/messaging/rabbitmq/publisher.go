package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
)

const (
	DefaultExchange = "account.events"

	RoutingAccountRegistered = "account.registered"
	RoutingAccountVerified   = "account.verified"
	RoutingContactSubmitted  = "contact.submitted"

	// Upper bound on waiting for a broker confirm when the caller set no deadline.
	publishWait = 2 * time.Second
)

// Envelope wraps every event body published by the service.
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type Publisher struct {
	url      string
	exchange string

	mu sync.Mutex

	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher dials url and declares exchange as a durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	p := &Publisher{url: url, exchange: exchange}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetConn()
	return nil
}

// ---- account.EventPublisher ----

type registeredData struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	EmailSent bool   `json:"email_sent"`
}

type verifiedData struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

type contactData struct {
	MessageID string `json:"message_id"`
	Email     string `json:"email"`
	Delivered bool   `json:"delivered"`
}

func (p *Publisher) PublishAccountRegistered(ctx context.Context, evt account.AccountRegisteredEvent) error {
	return p.publishJSON(ctx, RoutingAccountRegistered, newEnvelope(RoutingAccountRegistered, evt.OccurredAt, registeredData{
		AccountID: evt.AccountID, Email: evt.Email, Role: evt.Role, EmailSent: evt.EmailSent,
	}))
}

func (p *Publisher) PublishAccountVerified(ctx context.Context, evt account.AccountVerifiedEvent) error {
	return p.publishJSON(ctx, RoutingAccountVerified, newEnvelope(RoutingAccountVerified, evt.OccurredAt, verifiedData{
		AccountID: evt.AccountID, Email: evt.Email,
	}))
}

func (p *Publisher) PublishContactSubmitted(ctx context.Context, evt account.ContactSubmittedEvent) error {
	return p.publishJSON(ctx, RoutingContactSubmitted, newEnvelope(RoutingContactSubmitted, evt.OccurredAt, contactData{
		MessageID: evt.MessageID, Email: evt.Email, Delivered: evt.Delivered,
	}))
}

var _ account.EventPublisher = (*Publisher)(nil)

// ---- internal ----

func newEnvelope(typ string, at time.Time, data any) Envelope {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return Envelope{ID: uuid.NewString(), Type: typ, OccurredAt: at, Data: data}
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		p.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false,
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("exchange declare: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("confirm mode: %w", err)
	}

	p.conn = conn
	p.ch = ch
	return nil
}

func (p *Publisher) ensureConnected() error {
	if p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.resetConn()
	return p.connect()
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, publishWait)
		defer cancel()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureConnected(); err != nil {
		return err
	}

	// Events are fire-and-forget for routing: no consumer bound is not an error.
	dc, err := p.ch.PublishWithDeferredConfirmWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    env.ID,
			Type:         env.Type,
			Timestamp:    env.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		p.resetConn()
		return fmt.Errorf("publish failed: %w", err)
	}

	acked, err := dc.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("rabbitmq confirm: key=%s: %w", routingKey, err)
	}
	if !acked {
		return fmt.Errorf("rabbitmq nack: key=%s deliveryTag=%d", routingKey, dc.DeliveryTag)
	}
	return nil
}

func (p *Publisher) resetConn() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
