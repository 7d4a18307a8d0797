// Package service provides functions to publish domain events to RabbitMQ.
// Publishing never blocks a request from succeeding: publishers log their own
// failures and callers move on.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/metrics"
	q "github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/tracing"
)

// Publisher announces bookings to interested consumers.
type Publisher interface {
	PublishShowBooked(ctx context.Context, event q.ShowBookedEvent) error
}

// NopPublisher drops every event.  It is used when EVENTS_ENABLED is off.
type NopPublisher struct{}

func (NopPublisher) PublishShowBooked(context.Context, q.ShowBookedEvent) error { return nil }

// DefaultDialTimeout bounds connecting to the broker and the AMQP handshake.
const DefaultDialTimeout = 2 * time.Second

// AMQPPublisher publishes to the durable show.booked queue, opening a
// connection per message.
type AMQPPublisher struct {
	URL         string
	DialTimeout time.Duration
	Log         *zap.Logger
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{URL: url, DialTimeout: DefaultDialTimeout, Log: log}
}

// PublishShowBooked publishes event as a persistent JSON message.  Any error
// is logged here and returned; callers do not log it again.
func (p *AMQPPublisher) PublishShowBooked(ctx context.Context, event q.ShowBookedEvent) (err error) {
	ctx, span := tracing.StartSpan(ctx, "publish "+q.ShowBookedQueue)
	defer span.End()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
			p.Log.Warn("rabbitmq: publish show.booked failed", zap.Uint64("show_id", event.ShowID), zap.Error(err))
		}
		metrics.EventsPublishedTotal.WithLabelValues(status).Inc()
	}()

	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.ShowBookedQueue, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",                // default exchange
		q.ShowBookedQueue, // routing key = queue name
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent, // store on disk
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
