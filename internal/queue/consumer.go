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

// BookingConsumer listens to the show.booked queue and appends one line per
// booking to a log file.
type BookingConsumer struct {
	URL     string      // broker address
	LogPath string      // file the booking lines are appended to
	Log     *zap.Logger // operational logging
}

// Run connects to RabbitMQ, declares the queue (durable) and consumes until
// ctx is cancelled.  Lost connections are retried with a capped exponential
// backoff.  A message that cannot be handled is rejected without requeue so
// a poison message does not loop forever.
func (bc *BookingConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(bc.URL)
		if err != nil {
			bc.Log.Warn("booking-consumer: failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = bc.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		bc.Log.Warn("booking-consumer: consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (bc *BookingConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		bc.Log.Warn("booking-consumer: set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(ShowBookedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(ShowBookedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	bc.Log.Info("booking-consumer: waiting for bookings", zap.String("queue", ShowBookedQueue))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := bc.HandleMessage(d.Body); err != nil {
				bc.Log.Error("booking-consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event and appends its line to LogPath.
func (bc *BookingConsumer) HandleMessage(body []byte) error {
	var ev ShowBookedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(bc.LogPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(bc.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatBookingLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatBookingLine renders an event as a single human friendly line.
func FormatBookingLine(ev ShowBookedEvent) string {
	return fmt.Sprintf("[%s] Show booked | show_id=%d | artist_id=%d | artist=%q | venue_id=%d | venue=%q | starts=%s\n",
		ev.BookedAt, ev.ShowID, ev.ArtistID, ev.ArtistName, ev.VenueID, ev.VenueName, ev.StartTime)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
