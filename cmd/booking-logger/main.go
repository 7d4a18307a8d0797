// Command booking-logger consumes show.booked events and appends one line
// per booking to logs/booking.log.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/queue"
)

func main() {
	config.LoadDotEnv()

	zl, err := logger.New(logger.Options{
		Dev:   os.Getenv("APP_ENV") == "" || os.Getenv("APP_ENV") == config.DevEnv,
		Level: os.Getenv("LOG_LEVEL"),
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	path := os.Getenv("BOOKING_LOG")
	if path == "" {
		path = "logs/booking.log"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bc := &queue.BookingConsumer{URL: config.AMQPURL(), LogPath: path, Log: zl}
	zl.Info("booking-logger: consuming", zap.String("queue", queue.ShowBookedQueue), zap.String("file", path))
	if err := bc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zl.Fatal("booking-logger stopped", zap.Error(err))
	}
}
