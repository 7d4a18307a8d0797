package main // Entry point package

import (
	"context"   // context carries cancellation to the server goroutines
	"errors"    // errors recognizes a clean server close
	"log"       // log reports failures before zap is ready
	"net/http"  // http.ErrServerClosed marks a graceful stop
	"os"        // os exposes the signals to listen for
	"os/signal" // signal cancels the context on SIGINT/SIGTERM
	"syscall"   // syscall provides SIGTERM

	"go.uber.org/zap"            // structured logging
	"golang.org/x/sync/errgroup" // errgroup ties the server and shutdown goroutines together

	"github.com/iliyamo/fyyur/internal/config"     // Internal config loader
	"github.com/iliyamo/fyyur/internal/database"   // database connection and migrations
	"github.com/iliyamo/fyyur/internal/handler"    // page handlers
	"github.com/iliyamo/fyyur/internal/logger"     // zap construction
	"github.com/iliyamo/fyyur/internal/repository" // data access
	"github.com/iliyamo/fyyur/internal/router"     // Internal router setup
	"github.com/iliyamo/fyyur/internal/service"    // event publishing
	"github.com/iliyamo/fyyur/internal/tracing"    // OpenTelemetry setup
)

func main() {
	config.LoadDotEnv() // Load .env when present
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(logger.Options{Dev: cfg.IsDev(), Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	if cfg.AutoMigrate {
		if err := database.Migrate(cfg.DB, zl); err != nil {
			return err
		}
	}
	db, err := database.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	rdb, err := config.NewRedisClient(ctx, cfg.Redis)
	switch {
	case err != nil:
		zl.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
	case rdb == nil:
		zl.Info("redis disabled, rate limiting disabled")
	default:
		defer rdb.Close()
	}

	var pub service.Publisher = service.NopPublisher{}
	if cfg.EventsEnabled {
		amqpPub := service.NewAMQPPublisher(cfg.AMQPURL, zl)
		amqpPub.DialTimeout = cfg.AMQPDialTimeout
		pub = amqpPub
	}

	h := handler.New(repository.NewVenueRepo(db), repository.NewArtistRepo(db), repository.NewShowRepo(db), pub, zl)
	e, err := router.New(h, router.Options{
		SecretKey:   cfg.SecretKey,
		FlashTTL:    cfg.FlashTTL,
		RateLimit:   cfg.RateLimit,
		Redis:       rdb,
		Log:         zl,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return err
	}

	addr := ":" + cfg.Port
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("db_driver", cfg.DB.Driver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		zl.Info("shutting down")
		return e.Shutdown(sctx)
	})
	return g.Wait()
}
