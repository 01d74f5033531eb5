package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/errandly/errand-service/internal/abuse"
	"github.com/errandly/errand-service/internal/cache"
	"github.com/errandly/errand-service/internal/db"
	"github.com/errandly/errand-service/internal/engine"
	"github.com/errandly/errand-service/internal/event"
	"github.com/errandly/errand-service/internal/kafka"
	"github.com/errandly/errand-service/internal/logger"
	"github.com/errandly/errand-service/internal/pricing"
	"github.com/errandly/errand-service/internal/repository/postgresql"
	"github.com/errandly/errand-service/internal/server"
)

const notificationsTopic = "errand_notifications"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zl := logger.New()
	defer func() { _ = zl.Sync() }()

	db.LoadEnv()

	database, err := db.NewDb(ctx)
	if err != nil {
		log.Fatalf("Database init error: %v", err)
	}

	errandRepo := postgresql.NewErrandRepo(database)
	runnerRepo := postgresql.NewRunnerRepo(database)
	transactionRepo := postgresql.NewTransactionRepo(database)
	userRepo := postgresql.NewUserRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()

	var producer kafka.Producer
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer = kafka.NewKafkaProducer(strings.Split(brokers, ","))
	} else {
		producer = kafka.NewConsoleProducer()
	}

	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: 2 * time.Second,
		BatchSize:    50,
		MaxAttempts:  5,
	})
	go publisher.Run(ctx)

	emitter := event.NewManager(producer, notificationsTopic, 2, 10, 500*time.Millisecond)
	emitter.Start(ctx)

	errandCache := cache.NewErrandCache(errandRepo)
	if err := errandCache.LoadInitialData(ctx); err != nil {
		log.Printf("WARN: failed to warm errand cache: %v", err)
	}

	lifecycle := engine.New(
		database,
		errandRepo,
		runnerRepo,
		transactionRepo,
		userRepo,
		outboxRepo,
		emitter,
		errandCache,
		abuse.DefaultLimits(),
		pricing.DefaultRates(),
		zl,
	)

	srv := server.New(lifecycle, userRepo)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "9000"
	}

	go func() {
		if err := srv.Run(ctx, port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", port)

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: server shutdown failed: %v", err)
	}
	emitter.Shutdown(shutdownCtx)
	publisher.Shutdown()

	log.Println("Service gracefully stopped")
}
