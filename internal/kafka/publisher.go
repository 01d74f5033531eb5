package kafka

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/errandly/errand-service/internal/db"
	"github.com/errandly/errand-service/internal/repository"
)

type OutboxTaskRepository interface {
	GetProcessableTasksTx(ctx context.Context, tx db.Tx, maxAttempts, limit int) ([]*repository.OutboxTask, error)
	UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
	UpdateTaskStatus(ctx context.Context, db db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}

type PublisherConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

// Publisher drains the outbox: lifecycle events recorded inside engine
// transactions are delivered to Kafka here, strictly after their transaction
// committed.
type Publisher struct {
	db             db.DB
	repo           OutboxTaskRepository
	producer       Producer
	config         PublisherConfig
	wg             sync.WaitGroup
	shutdownSignal chan struct{}
	stopOnce       sync.Once
}

func NewPublisher(db db.DB, repo OutboxTaskRepository, producer Producer, config PublisherConfig) *Publisher {
	return &Publisher{
		db:             db,
		repo:           repo,
		producer:       producer,
		config:         config,
		shutdownSignal: make(chan struct{}),
	}
}

func (p *Publisher) Run(ctx context.Context) {
	log.Println("Starting outbox publisher...")
	p.wg.Add(1)
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil {
				log.Printf("ERROR: outbox publisher failed to process batch: %v", err)
			}
		case <-p.shutdownSignal:
			log.Println("Outbox publisher received shutdown signal, stopping...")
			return
		case <-ctx.Done():
			log.Println("Outbox publisher context cancelled, stopping...")
			return
		}
	}
}

func (p *Publisher) Shutdown() {
	p.stopOnce.Do(func() {
		log.Println("Initiating outbox publisher shutdown...")
		close(p.shutdownSignal)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			log.Println("Outbox publisher shutdown complete.")
		case <-shutdownCtx.Done():
			log.Println("WARN: outbox publisher shutdown timed out.")
		}

		if err := p.producer.Close(); err != nil {
			log.Printf("ERROR: failed to close Kafka producer: %v", err)
		}
	})
}

// processBatch claims a batch under FOR UPDATE SKIP LOCKED, marks it
// PROCESSING, commits, then sends outside the transaction.
func (p *Publisher) processBatch(ctx context.Context) error {
	tx, err := p.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for fetching tasks: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	tasks, err := p.repo.GetProcessableTasksTx(ctx, tx, p.config.MaxAttempts, p.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to get processable tasks: %w", err)
	}

	if len(tasks) == 0 {
		return tx.Commit(ctx)
	}

	for _, task := range tasks {
		err := p.repo.UpdateTaskStatusTx(ctx, tx, task.ID, repository.TaskStatusProcessing, task.Attempts, nil, nil)
		if err != nil {
			return fmt.Errorf("failed to mark task %s as PROCESSING: %w", task.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction after marking tasks as PROCESSING: %w", err)
	}

	for _, task := range tasks {
		select {
		case <-p.shutdownSignal:
			log.Printf("Shutdown signal received during batch processing, task %s not processed.", task.ID)
			return errors.New("publisher shutdown during batch processing")
		case <-ctx.Done():
			log.Printf("Context cancelled during batch processing, task %s not processed.", task.ID)
			return ctx.Err()
		default:
		}

		if err := p.processSingleTask(ctx, task); err != nil {
			log.Printf("ERROR: failed to process task %s: %v", task.ID, err)
		}
	}

	return nil
}

func (p *Publisher) processSingleTask(ctx context.Context, task *repository.OutboxTask) error {
	kafkaKey := []byte(task.ID.String())

	err := p.producer.SendMessage(ctx, task.Topic, kafkaKey, task.Payload)
	if err != nil {
		newAttempts := task.Attempts + 1
		errMsg := err.Error()

		if newAttempts >= p.config.MaxAttempts {
			log.Printf("Task %s reached max attempts (%d), marking as FAILED permanently.", task.ID, p.config.MaxAttempts)
		}

		updateErr := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, repository.TaskStatusFailed, newAttempts, &errMsg, nil)
		if updateErr != nil {
			return fmt.Errorf("failed to update task status after send failure: %w", updateErr)
		}
		return err
	}

	now := time.Now().UTC()
	updateErr := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, repository.TaskStatusDone, task.Attempts, nil, &now)
	if updateErr != nil {
		return fmt.Errorf("failed to update task status after successful send: %w", updateErr)
	}

	return nil
}
