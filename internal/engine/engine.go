//go:generate mockgen -source ./engine.go -destination=./mocks/engine.go -package=mock_engine
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/errandly/errand-service/internal/abuse"
	"github.com/errandly/errand-service/internal/db"
	"github.com/errandly/errand-service/internal/pricing"
	"github.com/errandly/errand-service/internal/repository"
)

// provisionalRatingSample is the per-completion rating sample folded into the
// runner's weighted average before the customer submits a real review.
const provisionalRatingSample = 5.0

const outboxTopic = "errand_lifecycle_events"

type ErrandRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, errand *repository.Errand) error
	GetByID(ctx context.Context, id string) (*repository.Errand, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Errand, error)
	UpdateTx(ctx context.Context, tx db.Tx, errand *repository.Errand) error
	GetByCustomerID(ctx context.Context, customerID string, limit int, activeOnly bool) ([]*repository.Errand, error)
	CountPendingByCustomerTx(ctx context.Context, tx db.Tx, customerID string) (int, error)
	CountAcceptedByRunnerSinceTx(ctx context.Context, tx db.Tx, runnerID string, since time.Time) (int, error)
	CountCancelledByActorSinceTx(ctx context.Context, tx db.Tx, actor repository.ActorType, userID string, since time.Time) (int, error)
}

type RunnerRepository interface {
	GetByUserID(ctx context.Context, userID string) (*repository.Runner, error)
	GetByUserIDTx(ctx context.Context, tx db.Tx, userID string) (*repository.Runner, error)
	UpdateTx(ctx context.Context, tx db.Tx, runner *repository.Runner) error
}

type TransactionRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, t *repository.ErrandTransaction) error
	GetByErrandID(ctx context.Context, errandID string) (*repository.ErrandTransaction, error)
}

type UserRepository interface {
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.User, error)
}

type OutboxRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
}

// Emitter is the fire-and-forget real-time notification sink. It is invoked
// strictly after commit and its failures never surface to the caller.
type Emitter interface {
	Emit(ctx context.Context, event repository.LifecycleEvent)
}

// ErrandCache is the read-side materialization of active errands.
type ErrandCache interface {
	Get(errandID string) (*repository.Errand, bool)
	Set(errand *repository.Errand)
}

// Details is the fully-hydrated view returned by every lifecycle operation.
type Details struct {
	Errand     repository.Errand             `json:"errand"`
	Runner     *repository.Runner            `json:"runner,omitempty"`
	Settlement *repository.ErrandTransaction `json:"settlement,omitempty"`
}

// Engine owns the errand state machine. Each transition runs in one database
// transaction that locks the errand row before reading its status, so
// check-then-set races between concurrent callers cannot happen.
type Engine struct {
	db           db.DB
	errands      ErrandRepository
	runners      RunnerRepository
	transactions TransactionRepository
	users        UserRepository
	outbox       OutboxRepository
	emitter      Emitter
	cache        ErrandCache
	limits       abuse.Limits
	rates        pricing.Rates
	logger       *zap.Logger

	timeNow func() time.Time
}

func New(
	database db.DB,
	errands ErrandRepository,
	runners RunnerRepository,
	transactions TransactionRepository,
	users UserRepository,
	outbox OutboxRepository,
	emitter Emitter,
	cache ErrandCache,
	limits abuse.Limits,
	rates pricing.Rates,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		db:           database,
		errands:      errands,
		runners:      runners,
		transactions: transactions,
		users:        users,
		outbox:       outbox,
		emitter:      emitter,
		cache:        cache,
		limits:       limits,
		rates:        rates,
		logger:       logger,
		timeNow:      time.Now,
	}
}

func (e *Engine) Get(ctx context.Context, errandID string) (*Details, error) {
	if cached, ok := e.cache.Get(errandID); ok {
		return e.hydrate(ctx, cached)
	}

	errand, err := e.errands.GetByID(ctx, errandID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrErrandNotFound
		}
		return nil, fmt.Errorf("failed to get errand: %w", err)
	}
	return e.hydrate(ctx, errand)
}

func (e *Engine) ListByCustomer(ctx context.Context, customerID string, lastN int, activeOnly bool) ([]repository.Errand, error) {
	repoErrands, err := e.errands.GetByCustomerID(ctx, customerID, lastN, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list errands: %w", err)
	}

	errands := make([]repository.Errand, len(repoErrands))
	for i, errand := range repoErrands {
		errands[i] = *errand
	}
	return errands, nil
}

// hydrate attaches the runner profile and settlement record where present.
// Association loads are best-effort reads outside any transaction.
func (e *Engine) hydrate(ctx context.Context, errand *repository.Errand) (*Details, error) {
	details := &Details{Errand: *errand}

	runnerUserID := ""
	if errand.RunnerID != nil {
		runnerUserID = *errand.RunnerID
	} else if errand.Status == repository.StatusCancelled && errand.CancelledBy != nil &&
		*errand.CancelledBy == repository.ActorRunner && errand.CancelledByID != nil {
		runnerUserID = *errand.CancelledByID
	}
	if runnerUserID != "" {
		runner, err := e.runners.GetByUserID(ctx, runnerUserID)
		if err == nil {
			details.Runner = runner
		} else if !errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("failed to load runner: %w", err)
		}
	}

	if errand.Status == repository.StatusCompleted {
		settlement, err := e.transactions.GetByErrandID(ctx, errand.ID)
		if err == nil {
			details.Settlement = settlement
		} else if !errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("failed to load settlement: %w", err)
		}
	}

	return details, nil
}

// recordEvent writes the lifecycle event into the outbox inside the calling
// transaction; the kafka publisher picks it up after commit.
func (e *Engine) recordEvent(ctx context.Context, tx db.Tx, errandID string, status repository.ErrandStatus, actorID string, at time.Time) error {
	payload, err := json.Marshal(repository.LifecycleEvent{
		ErrandID:  errandID,
		Status:    status,
		ActorID:   actorID,
		Timestamp: at,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal lifecycle event: %w", err)
	}

	return e.outbox.CreateTx(ctx, tx, &repository.OutboxTask{
		Payload: payload,
		Topic:   outboxTopic,
	})
}

// afterCommit runs the post-commit side effects: cache refresh and the
// best-effort emitter. Nothing here can fail the committed transition.
func (e *Engine) afterCommit(ctx context.Context, errand *repository.Errand, actorID string, at time.Time) {
	e.cache.Set(errand)
	e.emitter.Emit(ctx, repository.LifecycleEvent{
		ErrandID:  errand.ID,
		Status:    errand.Status,
		ActorID:   actorID,
		Timestamp: at,
	})
}
