package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/errandly/errand-service/internal/abuse"
	"github.com/errandly/errand-service/internal/db"
	"github.com/errandly/errand-service/internal/metrics"
	"github.com/errandly/errand-service/internal/pricing"
	"github.com/errandly/errand-service/internal/repository"
)

type CreateInput struct {
	Category     repository.Category
	Urgency      repository.Urgency
	LocationFrom string
	LocationTo   string
	BasePrice    float64
	DistanceKm   float64
}

// Create posts a new errand for a customer. The fee breakdown is computed
// once here and persisted with the errand; completion re-derives it from the
// same stored inputs, so the payout cannot be gamed by later edits.
func (e *Engine) Create(ctx context.Context, customerID string, in CreateInput) (*Details, error) {
	if !in.Category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if !in.Urgency.IsValid() {
		return nil, ErrInvalidUrgency
	}
	if in.DistanceKm < 0 {
		return nil, ErrInvalidDistance
	}

	breakdown, err := pricing.Quote(e.rates, in.BasePrice, in.Category, in.Urgency, in.DistanceKm)
	if err != nil {
		return nil, mapPricingError(err)
	}

	now := e.timeNow().UTC()

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	customer, err := e.users.GetByIDTx(ctx, tx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, e.fail(ctx, tx, "create", ErrCustomerNotFound)
		}
		return nil, e.fail(ctx, tx, "create", fmt.Errorf("failed to get customer: %w", err))
	}
	if !customer.IsActive {
		return nil, e.fail(ctx, tx, "create", ErrAccountInactive)
	}

	pendingCount, err := e.errands.CountPendingByCustomerTx(ctx, tx, customerID)
	if err != nil {
		return nil, e.fail(ctx, tx, "create", fmt.Errorf("failed to count pending errands: %w", err))
	}
	if !e.limits.CanCreate(pendingCount) {
		return nil, e.fail(ctx, tx, "create", ErrTooManyPending)
	}

	errand := &repository.Errand{
		ID:             uuid.New().String(),
		CustomerID:     customerID,
		Category:       in.Category,
		Urgency:        in.Urgency,
		LocationFrom:   in.LocationFrom,
		LocationTo:     in.LocationTo,
		DistanceKm:     in.DistanceKm,
		BasePrice:      breakdown.BasePrice,
		UrgencyFee:     breakdown.UrgencyFee,
		DistanceFee:    breakdown.DistanceFee,
		PlatformFee:    breakdown.PlatformFee,
		RunnerEarnings: breakdown.RunnerEarnings,
		FinalPrice:     breakdown.FinalPrice,
		Status:         repository.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := e.errands.CreateTx(ctx, tx, errand); err != nil {
		return nil, e.fail(ctx, tx, "create", fmt.Errorf("failed to create errand: %w", err))
	}

	if err := e.recordEvent(ctx, tx, errand.ID, errand.Status, customerID, now); err != nil {
		return nil, e.fail(ctx, tx, "create", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ErrandsCreatedTotal.Inc()
	e.logger.Info("errand created",
		zap.String("errand_id", errand.ID),
		zap.String("customer_id", customerID),
		zap.String("category", string(in.Category)),
		zap.Float64("final_price", breakdown.FinalPrice),
	)
	e.afterCommit(ctx, errand, customerID, now)

	return &Details{Errand: *errand}, nil
}

// Accept claims a pending errand for a runner. The errand row lock taken
// before the status read serializes racing claims: exactly one caller sees
// status=pending, everyone behind it observes the committed assignment.
func (e *Engine) Accept(ctx context.Context, errandID, userID string) (*Details, error) {
	now := e.timeNow().UTC()

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	errand, err := e.errands.GetByIDTx(ctx, tx, errandID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, e.fail(ctx, tx, "accept", ErrErrandNotFound)
		}
		return nil, e.fail(ctx, tx, "accept", fmt.Errorf("failed to get errand: %w", err))
	}

	runner, err := e.runners.GetByUserIDTx(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, e.fail(ctx, tx, "accept", ErrRunnerNotFound)
		}
		return nil, e.fail(ctx, tx, "accept", fmt.Errorf("failed to get runner: %w", err))
	}

	if !runner.IsAvailable || !runner.IsApproved {
		return nil, e.fail(ctx, tx, "accept", ErrRunnerUnavailable)
	}

	acceptedToday, err := e.errands.CountAcceptedByRunnerSinceTx(ctx, tx, userID, abuse.LocalMidnight(e.timeNow()))
	if err != nil {
		return nil, e.fail(ctx, tx, "accept", fmt.Errorf("failed to count accepted errands: %w", err))
	}
	if !e.limits.CanAcceptToday(acceptedToday) {
		return nil, e.fail(ctx, tx, "accept", ErrDailyLimitReached)
	}

	if errand.Status != repository.StatusPending {
		return nil, e.fail(ctx, tx, "accept", ErrErrandUnavailable)
	}
	if errand.RunnerID != nil {
		return nil, e.fail(ctx, tx, "accept", ErrErrandAlreadyAssigned)
	}
	if errand.CustomerID == userID {
		return nil, e.fail(ctx, tx, "accept", ErrSelfAcceptance)
	}

	errand.RunnerID = &userID
	errand.Status = repository.StatusAccepted
	errand.AcceptedAt = &now
	errand.UpdatedAt = now
	if err := e.errands.UpdateTx(ctx, tx, errand); err != nil {
		return nil, e.fail(ctx, tx, "accept", fmt.Errorf("failed to update errand: %w", err))
	}

	runner.IsAvailable = false
	runner.UpdatedAt = now
	if err := e.runners.UpdateTx(ctx, tx, runner); err != nil {
		return nil, e.fail(ctx, tx, "accept", fmt.Errorf("failed to update runner: %w", err))
	}

	if err := e.recordEvent(ctx, tx, errand.ID, errand.Status, userID, now); err != nil {
		return nil, e.fail(ctx, tx, "accept", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ErrandsAcceptedTotal.Inc()
	e.logger.Info("errand accepted",
		zap.String("errand_id", errand.ID),
		zap.String("runner_user_id", userID),
	)
	e.afterCommit(ctx, errand, userID, now)

	return &Details{Errand: *errand, Runner: runner}, nil
}

// Start moves an accepted errand to in_progress. Only the assigned runner may
// call it.
func (e *Engine) Start(ctx context.Context, errandID, userID string) (*Details, error) {
	now := e.timeNow().UTC()

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	errand, err := e.errands.GetByIDTx(ctx, tx, errandID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, e.fail(ctx, tx, "start", ErrErrandNotFound)
		}
		return nil, e.fail(ctx, tx, "start", fmt.Errorf("failed to get errand: %w", err))
	}

	if errand.RunnerID == nil || *errand.RunnerID != userID {
		return nil, e.fail(ctx, tx, "start", ErrNotAssignedRunner)
	}
	if errand.Status != repository.StatusAccepted {
		return nil, e.fail(ctx, tx, "start", ErrInvalidStatusTransition)
	}

	errand.Status = repository.StatusInProgress
	errand.StartedAt = &now
	errand.UpdatedAt = now
	if err := e.errands.UpdateTx(ctx, tx, errand); err != nil {
		return nil, e.fail(ctx, tx, "start", fmt.Errorf("failed to update errand: %w", err))
	}

	if err := e.recordEvent(ctx, tx, errand.ID, errand.Status, userID, now); err != nil {
		return nil, e.fail(ctx, tx, "start", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	e.logger.Info("errand started",
		zap.String("errand_id", errand.ID),
		zap.String("runner_user_id", userID),
	)
	e.afterCommit(ctx, errand, userID, now)

	return &Details{Errand: *errand}, nil
}

// Complete settles an in_progress errand. The breakdown is re-derived from
// the original base price, category, urgency and distance stored at creation,
// never from anything edited since. Runner earnings, completion count, the
// weighted rating and the settlement record all land in the same transaction.
func (e *Engine) Complete(ctx context.Context, errandID, userID string) (*Details, error) {
	now := e.timeNow().UTC()

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	errand, err := e.errands.GetByIDTx(ctx, tx, errandID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, e.fail(ctx, tx, "complete", ErrErrandNotFound)
		}
		return nil, e.fail(ctx, tx, "complete", fmt.Errorf("failed to get errand: %w", err))
	}

	if errand.RunnerID == nil || *errand.RunnerID != userID {
		return nil, e.fail(ctx, tx, "complete", ErrNotAssignedRunner)
	}
	if errand.Status != repository.StatusInProgress {
		return nil, e.fail(ctx, tx, "complete", ErrInvalidStatusTransition)
	}

	runner, err := e.runners.GetByUserIDTx(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, e.fail(ctx, tx, "complete", ErrRunnerNotFound)
		}
		return nil, e.fail(ctx, tx, "complete", fmt.Errorf("failed to get runner: %w", err))
	}

	breakdown, err := pricing.Quote(e.rates, errand.BasePrice, errand.Category, errand.Urgency, errand.DistanceKm)
	if err != nil {
		return nil, e.fail(ctx, tx, "complete", fmt.Errorf("failed to re-derive pricing: %w", err))
	}

	errand.PlatformFee = breakdown.PlatformFee
	errand.RunnerEarnings = breakdown.RunnerEarnings
	errand.FinalPrice = breakdown.FinalPrice
	errand.Status = repository.StatusCompleted
	errand.CompletedAt = &now
	errand.UpdatedAt = now
	if err := e.errands.UpdateTx(ctx, tx, errand); err != nil {
		return nil, e.fail(ctx, tx, "complete", fmt.Errorf("failed to update errand: %w", err))
	}

	runner.Rating = nextRating(runner.Rating, runner.CompletedErrands, provisionalRatingSample)
	runner.CompletedErrands++
	runner.Earnings += breakdown.RunnerEarnings
	runner.IsAvailable = true
	runner.UpdatedAt = now
	if err := e.runners.UpdateTx(ctx, tx, runner); err != nil {
		return nil, e.fail(ctx, tx, "complete", fmt.Errorf("failed to update runner: %w", err))
	}

	settlement := &repository.ErrandTransaction{
		ID:             uuid.New().String(),
		ErrandID:       errand.ID,
		CustomerID:     errand.CustomerID,
		RunnerID:       userID,
		Amount:         breakdown.FinalPrice,
		BaseAmount:     breakdown.BasePrice,
		PlatformFee:    breakdown.PlatformFee,
		RunnerEarnings: breakdown.RunnerEarnings,
		PaymentStatus:  repository.PaymentStatusPending,
		PaymentMethod:  repository.PaymentMethodCash,
		CreatedAt:      now,
	}
	if err := e.transactions.CreateTx(ctx, tx, settlement); err != nil {
		return nil, e.fail(ctx, tx, "complete", fmt.Errorf("failed to create settlement: %w", err))
	}

	if err := e.recordEvent(ctx, tx, errand.ID, errand.Status, userID, now); err != nil {
		return nil, e.fail(ctx, tx, "complete", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ErrandsCompletedTotal.Inc()
	e.logger.Info("errand completed",
		zap.String("errand_id", errand.ID),
		zap.String("runner_user_id", userID),
		zap.Float64("runner_earnings", breakdown.RunnerEarnings),
	)
	e.afterCommit(ctx, errand, userID, now)

	return &Details{Errand: *errand, Runner: runner, Settlement: settlement}, nil
}

// Cancel applies the cancellation policy table and, when a runner was
// assigned, frees them again. The errand row is never deleted; cancelled is a
// terminal status.
func (e *Engine) Cancel(ctx context.Context, errandID, userID, reason string) (*Details, error) {
	now := e.timeNow().UTC()

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	errand, err := e.errands.GetByIDTx(ctx, tx, errandID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, e.fail(ctx, tx, "cancel", ErrErrandNotFound)
		}
		return nil, e.fail(ctx, tx, "cancel", fmt.Errorf("failed to get errand: %w", err))
	}

	var actor repository.ActorType
	switch {
	case errand.CustomerID == userID:
		actor = repository.ActorCustomer
	case errand.RunnerID != nil && *errand.RunnerID == userID:
		actor = repository.ActorRunner
	default:
		return nil, e.fail(ctx, tx, "cancel", ErrCancellationNotAllowed)
	}

	if !cancellationAllowed(errand.Status, actor) {
		return nil, e.fail(ctx, tx, "cancel", ErrCancellationNotAllowed)
	}

	recent, err := e.errands.CountCancelledByActorSinceTx(ctx, tx, actor, userID, e.limits.WindowStart(now))
	if err != nil {
		return nil, e.fail(ctx, tx, "cancel", fmt.Errorf("failed to count cancellations: %w", err))
	}
	if !e.limits.CanCancel(actor, recent) {
		if actor == repository.ActorRunner {
			return nil, e.fail(ctx, tx, "cancel", ErrRunnerTooManyCancellations)
		}
		return nil, e.fail(ctx, tx, "cancel", ErrTooManyCancellations)
	}

	if errand.RunnerID != nil {
		runner, err := e.runners.GetByUserIDTx(ctx, tx, *errand.RunnerID)
		if err != nil {
			return nil, e.fail(ctx, tx, "cancel", fmt.Errorf("failed to get runner: %w", err))
		}
		runner.IsAvailable = true
		runner.UpdatedAt = now
		if err := e.runners.UpdateTx(ctx, tx, runner); err != nil {
			return nil, e.fail(ctx, tx, "cancel", fmt.Errorf("failed to update runner: %w", err))
		}
	}

	errand.Status = repository.StatusCancelled
	errand.CancelledAt = &now
	if reason != "" {
		errand.CancellationReason = &reason
	}
	errand.CancelledBy = &actor
	errand.CancelledByID = &userID
	errand.RunnerID = nil
	errand.UpdatedAt = now
	if err := e.errands.UpdateTx(ctx, tx, errand); err != nil {
		return nil, e.fail(ctx, tx, "cancel", fmt.Errorf("failed to update errand: %w", err))
	}

	if err := e.recordEvent(ctx, tx, errand.ID, errand.Status, userID, now); err != nil {
		return nil, e.fail(ctx, tx, "cancel", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ErrandsCancelledTotal.Inc()
	e.logger.Info("errand cancelled",
		zap.String("errand_id", errand.ID),
		zap.String("cancelled_by", string(actor)),
	)
	e.afterCommit(ctx, errand, userID, now)

	return &Details{Errand: *errand}, nil
}

// fail rolls the transaction back and returns err unchanged. Rollback errors
// are not actionable here; the transition has already failed.
func (e *Engine) fail(ctx context.Context, tx db.Tx, operation string, err error) error {
	_ = tx.Rollback(ctx)
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
	return err
}

// cancellationAllowed is the status x actor policy table.
func cancellationAllowed(status repository.ErrandStatus, actor repository.ActorType) bool {
	switch status {
	case repository.StatusPending:
		return actor == repository.ActorCustomer
	case repository.StatusAccepted:
		return true
	case repository.StatusInProgress:
		return actor == repository.ActorRunner
	default:
		return false
	}
}

// nextRating folds one sample into the running weighted average, clamped to
// the 0..5 scale.
func nextRating(oldRating float64, oldCount int, sample float64) float64 {
	rating := (oldRating*float64(oldCount) + sample) / float64(oldCount+1)
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}

func mapPricingError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrBudgetTooLow):
		return ErrInvalidBudget
	case errors.Is(err, pricing.ErrNegativeDistance):
		return ErrInvalidDistance
	case errors.Is(err, pricing.ErrUnknownCategory):
		return ErrInvalidCategory
	case errors.Is(err, pricing.ErrUnknownUrgency):
		return ErrInvalidUrgency
	default:
		return err
	}
}
