package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/errandly/errand-service/internal/db"
	"github.com/errandly/errand-service/internal/repository"
)

type ErrandRepo struct {
	db db.DB
}

func NewErrandRepo(db db.DB) *ErrandRepo {
	return &ErrandRepo{db: db}
}

const errandColumns = `
        id, customer_id, runner_id, category, urgency, location_from, location_to,
        distance_km, base_price, urgency_fee, distance_fee, platform_fee,
        runner_earnings, final_price, status, accepted_at, started_at, completed_at,
        cancelled_at, cancellation_reason, cancelled_by, cancelled_by_id,
        created_at, updated_at
`

func (r *ErrandRepo) CreateTx(ctx context.Context, tx db.Tx, errand *repository.Errand) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO errands (
            id, customer_id, category, urgency, location_from, location_to,
            distance_km, base_price, urgency_fee, distance_fee, platform_fee,
            runner_earnings, final_price, status, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    `, errand.ID, errand.CustomerID, errand.Category, errand.Urgency,
		errand.LocationFrom, errand.LocationTo, errand.DistanceKm,
		errand.BasePrice, errand.UrgencyFee, errand.DistanceFee, errand.PlatformFee,
		errand.RunnerEarnings, errand.FinalPrice, errand.Status,
		errand.CreatedAt, errand.UpdatedAt)
	return err
}

func (r *ErrandRepo) GetByID(ctx context.Context, id string) (*repository.Errand, error) {
	var errand repository.Errand
	err := r.db.Get(ctx, &errand, "SELECT "+errandColumns+" FROM errands WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &errand, nil
}

// GetByIDTx loads the errand under a row lock. Concurrent transitions on the
// same errand serialize here: the second caller blocks until the first
// commits, then observes the committed status.
func (r *ErrandRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Errand, error) {
	var errand repository.Errand
	err := tx.Get(ctx, &errand, "SELECT "+errandColumns+" FROM errands WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &errand, nil
}

func (r *ErrandRepo) UpdateTx(ctx context.Context, tx db.Tx, errand *repository.Errand) error {
	_, err := tx.Exec(ctx, `
        UPDATE errands
        SET
            runner_id = $1,
            status = $2,
            platform_fee = $3,
            runner_earnings = $4,
            final_price = $5,
            accepted_at = $6,
            started_at = $7,
            completed_at = $8,
            cancelled_at = $9,
            cancellation_reason = $10,
            cancelled_by = $11,
            cancelled_by_id = $12,
            updated_at = $13
        WHERE id = $14
    `, errand.RunnerID, errand.Status, errand.PlatformFee, errand.RunnerEarnings,
		errand.FinalPrice, errand.AcceptedAt, errand.StartedAt, errand.CompletedAt,
		errand.CancelledAt, errand.CancellationReason, errand.CancelledBy,
		errand.CancelledByID, errand.UpdatedAt, errand.ID)
	return err
}

func (r *ErrandRepo) GetByCustomerID(ctx context.Context, customerID string, limit int, activeOnly bool) ([]*repository.Errand, error) {
	query := "SELECT " + errandColumns + " FROM errands WHERE customer_id = $1"
	args := []interface{}{customerID}

	if activeOnly {
		query += " AND status NOT IN ('completed', 'cancelled')"
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	var errands []*repository.Errand
	err := r.db.Select(ctx, &errands, query, args...)
	return errands, err
}

func (r *ErrandRepo) GetActive(ctx context.Context) ([]*repository.Errand, error) {
	query := "SELECT " + errandColumns + ` FROM errands
        WHERE status IN ('pending', 'accepted', 'in_progress')
        ORDER BY created_at ASC`
	var errands []*repository.Errand
	err := r.db.Select(ctx, &errands, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active errands: %w", err)
	}
	return errands, nil
}

func (r *ErrandRepo) CountPendingByCustomerTx(ctx context.Context, tx db.Tx, customerID string) (int, error) {
	var count struct {
		Count int `db:"count"`
	}
	err := tx.Get(ctx, &count,
		"SELECT COUNT(*) AS count FROM errands WHERE customer_id = $1 AND status = 'pending'",
		customerID)
	return count.Count, err
}

func (r *ErrandRepo) CountAcceptedByRunnerSinceTx(ctx context.Context, tx db.Tx, runnerID string, since time.Time) (int, error) {
	var count struct {
		Count int `db:"count"`
	}
	err := tx.Get(ctx, &count,
		"SELECT COUNT(*) AS count FROM errands WHERE runner_id = $1 AND accepted_at >= $2",
		runnerID, since)
	return count.Count, err
}

// CountCancelledByActorSinceTx counts cancellations attributed to one user in
// the trailing window, keyed by cancelled_by_id because runner_id is cleared
// when an errand leaves the assigned states.
func (r *ErrandRepo) CountCancelledByActorSinceTx(ctx context.Context, tx db.Tx, actor repository.ActorType, userID string, since time.Time) (int, error) {
	var count struct {
		Count int `db:"count"`
	}
	err := tx.Get(ctx, &count, `
        SELECT COUNT(*) AS count FROM errands
        WHERE cancelled_by = $1 AND cancelled_by_id = $2 AND cancelled_at >= $3
    `, actor, userID, since)
	return count.Count, err
}
