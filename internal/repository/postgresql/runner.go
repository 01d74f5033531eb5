package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/errandly/errand-service/internal/db"
	"github.com/errandly/errand-service/internal/repository"
)

type RunnerRepo struct {
	db db.DB
}

func NewRunnerRepo(db db.DB) *RunnerRepo {
	return &RunnerRepo{db: db}
}

const runnerColumns = `
        id, user_id, is_available, is_approved, rating, completed_errands,
        earnings, created_at, updated_at
`

func (r *RunnerRepo) GetByUserID(ctx context.Context, userID string) (*repository.Runner, error) {
	var runner repository.Runner
	err := r.db.Get(ctx, &runner, "SELECT "+runnerColumns+" FROM runners WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &runner, nil
}

// GetByUserIDTx locks the runner row for the duration of the transaction.
// Always lock the errand row first; every transition takes locks in that
// order, which keeps concurrent accept/complete/cancel free of deadlocks.
func (r *RunnerRepo) GetByUserIDTx(ctx context.Context, tx db.Tx, userID string) (*repository.Runner, error) {
	var runner repository.Runner
	err := tx.Get(ctx, &runner, "SELECT "+runnerColumns+" FROM runners WHERE user_id = $1 FOR UPDATE", userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &runner, nil
}

func (r *RunnerRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Runner, error) {
	var runner repository.Runner
	err := tx.Get(ctx, &runner, "SELECT "+runnerColumns+" FROM runners WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &runner, nil
}

// UpdateTx persists the availability/earnings/rating fields. These columns
// are written only from inside a lifecycle transaction.
func (r *RunnerRepo) UpdateTx(ctx context.Context, tx db.Tx, runner *repository.Runner) error {
	_, err := tx.Exec(ctx, `
        UPDATE runners
        SET
            is_available = $1,
            rating = $2,
            completed_errands = $3,
            earnings = $4,
            updated_at = $5
        WHERE id = $6
    `, runner.IsAvailable, runner.Rating, runner.CompletedErrands,
		runner.Earnings, runner.UpdatedAt, runner.ID)
	return err
}
