package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/errandly/errand-service/internal/db"
	"github.com/errandly/errand-service/internal/repository"
)

type TransactionRepo struct {
	db db.DB
}

func NewTransactionRepo(db db.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

// CreateTx inserts the settlement record. The unique constraint on errand_id
// backs the exactly-one-transaction-per-completion invariant.
func (r *TransactionRepo) CreateTx(ctx context.Context, tx db.Tx, t *repository.ErrandTransaction) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO errand_transactions (
            id, errand_id, customer_id, runner_id, amount, base_amount,
            platform_fee, runner_earnings, payment_status, payment_method, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, t.ID, t.ErrandID, t.CustomerID, t.RunnerID, t.Amount, t.BaseAmount,
		t.PlatformFee, t.RunnerEarnings, t.PaymentStatus, t.PaymentMethod, t.CreatedAt)
	return err
}

func (r *TransactionRepo) GetByErrandID(ctx context.Context, errandID string) (*repository.ErrandTransaction, error) {
	var t repository.ErrandTransaction
	err := r.db.Get(ctx, &t, `
        SELECT id, errand_id, customer_id, runner_id, amount, base_amount,
               platform_fee, runner_earnings, payment_status, payment_method, created_at
        FROM errand_transactions WHERE errand_id = $1
    `, errandID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &t, nil
}
