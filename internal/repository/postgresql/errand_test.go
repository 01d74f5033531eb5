package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "github.com/errandly/errand-service/internal/db/mocks"
	"github.com/errandly/errand-service/internal/repository"
	"github.com/errandly/errand-service/internal/repository/postgresql"
)

func testErrand() *repository.Errand {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	return &repository.Errand{
		ID:             "errand-123",
		CustomerID:     "cust-456",
		Category:       repository.CategoryDelivery,
		Urgency:        repository.UrgencyStandard,
		LocationFrom:   "12 North Ave",
		LocationTo:     "88 South St",
		DistanceKm:     3.5,
		BasePrice:      20.0,
		DistanceFee:    17.5,
		PlatformFee:    5.63,
		RunnerEarnings: 31.87,
		FinalPrice:     43.13,
		Status:         repository.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestErrandRepo_CreateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewErrandRepo(mockDB)

		errand := testErrand()

		mockTx.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(errand.ID),
			gomock.Eq(errand.CustomerID),
			gomock.Eq(errand.Category),
			gomock.Eq(errand.Urgency),
			gomock.Eq(errand.LocationFrom),
			gomock.Eq(errand.LocationTo),
			gomock.Eq(errand.DistanceKm),
			gomock.Eq(errand.BasePrice),
			gomock.Eq(errand.UrgencyFee),
			gomock.Eq(errand.DistanceFee),
			gomock.Eq(errand.PlatformFee),
			gomock.Eq(errand.RunnerEarnings),
			gomock.Eq(errand.FinalPrice),
			gomock.Eq(errand.Status),
			gomock.Eq(errand.CreatedAt),
			gomock.Eq(errand.UpdatedAt),
		).Return(nil, nil)

		err := repo.CreateTx(ctx, mockTx, errand)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewErrandRepo(mockDB)

		expectedErr := errors.New("database error")

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any()).Return(nil, expectedErr)

		err := repo.CreateTx(ctx, mockTx, testErrand())
		assert.Equal(t, expectedErr, err)
	})
}

func TestErrandRepo_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("errand found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewErrandRepo(mockDB)

		errand := testErrand()

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(errand.ID)).
			DoAndReturn(func(_ context.Context, dest *repository.Errand, _ string, _ string) error {
				*dest = *errand
				return nil
			})

		got, err := repo.GetByID(ctx, errand.ID)
		assert.NoError(t, err)
		assert.Equal(t, errand, got)
	})

	t.Run("errand not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewErrandRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		got, err := repo.GetByID(ctx, "non-existent-id")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, got)
	})
}

func TestErrandRepo_GetByIDTx(t *testing.T) {
	ctx := context.Background()

	t.Run("locking read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewErrandRepo(mockDB)

		errand := testErrand()

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(errand.ID)).
			DoAndReturn(func(_ context.Context, dest *repository.Errand, query string, _ string) error {
				assert.Contains(t, query, "FOR UPDATE")
				*dest = *errand
				return nil
			})

		got, err := repo.GetByIDTx(ctx, mockTx, errand.ID)
		assert.NoError(t, err)
		assert.Equal(t, errand, got)
	})

	t.Run("errand not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewErrandRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		got, err := repo.GetByIDTx(ctx, mockTx, "ghost")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, got)
	})
}

func TestErrandRepo_UpdateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewErrandRepo(mockDB)

		runnerID := "runner-user-1"
		errand := testErrand()
		errand.RunnerID = &runnerID
		errand.Status = repository.StatusAccepted

		mockTx.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(errand.RunnerID),
			gomock.Eq(errand.Status),
			gomock.Eq(errand.PlatformFee),
			gomock.Eq(errand.RunnerEarnings),
			gomock.Eq(errand.FinalPrice),
			gomock.Eq(errand.AcceptedAt),
			gomock.Eq(errand.StartedAt),
			gomock.Eq(errand.CompletedAt),
			gomock.Eq(errand.CancelledAt),
			gomock.Eq(errand.CancellationReason),
			gomock.Eq(errand.CancelledBy),
			gomock.Eq(errand.CancelledByID),
			gomock.Eq(errand.UpdatedAt),
			gomock.Eq(errand.ID),
		).Return(nil, nil)

		err := repo.UpdateTx(ctx, mockTx, errand)
		assert.NoError(t, err)
	})
}

func TestErrandRepo_GetByCustomerID(t *testing.T) {
	ctx := context.Background()

	t.Run("active only with limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewErrandRepo(mockDB)

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("cust-456"), gomock.Eq(5)).
			DoAndReturn(func(_ context.Context, dest *[]*repository.Errand, query string, _ ...interface{}) error {
				assert.Contains(t, query, "status NOT IN ('completed', 'cancelled')")
				assert.Contains(t, query, "LIMIT $2")
				*dest = []*repository.Errand{testErrand()}
				return nil
			})

		errands, err := repo.GetByCustomerID(ctx, "cust-456", 5, true)
		assert.NoError(t, err)
		assert.Len(t, errands, 1)
	})

	t.Run("full history", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewErrandRepo(mockDB)

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("cust-456")).
			DoAndReturn(func(_ context.Context, dest *[]*repository.Errand, query string, _ string) error {
				assert.NotContains(t, query, "LIMIT")
				return nil
			})

		_, err := repo.GetByCustomerID(ctx, "cust-456", 0, false)
		assert.NoError(t, err)
	})
}

func TestErrandRepo_Counters(t *testing.T) {
	ctx := context.Background()
	since := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("pending by customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewErrandRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("cust-456")).
			DoAndReturn(func(_ context.Context, dest *struct {
				Count int `db:"count"`
			}, _ string, _ string) error {
				dest.Count = 7
				return nil
			})

		count, err := repo.CountPendingByCustomerTx(ctx, mockTx, "cust-456")
		assert.NoError(t, err)
		assert.Equal(t, 7, count)
	})

	t.Run("accepted by runner since midnight", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewErrandRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("runner-1"), gomock.Eq(since)).
			DoAndReturn(func(_ context.Context, dest *struct {
				Count int `db:"count"`
			}, _ string, _ ...interface{}) error {
				dest.Count = 15
				return nil
			})

		count, err := repo.CountAcceptedByRunnerSinceTx(ctx, mockTx, "runner-1", since)
		assert.NoError(t, err)
		assert.Equal(t, 15, count)
	})

	t.Run("cancellations by actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewErrandRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq(repository.ActorRunner), gomock.Eq("runner-1"), gomock.Eq(since)).
			DoAndReturn(func(_ context.Context, dest *struct {
				Count int `db:"count"`
			}, _ string, _ ...interface{}) error {
				dest.Count = 2
				return nil
			})

		count, err := repo.CountCancelledByActorSinceTx(ctx, mockTx, repository.ActorRunner, "runner-1", since)
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
