package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/errandly/errand-service/internal/db"
	"github.com/errandly/errand-service/internal/repository"
)

type UserRepo struct {
	db db.DB
}

func NewUserRepo(db db.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = "id, username, password, user_type, is_active, created_at"

func (r *UserRepo) CreateUser(ctx context.Context, username, password string, userType repository.UserType) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		"INSERT INTO users (username, password, user_type, is_active) VALUES ($1, $2, $3, TRUE)",
		username, string(hashedPassword), userType)
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	var user repository.User
	err := r.db.Get(ctx, &user, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.User, error) {
	var user repository.User
	err := tx.Get(ctx, &user, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ValidateUser checks basic-auth credentials and returns the matching user.
func (r *UserRepo) ValidateUser(ctx context.Context, username, password string) (*repository.User, error) {
	var user repository.User
	err := r.db.Get(ctx, &user, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return &user, nil
}
