package repository

import (
	"context"

	"go-event-registry/internal/model"
	apperrors "go-event-registry/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.UserRecord) (*model.UserRecord, error)
	FindByCallerID(ctx context.Context, callerID string) (*model.UserRecord, error)
	FindByUsername(ctx context.Context, username string) (*model.UserRecord, error)
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *model.UserRecord) (*model.UserRecord, error) {
	query := `
		INSERT INTO usernames (caller_id, username)
		VALUES ($1, $2)
		RETURNING caller_id, username, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		user.CallerID, user.Username,
	).Scan(
		&user.CallerID,
		&user.Username,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepositoryImpl) FindByCallerID(ctx context.Context, callerID string) (*model.UserRecord, error) {
	query := `
		SELECT caller_id, username, created_at
		FROM usernames
		WHERE caller_id = $1
	`
	var user model.UserRecord
	err := r.pool.QueryRow(ctx, query, callerID).Scan(
		&user.CallerID,
		&user.Username,
		&user.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*model.UserRecord, error) {
	query := `
		SELECT caller_id, username, created_at
		FROM usernames
		WHERE username = $1
	`
	var user model.UserRecord
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.CallerID,
		&user.Username,
		&user.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
