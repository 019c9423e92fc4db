package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/afrikoop/server/internal/domain/accounts"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountsRepository struct {
	pool *pgxpool.Pool
}

// CreateUser inserts the user and its initial token in one
// transaction. A failure on either insert rolls back both.
func (r *AccountsRepository) CreateUser(ctx context.Context, params accounts.CreateUserParams) (*accounts.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
INSERT INTO users (id, username, email, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, username, email, password_hash, created_at
`, params.ID, params.Username, params.Email, params.PasswordHash)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_username_key":
				return nil, accounts.ErrUsernameTaken
			case "users_email_key":
				return nil, accounts.ErrEmailTaken
			}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if params.TokenKey != "" {
		if _, err := tx.Exec(ctx, `
INSERT INTO auth_tokens (key, user_id) VALUES ($1, $2)
`, params.TokenKey, user.ID); err != nil {
			return nil, fmt.Errorf("insert token: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return user, nil
}

func (r *AccountsRepository) GetUserByUsername(ctx context.Context, username string) (*accounts.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, username, email, password_hash, created_at
  FROM users
 WHERE username = $1
`, username)
	user, err := scanUser(row)
	return mapUserErr(user, err, "get user by username")
}

func (r *AccountsRepository) GetUserByEmail(ctx context.Context, email string) (*accounts.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, username, email, password_hash, created_at
  FROM users
 WHERE email = $1
`, email)
	user, err := scanUser(row)
	return mapUserErr(user, err, "get user by email")
}

// ReplaceToken swaps the user's token inside one transaction so there
// is never a moment with two valid tokens, and never one with none
// observed as committed.
func (r *AccountsRepository) ReplaceToken(ctx context.Context, userID, key string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete existing token: %w", err)
	}
	if _, err := tx.Exec(ctx, `
INSERT INTO auth_tokens (key, user_id) VALUES ($1, $2)
`, key, userID); err != nil {
		return fmt.Errorf("insert token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *AccountsRepository) DeleteToken(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM auth_tokens WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (r *AccountsRepository) GetUserByToken(ctx context.Context, key string) (*accounts.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT u.id, u.username, u.email, u.password_hash, u.created_at
  FROM users u
  JOIN auth_tokens t ON t.user_id = u.id
 WHERE t.key = $1
`, key)
	user, err := scanUser(row)
	return mapUserErr(user, err, "get user by token")
}

func scanUser(row pgx.Row) (*accounts.User, error) {
	var user accounts.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}

func mapUserErr(user *accounts.User, err error, op string) (*accounts.User, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, accounts.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
