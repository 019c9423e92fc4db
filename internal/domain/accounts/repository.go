package accounts

import (
	"context"
	"time"
)

// User is a registered member of the site. PasswordHash never leaves
// the accounts package boundary; handlers build their own responses.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type CreateUserParams struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	// TokenKey, when set, is stored as the user's auth token in the
	// same transaction as the user row.
	TokenKey string
}

// Repository is the persistence boundary for users and auth tokens.
type Repository interface {
	// CreateUser inserts the user and, when params.TokenKey is set, its
	// auth token atomically. A failure leaves neither behind.
	CreateUser(ctx context.Context, params CreateUserParams) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// ReplaceToken deletes any existing token for the user and stores the
	// new key as a single atomic operation.
	ReplaceToken(ctx context.Context, userID, key string) error
	// DeleteToken removes a token. Deleting an unknown key is not an error.
	DeleteToken(ctx context.Context, key string) error
	GetUserByToken(ctx context.Context, key string) (*User, error)
}
