package accounts

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	// BcryptCost is the cost factor for bcrypt password hashing
	BcryptCost = 12

	// TokenLength is the length of issued token keys
	TokenLength = 40

	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ValidationError reports a single invalid registration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// RegisterParams carries the registration payload.
type RegisterParams struct {
	Username string `validate:"required,min=3,max=150"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=8,max=128"`
}

// Service handles registration, login, logout, and token authentication.
type Service struct {
	repo     Repository
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		logger:   logger.With().Str("component", "accounts").Logger(),
	}
}

// Register creates a new user and returns a fresh token key.
func (s *Service) Register(ctx context.Context, params RegisterParams) (string, error) {
	if err := s.validate.Struct(params); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			field := invalid[0]
			return "", ValidationError{Field: field.Field(), Message: "failed " + field.Tag() + " validation"}
		}
		return "", fmt.Errorf("validate registration: %w", err)
	}

	if existing, err := s.repo.GetUserByUsername(ctx, params.Username); err == nil && existing != nil {
		return "", ErrUsernameTaken
	} else if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("check username: %w", err)
	}
	if existing, err := s.repo.GetUserByEmail(ctx, params.Email); err == nil && existing != nil {
		return "", ErrEmailTaken
	} else if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	key, err := generateTokenKey()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	// User and token land in one repository transaction so a failed
	// registration never leaves a user without a credential.
	user, err := s.repo.CreateUser(ctx, CreateUserParams{
		ID:           uuid.NewString(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
		TokenKey:     key,
	})
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", user.Username).Msg("user registered")
	return key, nil
}

// Login verifies credentials and issues a token, replacing any prior
// token for the user.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	key, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")
	return key, nil
}

// Logout invalidates a token. Unknown or already-deleted tokens are
// treated as success so clients can always discard their credential.
func (s *Service) Logout(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.repo.DeleteToken(ctx, key); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Authenticate resolves a token key to its user.
func (s *Service) Authenticate(ctx context.Context, key string) (*User, error) {
	if key == "" {
		return nil, ErrInvalidToken
	}
	user, err := s.repo.GetUserByToken(ctx, key)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup token: %w", err)
	}
	return user, nil
}

func (s *Service) issueToken(ctx context.Context, userID string) (string, error) {
	key, err := generateTokenKey()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	if err := s.repo.ReplaceToken(ctx, userID, key); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return key, nil
}

// generateTokenKey returns a cryptographically random alphanumeric key.
func generateTokenKey() (string, error) {
	buf := make([]byte, TokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf), nil
}
