package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/afrikoop/server/internal/config"
	"github.com/afrikoop/server/internal/domain/accounts"
	"github.com/afrikoop/server/internal/domain/content"
	"github.com/afrikoop/server/internal/domain/events"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store aggregates the postgres-backed repositories sharing one pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres store: pool is nil")
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Accounts() *AccountsRepository {
	return &AccountsRepository{pool: s.pool}
}

func (s *Store) Events() *EventsRepository {
	return &EventsRepository{pool: s.pool}
}

func (s *Store) Content() *ContentRepository {
	return &ContentRepository{pool: s.pool}
}

// Interface conformance with the domain persistence boundaries.
var (
	_ accounts.Repository = (*AccountsRepository)(nil)
	_ events.Repository   = (*EventsRepository)(nil)
	_ content.Repository  = (*ContentRepository)(nil)
)

func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// NewPool connects and pings within a bounded window so startup fails
// fast when the database is down.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MaxIdle > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdle)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}
