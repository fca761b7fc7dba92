package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskboard/repository"
)

// NewStore bundles the Postgres repositories with the pool lifecycle.
func NewStore(pool *pgxpool.Pool) repository.Store {
	return repository.Store{
		Name:     "postgresql",
		Accounts: NewAccountRepository(pool),
		Tasks:    NewTaskRepository(pool),
		Ping:     pool.Ping,
		Close: func(ctx context.Context) error {
			pool.Close()
			return nil
		},
	}
}
