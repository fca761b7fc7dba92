package repository

import "context"

// Store bundles the repositories of one storage backend.
type Store struct {
	Name     string
	Accounts AccountRepository
	Tasks    TaskRepository

	// Ping reports backend reachability for health checks.
	Ping func(ctx context.Context) error
	// Close releases the backend.
	Close func(ctx context.Context) error
}
