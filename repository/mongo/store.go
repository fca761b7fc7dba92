package mongo

import (
	"context"

	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/fastygo/taskboard/repository"
)

// NewStore bundles the MongoDB repositories with ping and disconnect hooks.
func NewStore(client *mongodrv.Client, db *mongodrv.Database) repository.Store {
	return repository.Store{
		Name:     "mongodb",
		Accounts: NewAccountRepository(db),
		Tasks:    NewTaskRepository(db),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		Close: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	}
}
