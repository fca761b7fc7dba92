package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/internal/config"
	mongoInfra "github.com/fastygo/taskboard/internal/infrastructure/mongo"
	pgInfra "github.com/fastygo/taskboard/internal/infrastructure/postgres"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/repository/boltdb"
	mongoRepo "github.com/fastygo/taskboard/repository/mongo"
	"github.com/fastygo/taskboard/repository/postgres"
)

// Open connects the backend selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Driver {
	case config.DriverMongo:
		client, db, err := mongoInfra.Connect(ctx, cfg.Mongo, logger)
		if err != nil {
			return repository.Store{}, fmt.Errorf("mongodb: %w", err)
		}
		return mongoRepo.NewStore(client, db), nil

	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return repository.Store{}, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return repository.Store{}, fmt.Errorf("postgres: %w", err)
		}
		return postgres.NewStore(pool), nil

	case config.DriverBolt:
		db, err := boltdb.Open(cfg.Bolt.Path)
		if err != nil {
			return repository.Store{}, fmt.Errorf("boltdb: %w", err)
		}
		logger.Info("opened bolt store", zap.String("path", cfg.Bolt.Path))
		return db.Store(), nil

	default:
		return repository.Store{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
