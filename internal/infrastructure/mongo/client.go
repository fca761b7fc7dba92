package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/internal/config"
)

// Connect opens a client, verifies it with a ping and returns the configured database.
func Connect(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*mongodrv.Client, *mongodrv.Database, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := options.Client().ApplyURI(cfg.URL)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxPoolSize))
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongodrv.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	db := client.Database(cfg.Database)
	if err := EnsureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	logger.Info("connected to mongodb", zap.String("db", cfg.Database))
	return client, db, nil
}

// EnsureIndexes creates the unique email index and the owner lookup index.
func EnsureIndexes(ctx context.Context, db *mongodrv.Database) error {
	if _, err := db.Collection("accounts").Indexes().CreateOne(ctx, mongodrv.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("accounts_email_unique"),
	}); err != nil {
		return err
	}
	_, err := db.Collection("tasks").Indexes().CreateOne(ctx, mongodrv.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("tasks_owner"),
	})
	return err
}
