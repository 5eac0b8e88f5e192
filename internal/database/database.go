package database

import (
	"context"
	"time"

	"kliernav-crm/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type MongodbDB struct {
	DB *mongo.Database
}

// NewDatabase connects to MongoDB when MONGO_URI is configured. The database
// only backs the durable audit sink; entity state stays in-memory, so a nil
// return with no error means "run without durable audit".
func NewDatabase(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*MongodbDB, error) {
	if cfg.MongoURI == "" {
		logger.Info("MONGO_URI not set, audit log is memory-only")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logger.Info("Connected to MongoDB", zap.String("db", cfg.DBName))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return &MongodbDB{DB: client.Database(cfg.DBName)}, nil
}
