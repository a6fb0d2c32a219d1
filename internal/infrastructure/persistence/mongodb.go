package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig describes the store that holds ticket emails and parsed tickets.
type MongoConfig struct {
	URI      string
	Database string
	Username string
	Password string
	// MaxPoolSize of zero keeps the driver default.
	MaxPoolSize uint64
}

const mongoConnectTimeout = 10 * time.Second

func clientOptions(cfg MongoConfig) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("eticket-service").
		SetConnectTimeout(mongoConnectTimeout)

	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.Username != "" && cfg.Password != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	return opts
}

// NewMongoDatabase connects, pings and returns the configured database. The
// caller disconnects the client through db.Client().
func NewMongoDatabase(ctx context.Context, cfg MongoConfig) (*mongo.Database, error) {
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongo database name is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client.Database(cfg.Database), nil
}
