package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Config struct {
	URI      string
	Database string
	MaxPool  uint64
	Timeout  time.Duration
}

// ConfigFromEnv reads MongoDB config from environment variables
func ConfigFromEnv() Config {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		// default local
		uri = "mongodb://localhost:27017"
	}
	name := os.Getenv("MONGODB_DATABASE")
	if name == "" {
		name = "portfolio"
	}
	return Config{URI: uri, Database: name, MaxPool: 10, Timeout: 5 * time.Second}
}

// Connect opens a mongo client and verifies connectivity with a ping
func Connect(cfg Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPool).
		SetServerSelectionTimeout(cfg.Timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
