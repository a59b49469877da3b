package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/MrKriegler/insurance-premium/internal/platform/config"
)

const (
	maxRetries     = 5
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
)

type MongoClient struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewClient connects and pings the primary, retrying with exponential
// backoff until maxRetries is reached or ctx is done.
func NewClient(ctx context.Context, cfg *config.Config, log *slog.Logger) (*MongoClient, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetAppName("insurance-premium").
		SetTimeout(time.Duration(cfg.StoreOpTimeoutMs) * time.Millisecond)
	connectTimeout := time.Duration(cfg.MongoConnectTimeoutSec) * time.Second

	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		client, err := connect(ctx, clientOpts, connectTimeout)
		if err == nil {
			return &MongoClient{Client: client, DB: client.Database(cfg.MongoDB)}, nil
		}
		if attempt == maxRetries {
			return nil, fmt.Errorf("connect to mongo after %d attempts: %w", maxRetries, err)
		}

		log.Warn("mongo connect failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"err", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

func connect(ctx context.Context, opts *options.ClientOptions, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}
	return client, nil
}

// Ping verifies connectivity (used by /readyz).
func (c *MongoClient) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, readpref.Primary())
}

// Close gracefully disconnects from MongoDB.
func (c *MongoClient) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}
