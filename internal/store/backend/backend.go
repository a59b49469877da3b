// Package backend opens the ApplicationRepo selected by DB_TYPE.
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrKriegler/insurance-premium/internal/core"
	"github.com/MrKriegler/insurance-premium/internal/platform/config"
	"github.com/MrKriegler/insurance-premium/internal/store/dynamo"
	"github.com/MrKriegler/insurance-premium/internal/store/memory"
	"github.com/MrKriegler/insurance-premium/internal/store/mongo"
	"github.com/MrKriegler/insurance-premium/internal/store/sqlstore"
)

// Store is an opened backend. Provision creates the schema it needs and is
// safe to run repeatedly.
type Store struct {
	Name      string
	Repo      core.ApplicationRepo
	Provision func(ctx context.Context) error
	Close     func(ctx context.Context) error
}

// CloseTimeout bounds Shutdown.
const CloseTimeout = 5 * time.Second

func noop(context.Context) error { return nil }

// Shutdown closes the store on a fresh context bounded by CloseTimeout and
// logs any error. It is meant for deferred cleanup after the caller's
// context may already be done.
func (s *Store) Shutdown(log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), CloseTimeout)
	defer cancel()
	if err := s.Close(ctx); err != nil {
		log.Error("failed to close store", "db_type", s.Name, "err", err)
	}
}

// Open connects to the backend named by cfg.DBType.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Store, error) {
	opTimeout := time.Duration(cfg.StoreOpTimeoutMs) * time.Millisecond

	switch cfg.DBType {
	case config.DBMemory:
		return &Store{
			Name:      config.DBMemory,
			Repo:      memory.NewApplicationRepo(),
			Provision: noop,
			Close:     noop,
		}, nil

	case config.DBMongo:
		log.Info("connecting to mongodb", "db", cfg.MongoDB)
		client, err := mongo.NewClient(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &Store{
			Name: config.DBMongo,
			Repo: mongo.NewApplicationRepo(client, opTimeout),
			Provision: func(ctx context.Context) error {
				return mongo.EnsureIndexes(ctx, client.DB)
			},
			Close: client.Close,
		}, nil

	case config.DBDynamo:
		log.Info("connecting to dynamodb", "region", cfg.AWSRegion, "endpoint", cfg.DynamoDBEndpoint)
		client, err := dynamo.NewClient(ctx, dynamo.Config{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.DynamoDBEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}, log)
		if err != nil {
			return nil, err
		}
		return &Store{
			Name: config.DBDynamo,
			Repo: dynamo.NewApplicationRepo(client.DB, opTimeout),
			Provision: func(ctx context.Context) error {
				return dynamo.EnsureTables(ctx, client.DB, log)
			},
			Close: noop,
		}, nil

	case config.DBSQLite:
		return openSQL(ctx, sqlstore.SQLite, cfg.SQLitePath, opTimeout)

	case config.DBPostgres:
		return openSQL(ctx, sqlstore.Postgres, cfg.PostgresDSN, opTimeout)
	}

	return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
}

func openSQL(ctx context.Context, d sqlstore.Dialect, dsn string, opTimeout time.Duration) (*Store, error) {
	db, err := sqlstore.Open(ctx, d, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{
		Name: string(d),
		Repo: sqlstore.NewApplicationRepo(db, d, opTimeout),
		Provision: func(ctx context.Context) error {
			return sqlstore.Migrate(ctx, db, d)
		},
		Close: closeDB(db),
	}, nil
}

func closeDB(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}
