package db

import (
	"context"
	"fmt"

	"github.com/taskapi/backend/internal/config"
	"github.com/taskapi/backend/internal/core/ports"
	"github.com/taskapi/backend/internal/infrastructure/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"
)

// Handle owns the persistence connection for the lifetime of the process.
// It is created once at start-up and passed to whatever needs the store.
type Handle struct {
	Driver string
	Tasks  ports.TaskRepository

	mongo *mongo.Client
	sql   *gorm.DB
}

// Open connects to the store selected by cfg.Driver, prepares its schema and
// wires the matching task repository.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*Handle, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := NewMongoConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		coll := client.Database(cfg.Name).Collection(cfg.Collection)
		if err := EnsureIndexes(ctx, coll); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to create indexes: %w", err)
		}
		return &Handle{
			Driver: cfg.Driver,
			Tasks:  NewMongoTaskRepository(coll, log),
			mongo:  client,
		}, nil

	case config.DriverPostgres:
		database, err := NewPostgresConnection(cfg)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(database); err != nil {
			_ = Close(database)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return NewSQLHandle(database, log), nil

	case config.DriverMemory:
		return &Handle{
			Driver: cfg.Driver,
			Tasks:  NewMemoryTaskRepository(log),
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// NewSQLHandle wraps an already opened and migrated gorm connection.
func NewSQLHandle(database *gorm.DB, log *logger.Logger) *Handle {
	return &Handle{
		Driver: database.Dialector.Name(),
		Tasks:  NewTaskRepository(database, log),
		sql:    database,
	}
}

// Ping reports whether the underlying store is reachable.
func (h *Handle) Ping(ctx context.Context) error {
	switch {
	case h.mongo != nil:
		return h.mongo.Ping(ctx, readpref.Primary())
	case h.sql != nil:
		sqlDB, err := h.sql.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	return nil
}

func (h *Handle) Close(ctx context.Context) error {
	switch {
	case h.mongo != nil:
		return h.mongo.Disconnect(ctx)
	case h.sql != nil:
		return Close(h.sql)
	}
	return nil
}
