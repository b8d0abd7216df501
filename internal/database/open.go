package database

import (
	"context"
	"fmt"

	"github.com/Gangulr/finace/internal/config"
	"github.com/Gangulr/finace/internal/store"
)

// Backend is an opened record store.
type Backend struct {
	Stores store.Set
	ping   func(ctx context.Context) error
	close  func(ctx context.Context) error
}

// Open connects to the backend named by cfg.StoreDriver and prepares its
// schema: migrations for PostgreSQL, indexes for MongoDB.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		m, err := NewMongoManager(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		if err := m.EnsureIndexes(ctx); err != nil {
			_ = m.Close(ctx)
			return nil, fmt.Errorf("failed to create indexes: %w", err)
		}
		return &Backend{
			Stores: store.NewMongoSet(m.Database()),
			ping:   m.Ping,
			close:  m.Close,
		}, nil

	case config.DriverPostgres:
		m, err := NewManager(cfg)
		if err != nil {
			return nil, err
		}
		if err := m.RunMigrations(); err != nil {
			_ = m.Close()
			return nil, err
		}
		return &Backend{
			Stores: store.NewGormSet(m.DB()),
			ping:   m.Ping,
			close:  func(context.Context) error { return m.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// Ping reports whether the backend is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	return b.ping(ctx)
}

// Close releases the backend connection.
func (b *Backend) Close(ctx context.Context) error {
	return b.close(ctx)
}
