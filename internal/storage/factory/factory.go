package factory

import (
	"context"
	"fmt"
	"time"
	"wallfeed/internal/providers"
	"wallfeed/internal/storage"
	"wallfeed/internal/storage/sqlstore"
	"wallfeed/internal/structures"
)

// NewPostStore opens the store selected by storage.driver. SQL stores get
// their schema created on first use.
func NewPostStore(conf *structures.Config, logger providers.Logger) (storage.PostStore, error) {
	switch conf.Storage.Driver {
	case "", "memory":
		logger.Infof(providers.TypeApp, "Using in-memory post store")
		return storage.NewMemoryStore(), nil
	case sqlstore.SQLite.Name, sqlstore.Postgres.Name:
		dialect, _ := sqlstore.DialectByName(conf.Storage.Driver)
		store, err := sqlstore.Open(dialect, conf.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", dialect.Name, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		logger.Infof(providers.TypeApp, "Using %s post store", dialect.Name)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", conf.Storage.Driver)
	}
}
