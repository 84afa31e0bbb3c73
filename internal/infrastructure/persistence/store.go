package persistence

import (
	"context"
	"fmt"

	"github.com/attcrm/backend/internal/domain/property"
	"github.com/attcrm/backend/internal/infrastructure/config"
	"github.com/attcrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Store is an opened property repository plus whatever must be released on shutdown
type Store struct {
	Properties property.PropertyRepository
	Database   *Database // nil for the memory driver
}

// OpenStore opens the repository selected by cfg.Store.Driver. SQL drivers
// are migrated before the store is returned.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Store, error) {
	if cfg.Store.Driver == config.StoreMemory {
		log.Info("Using in-memory property store")
		return &Store{Properties: NewMemoryPropertyRepository()}, nil
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Database.SlowQueryThresh)
	db, err := NewDatabase(cfg.Store.Driver, &cfg.Database, gormLog)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("Database connected",
		zap.String("driver", cfg.Store.Driver),
		zap.String("host", cfg.Database.Host),
		zap.String("sqlite_path", cfg.Database.SQLitePath),
	)
	return &Store{Properties: NewGormPropertyRepository(db.DB), Database: db}, nil
}

// Close releases the database connection, if any
func (s *Store) Close() error {
	if s.Database == nil {
		return nil
	}
	if err := s.Database.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
