package main

import (
	"fmt"

	propertyapp "github.com/attcrm/backend/internal/application/property"
	"github.com/attcrm/backend/internal/infrastructure/config"
	"github.com/attcrm/backend/internal/infrastructure/logger"
	"github.com/attcrm/backend/internal/infrastructure/persistence"
	"github.com/attcrm/backend/internal/infrastructure/persistence/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	driver   string
	logLevel string
}

// session is an open SQL store plus the logger used by every command
type session struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *persistence.Database
	store *persistence.Store
}

func openSession(opts *options) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.driver != "" {
		cfg.Store.Driver = opts.driver
	}
	if cfg.Store.Driver == config.StoreMemory {
		return nil, fmt.Errorf("store driver %q has no schema; use --driver sqlite or postgres", cfg.Store.Driver)
	}

	log, err := logger.New(&logger.Config{
		Level:      opts.logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(opts.logLevel), cfg.Database.SlowQueryThresh)
	db, err := persistence.NewDatabase(cfg.Store.Driver, &cfg.Database, gormLog)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:   cfg,
		log:   log,
		db:    db,
		store: &persistence.Store{Properties: persistence.NewGormPropertyRepository(db.DB), Database: db},
	}, nil
}

func (s *session) close() {
	if err := s.store.Close(); err != nil {
		s.log.Error("Error closing database", zap.Error(err))
	}
	logger.Sync(s.log)
}

func upCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create or update the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.db.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			s.log.Info("Schema up to date", zap.String("driver", s.db.Driver()))
			return nil
		},
	}
}

func seedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo properties into an empty store",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.db.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			service := propertyapp.NewPropertyService(s.store.Properties, s.log)
			n, err := service.SeedDemoData(cmd.Context())
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			if n == 0 {
				s.log.Info("Store already has data, nothing seeded")
			}
			return nil
		},
	}
}

func statusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show schema and row status",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			migrator := s.db.DB.WithContext(cmd.Context()).Migrator()
			for _, model := range models.AllModels() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20T table present: %v\n", model, migrator.HasTable(model))
			}
			if !migrator.HasTable(&models.PropertyModel{}) {
				return nil
			}
			count, err := s.store.Properties.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "properties: %d\n", count)
			return nil
		},
	}
}
