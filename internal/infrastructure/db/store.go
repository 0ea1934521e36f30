package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/complaintdesk/complaints-api/internal/core/ports"
	"github.com/complaintdesk/complaints-api/internal/infrastructure/config"
	"github.com/complaintdesk/complaints-api/internal/infrastructure/db/mongo"
	"github.com/complaintdesk/complaints-api/internal/infrastructure/db/postgres"
	"github.com/complaintdesk/complaints-api/internal/infrastructure/db/sqlite"
)

// Open returns the store selected by cfg.Store.Driver. When
// cfg.Store.MigrateOnStart is set the schema (or the Mongo indexes) is
// brought up to date before returning.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.Store, error) {
	log = log.With().Str("driver", cfg.Store.Driver).Logger()

	switch cfg.Store.Driver {
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		if cfg.Store.MigrateOnStart {
			if err := s.ApplyMigrations(); err != nil {
				_ = s.Close(ctx)
				return nil, err
			}
			log.Info().Msg("migrations applied")
		}
		return s, nil

	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		if cfg.Store.MigrateOnStart {
			if err := s.ApplyMigrations(); err != nil {
				_ = s.Close(ctx)
				return nil, err
			}
			log.Info().Msg("migrations applied")
		}
		return s, nil

	case config.DriverMongo:
		s, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if cfg.Store.MigrateOnStart {
			if err := s.EnsureIndexes(ctx); err != nil {
				_ = s.Close(ctx)
				return nil, err
			}
			log.Info().Msg("indexes ensured")
		}
		return s, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
