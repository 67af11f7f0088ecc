// Package database contains the logic for establishing
// connections to the configured document store.
//
// It handles:
//   - connecting to MongoDB (mongo-driver) or PostgreSQL (pgxpool)
//   - wiring query tracing/logging (command monitors, pgx tracelog)
//   - optional New Relic instrumentation (nrmongo, nrpgx5)
//   - startup schema/index setup (Migrate)
//
// The "memory" driver opens nothing; the repository layer keeps
// records in process.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/students-api/internal/config"
	loggerConfig "github.com/deppfellow/students-api/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database holds the live handle for the configured driver.
//
// Exactly one of Pool / Mongo is set, matching Driver. Both are nil for
// the memory driver.
type Database struct {
	Driver string

	// Pool is the PostgreSQL connection pool.
	Pool *pgxpool.Pool

	// Mongo is the MongoDB client and MongoDB the selected database.
	Mongo   *mongo.Client
	MongoDB *mongo.Database

	log *zerolog.Logger
}

// DatabasePingTimeout is the default number of seconds to wait for a ping
// before considering the database "unreachable".
const DatabasePingTimeout = 10

// New connects to the store selected by cfg.Database.Driver and pings it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	db := &Database{
		Driver: cfg.Database.Driver,
		log:    logger,
	}

	var err error
	switch cfg.Database.Driver {
	case config.DriverMongo:
		db.Mongo, err = newMongoClient(cfg, logger, loggerService)
		if err == nil {
			db.MongoDB = db.Mongo.Database(cfg.Database.Name)
		}
	case config.DriverPostgres:
		db.Pool, err = newPgxPool(cfg, logger, loggerService)
	case config.DriverMemory:
		logger.Warn().Msg("using in-memory student store, data is lost on restart")
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	timeout := cfg.Database.PingTimeout
	if timeout <= 0 {
		timeout = DatabasePingTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", db.Driver).Msg("connected to the database")

	return db, nil
}

// Ping checks connectivity with the underlying store.
func (db *Database) Ping(ctx context.Context) error {
	switch {
	case db.Mongo != nil:
		return db.Mongo.Ping(ctx, readpref.Primary())
	case db.Pool != nil:
		return db.Pool.Ping(ctx)
	default:
		return nil
	}
}

// Close releases the connection pool / client.
func (db *Database) Close() error {
	db.log.Info().Str("driver", db.Driver).Msg("closing database connection")

	if db.Pool != nil {
		db.Pool.Close()
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to disconnect mongo client: %w", err)
		}
	}

	return nil
}
