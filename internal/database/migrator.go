package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/deppfellow/students-api/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:embed migrations/*.sql
var migrations embed.FS

// StudentsCollection is the MongoDB collection holding student documents.
const StudentsCollection = "students"

// Migrate prepares the store for the student repositories.
//
//   - postgres: apply embedded SQL migrations with tern
//   - mongo: ensure the email lookup index exists
//   - memory: nothing to do
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config, db *Database) error {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return migratePostgres(ctx, logger, cfg)
	case config.DriverMongo:
		return ensureMongoIndexes(ctx, logger, db.MongoDB)
	default:
		return nil
	}
}

// migratePostgres runs the embedded migrations over a single connection.
func migratePostgres(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, cfg.Database.URI)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

// ensureMongoIndexes creates the non-unique email index used by find-by-email.
func ensureMongoIndexes(ctx context.Context, logger *zerolog.Logger, mdb *mongo.Database) error {
	if mdb == nil {
		return fmt.Errorf("mongo database handle is not initialized")
	}

	name, err := mdb.Collection(StudentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_students_email"),
	})
	if err != nil {
		return fmt.Errorf("creating students email index: %w", err)
	}

	logger.Info().Str("index", name).Msg("students indexes ensured")
	return nil
}
