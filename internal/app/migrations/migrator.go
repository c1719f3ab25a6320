package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/coursequest/internal/db"
	"github.com/yigit/coursequest/internal/pkg/logger"
)

//go:embed sql/*.sql
var files embed.FS

// Migration is one embedded SQL file.
type Migration struct {
	Version string
	Name    string
	SQL     string
}

// Migrator manages database migrations
type Migrator struct {
	database   *db.PostgresDB
	migrations []Migration
}

// NewMigrator creates a new migrator over the embedded schema files
func NewMigrator(database *db.PostgresDB) (*Migrator, error) {
	migrations, err := Load(files)
	if err != nil {
		return nil, err
	}
	return &Migrator{database: database, migrations: migrations}, nil
}

// Load reads every *.sql file under sql/ in fsys, sorted by name.
// The version is the filename prefix before the first underscore ("001_init.sql" => "001").
func Load(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		base := path.Base(name)
		migrations = append(migrations, Migration{
			Version: strings.SplitN(base, "_", 2)[0],
			Name:    base,
			SQL:     string(content),
		})
	}
	return migrations, nil
}

const createMigrationTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version VARCHAR(255) PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// MigrateUp applies the migrations not yet recorded in schema_migrations.
// Each migration runs in its own transaction together with its bookkeeping row.
func (m *Migrator) MigrateUp(ctx context.Context) error {
	if _, err := m.database.Pool.Exec(ctx, createMigrationTable); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	for _, mig := range m.migrations {
		var applied bool
		err := m.database.Pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, mig.Version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if applied {
			logger.Debug().Str("migration", mig.Name).Msg("Migration already applied, skipping")
			continue
		}

		err = m.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return apply(ctx, tx, mig)
		})
		if err != nil {
			return err
		}
		logger.Info().Str("migration", mig.Name).Msg("Migration applied")
	}
	return nil
}

// Reset drops the courses table and re-applies every migration inside one
// transaction. All course data is lost.
func (m *Migrator) Reset(ctx context.Context) error {
	err := m.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DROP TABLE IF EXISTS courses`); err != nil {
			return fmt.Errorf("failed to drop courses table: %w", err)
		}
		if _, err := tx.Exec(ctx, createMigrationTable); err != nil {
			return fmt.Errorf("failed to create migration tracking table: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM schema_migrations`); err != nil {
			return fmt.Errorf("failed to clear migration history: %w", err)
		}
		for _, mig := range m.migrations {
			if err := apply(ctx, tx, mig); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Warn().Int("migrations", len(m.migrations)).Msg("Courses schema reset")
	return nil
}

// apply runs one migration and records it, inside the caller's transaction.
func apply(ctx context.Context, tx pgx.Tx, mig Migration) error {
	if _, err := tx.Exec(ctx, mig.SQL); err != nil {
		return fmt.Errorf("error occurred during SQL migration %s: %w", mig.Name, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", mig.Name, err)
	}
	return nil
}
