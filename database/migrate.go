package database

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose uses to track applied versions.
const MigrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// goose keeps its settings in package globals
var migrateMu sync.Mutex

// gooseLogger routes goose output through gecho.
type gooseLogger struct {
	logger *gecho.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...), gecho.Field("component", "migrations"))
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Fatal(fmt.Sprintf(format, v...), gecho.Field("component", "migrations"))
}

// MigrateSQL applies every pending embedded migration to sqldb.
func MigrateSQL(sqldb *sql.DB, logger *gecho.Logger) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	goose.SetLogger(&gooseLogger{logger: logger})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(sqldb, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Migrate applies pending migrations on the bun handle's underlying connection pool.
func (db *DB) Migrate(logger *gecho.Logger) error {
	return MigrateSQL(db.DB.DB, logger)
}

// MigrationVersions lists the versions of the embedded migrations in order.
func MigrationVersions() ([]int64, error) {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	migrations, err := goose.CollectMigrations("migrations", 0, goose.MaxVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to collect migrations: %w", err)
	}

	versions := make([]int64, 0, len(migrations))
	for _, m := range migrations {
		versions = append(versions, m.Version)
	}
	return versions, nil
}
