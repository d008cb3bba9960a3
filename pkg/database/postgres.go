package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/uptrace/bun/driver/pgdriver"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewPostgres opens the database behind url, or a local default built from
// host when url is empty, and applies pending migrations.
func NewPostgres(url, host string) (*sql.DB, error) {
	dsn := url
	if dsn == "" {
		dsn = fmt.Sprintf("postgres://postgres:postgres@%s/bot?sslmode=disable", host)
	}

	db := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging db: %w", err)
	}

	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	slog.Info("database ready", "migrationsApplied", n)

	return db, nil
}
