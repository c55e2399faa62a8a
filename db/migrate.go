package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Connect opens a pool against connectionString after bringing the schema up to date.
func Connect(ctx context.Context, connectionString string) (*pgxpool.Pool, error) {
	if connectionString == "" {
		return nil, errors.New("no database connection string (DATABASE_CONNECTION_STRING)")
	}
	if err := Migrate(ctx, connectionString); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// Migrate applies the embedded migrations. goose needs a database/sql handle, so this
// goes through the pgx stdlib driver rather than the pool.
func Migrate(ctx context.Context, connectionString string) error {
	sqlDb, err := sql.Open("pgx", connectionString)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer sqlDb.Close()

	migrationsFs, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDb, migrationsFs)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
