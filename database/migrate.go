package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/rahulthapa9024/basic-app/database/migrations"
)

var gooseOnce sync.Once

// Migrate applies all pending migrations to the database at dsn.
func Migrate(ctx context.Context, dsn string) error {
	var setupErr error
	gooseOnce.Do(func() {
		goose.SetBaseFS(migrations.Migrations)
		setupErr = goose.SetDialect("postgres")
	})
	if setupErr != nil {
		return fmt.Errorf("failed to set migration dialect: %w", setupErr)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
