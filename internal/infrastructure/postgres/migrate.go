package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // driver "postgres" para database/sql (goose)
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/Importaciones-api/migrations"
)

// Migrate aplica todas las migraciones embebidas pendientes.
func Migrate(ctx context.Context, dsn string) error {
	return RunMigrations(ctx, dsn, "up")
}

// RunMigrations ejecuta un comando goose (up, down, status, version, redo...) sobre las migraciones embebidas.
func RunMigrations(ctx context.Context, dsn, command string, args ...string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open migrations db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
