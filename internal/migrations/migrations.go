// Package migrations embeds the SQL schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

const dialect = "postgres"

// Logger is satisfied by *logrus.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
	Fatalf(format string, v ...interface{})
}

// Open connects through lib/pq, the database/sql driver goose runs on.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func setup(log Logger) error {
	goose.SetBaseFS(FS)
	if log != nil {
		goose.SetLogger(log)
	}
	return goose.SetDialect(dialect)
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, log Logger) error {
	if err := setup(log); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Down rolls back the latest migration.
func Down(ctx context.Context, db *sql.DB, log Logger) error {
	if err := setup(log); err != nil {
		return err
	}
	return goose.DownContext(ctx, db, ".")
}

// Status prints the applied state of every migration through log.
func Status(ctx context.Context, db *sql.DB, log Logger) error {
	if err := setup(log); err != nil {
		return err
	}
	return goose.StatusContext(ctx, db, ".")
}
