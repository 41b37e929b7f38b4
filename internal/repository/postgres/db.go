package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ConnectOptions controls how Open retries the initial connection.
type ConnectOptions struct {
	Retries int
	Delay   time.Duration
}

// Open opens a Postgres handle and pings it, retrying up to opts.Retries times.
// The caller owns the returned handle and must Close it.
func Open(ctx context.Context, dsn string, opts ConnectOptions, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if opts.Retries < 1 {
		opts.Retries = 1
	}
	for attempt := 1; ; attempt++ {
		err = db.PingContext(ctx)
		if err == nil {
			logger.Info("database connected", "attempt", attempt)
			return db, nil
		}
		logger.Warn("database connection attempt failed", "attempt", attempt, "err", err)
		if attempt >= opts.Retries {
			break
		}
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(opts.Delay):
		}
	}
	db.Close()
	return nil, fmt.Errorf("ping database after %d attempts: %w", opts.Retries, err)
}

// Migrate runs embedded SQL migrations in order (001_catalog.sql, 002_..., etc.).
func Migrate(ctx context.Context, db *sql.DB) error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		stmt, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err = db.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("execute migration %s: %w", name, err)
		}
	}
	return nil
}
