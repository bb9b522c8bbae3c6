// Package db is the embedded SQLite store of the duty roster. A single
// process owns the database file; all multi-row mutations run inside
// explicit transactions, and a successful mutation is visible to every
// subsequent read from the same pool.
package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const defaultPoolSize = 4

// DB wraps the SQLite connection pool together with the application
// logger. All store operations hang off this type.
type DB struct {
	pool   *sqlitex.Pool
	logger *zap.Logger
}

// Open opens (and creates if needed) the database at path and ensures
// the schema. Use ":memory:" for tests; that is rewritten to the shared
// in-memory URI the pool requires, with the pool size forced to one so
// reads always see the single writer's data.
func Open(path string, logger *zap.Logger) (*DB, error) {
	poolSize := defaultPoolSize
	if path == ":memory:" {
		path = "file::memory:?mode=memory&cache=shared"
		poolSize = 1
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareConn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	d := &DB{pool: pool, logger: logger}
	if err := d.ensureSchema(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	logger.Debug("Database opened", zap.String("path", path), zap.Int("pool_size", poolSize))
	return d, nil
}

func (d *DB) Close() error {
	return d.pool.Close()
}

// prepareConn applies the standard pragmas to every pooled connection:
// WAL for concurrent readers beside the single writer, NORMAL sync for
// process-crash durability, and a busy timeout instead of immediate
// SQLITE_BUSY errors. Referential integrity is managed explicitly, so
// foreign keys stay off.
func prepareConn(conn *sqlite.Conn) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=OFF;",
	} {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	return nil
}

// withConn runs fn on a pooled connection.
func (d *DB) withConn(ctx context.Context, fn func(conn *sqlite.Conn) error) error {
	conn, err := d.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("failed to take connection: %w", err)
	}
	defer d.pool.Put(conn)
	return fn(conn)
}

// withTx runs fn on a pooled connection inside a transaction that is
// rolled back when fn returns an error.
func (d *DB) withTx(ctx context.Context, fn func(conn *sqlite.Conn) error) error {
	return d.withConn(ctx, func(conn *sqlite.Conn) (err error) {
		defer sqlitex.Transaction(conn)(&err)
		return fn(conn)
	})
}
