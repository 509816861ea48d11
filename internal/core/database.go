// AngelaMos | 2026
// database.go

package core

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/teamcomm/internal/config"
)

const pingTimeout = 5 * time.Second

// DBTX is satisfied by *sqlx.DB and *sqlx.Tx, so repositories run the same
// code inside and outside a transaction.
type DBTX interface {
	sqlx.ExtContext
	sqlx.ExecerContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// Database is the pool every repository borrows from. Schema is the
// namespace applied through the connection's search_path.
type Database struct {
	DB     *sqlx.DB
	Schema string
}

// NewDatabase opens the pool and pings it. A failure here is fatal for the
// process: nothing else, the reconciler included, runs without a database.
func NewDatabase(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	ctx, span := StartSpan(ctx, "db.connect",
		attribute.String("db.system", "postgresql"),
		attribute.String("db.schema", cfg.Schema),
	)
	defer span.End()

	dsn, err := cfg.DSN()
	if err != nil {
		SetSpanError(ctx, err)
		return nil, err
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		SetSpanError(ctx, err)
		return nil, fmt.Errorf("open database: %w", err)
	}
	tunePool(db, cfg)

	d := &Database{DB: db, Schema: cfg.Schema}
	if err := d.Ping(ctx); err != nil {
		_ = db.Close() //nolint:errcheck // already failing
		SetSpanError(ctx, err)
		return nil, err
	}

	return d, nil
}

func tunePool(db *sqlx.DB, cfg config.DatabaseConfig) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(jitter(cfg.ConnMaxLifetime))
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

// jitter spreads connection recycling so the pool does not reconnect all at
// once.
func jitter(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	//nolint:gosec // G404: not security relevant
	return base + time.Duration(rand.Int64N(int64(base/7)+1))
}

func (d *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func (d *Database) Stats() sql.DBStats {
	return d.DB.Stats()
}

func (d *Database) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// InTx runs fn in one transaction. Only the seed loader uses it; regular
// operations are single statements on a borrowed connection.
func InTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, span := StartSpan(ctx, "db.tx")
	defer func() {
		if err != nil {
			SetSpanError(ctx, err)
		}
		span.End()
	}()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback() //nolint:errcheck // re-panicking
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback: %w (original: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return MapDBError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
