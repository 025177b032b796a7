package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/AkatukiSora/pokergraph/internal/config"
)

// Store wraps a pooled sqlx.DB connection to a hand-history database.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database described by cfg. SQLite databases are
// created and migrated on first use; Postgres databases are only read.
func Open(ctx context.Context, cfg config.Database) (*Store, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err = openSQLite(cfg)
	case config.DriverPostgres:
		if strings.TrimSpace(cfg.DSN) == "" {
			return nil, errors.New("postgres dsn required")
		}
		db, err = sqlx.Open("postgres", cfg.DSN)
		if err != nil {
			err = fmt.Errorf("open postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingTimeout := cfg.BusyTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	if cfg.ShouldMigrate() {
		if cfg.Driver != config.DriverSQLite {
			_ = db.Close()
			return nil, fmt.Errorf("migrations are only supported for %s", config.DriverSQLite)
		}
		if err := runMigrations(db.DB); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	slog.Info("database opened", "driver", cfg.Driver, "migrated", cfg.ShouldMigrate())
	return &Store{db: db}, nil
}

func openSQLite(cfg config.Database) (*sqlx.DB, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

// NewStore wraps an already opened handle. The handle's driver name picks
// the bind style, so sqlx.NewDb(db, "postgres") rebinds to $n.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the underlying sqlx.DB for advanced callers.
func (s *Store) DB() *sqlx.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// withReadTx runs fn in a transaction that is always rolled back. Ending
// every read this way releases the read locks held by the connection.
func (s *Store) withReadTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin read: %w", err)
	}
	err = fn(tx)
	if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		slog.Warn("rollback read transaction", "error", rbErr)
	}
	return err
}

func (s *Store) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return s.withReadTx(ctx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, dest, tx.Rebind(query), args...)
	})
}

// getOne scans a single row into dest and reports false when there is none.
func (s *Store) getOne(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	var found bool
	err := s.withReadTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, dest, tx.Rebind(query), args...)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}
