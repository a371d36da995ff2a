package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m3rciful/ledgerbot/core/logger"
	"log/slog"
)

// Connect opens the database connection for the configured driver, sets up
// the pool, and verifies connectivity.
func Connect(cfg Config) (*sqlx.DB, error) {
	driver, dsn, err := resolveDSN(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	sqlxDB, err := sqlx.ConnectContext(ctx, driver, dsn)
	took := time.Since(start)
	if err != nil {
		logger.DB.Error("db connect failed",
			slog.String("event", "db.connect"),
			slog.String("driver", driver),
			slog.String("db", describeTarget(cfg)),
			slog.Duration("duration", logger.RoundMS(took)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("db connect: %w", err)
	}

	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = 4
	}
	if driver == DriverSQLite {
		// modernc sqlite serializes writes; a single connection avoids
		// SQLITE_BUSY on the rewrite-heavy snapshot workload.
		maxConns = 1
	}
	sqlxDB.SetMaxOpenConns(maxConns)
	sqlxDB.SetMaxIdleConns(maxConns)

	logger.DB.Info("db connected",
		slog.String("event", "db.connect"),
		slog.String("driver", driver),
		slog.String("db", describeTarget(cfg)),
		slog.Int("pool_open", maxConns),
		slog.Duration("duration", logger.RoundMS(took)),
	)

	return sqlxDB, nil
}

func resolveDSN(cfg Config) (driver, dsn string, err error) {
	switch cfg.Driver {
	case DriverSQLite:
		if cfg.Path == "" {
			return "", "", fmt.Errorf("db: sqlite driver requires a path")
		}
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return "", "", fmt.Errorf("db: create sqlite dir: %w", mkErr)
			}
		}
		return DriverSQLite, cfg.Path, nil
	case DriverPostgres, "":
		dsn = fmt.Sprintf(
			"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode,
		)
		return DriverPostgres, dsn, nil
	default:
		return "", "", fmt.Errorf("db: unsupported driver %q; allowed: postgres, sqlite", cfg.Driver)
	}
}

func describeTarget(cfg Config) string {
	if cfg.Driver == DriverSQLite {
		return cfg.Path
	}
	return fmt.Sprintf("%s@%s:%s/%s", cfg.User, cfg.Host, cfg.Port, cfg.Name)
}

// WaitFor tries to connect to the database until it is ready or the timeout
// is reached. Mostly useful for Postgres starting alongside the bot.
func WaitFor(cfg Config, timeout time.Duration) error {
	driver, dsn, err := resolveDSN(cfg)
	if err != nil {
		return err
	}
	start := time.Now()
	var lastErr error
	for {
		db, err := sql.Open(driver, dsn)
		if err == nil {
			if err = db.Ping(); err == nil {
				_ = db.Close()
				return nil
			}
			_ = db.Close()
		}
		lastErr = err
		if time.Since(start) > timeout {
			return fmt.Errorf("timeout reached waiting for database: %w", lastErr)
		}
		time.Sleep(2 * time.Second)
	}
}
