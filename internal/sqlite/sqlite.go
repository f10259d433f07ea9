// Package sqlite opens the local SQLite store of the workout tracker.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	_ "embed"
)

//go:embed schema.sql
var schemaDefinition string

// Database holds one read-write connection and a pool of read-only connections to the same file.
type Database struct {
	ReadWrite *sql.DB
	ReadOnly  *sql.DB
	logger    *slog.Logger
}

// NewDatabase connects to the database at url and applies the schema.
//
// The url parameter is the path to the SQLite database file or ":memory:" for an in-memory database
// that lives as long as the returned Database.
func NewDatabase(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	db, err := connect(ctx, url, logger)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err = db.applySchema(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("apply schema: %w", err), db.Close())
	}
	return db, nil
}

func (db *Database) applySchema(ctx context.Context) error {
	start := time.Now()
	tx, err := db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if _, err = tx.ExecContext(ctx, schemaDefinition); err != nil {
		return errors.Join(fmt.Errorf("exec schema: %w", err), tx.Rollback())
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	db.logger.LogAttrs(ctx, slog.LevelDebug, "applied schema", slog.Duration("duration", time.Since(start)))
	return nil
}

//nolint:gochecknoglobals // once is used to ensure that the SQLite driver is registered only once.
var once sync.Once

const optimizedDriver = "sqlite3optimized"

// registerOptimizedDriver registers a driver that executes performance pragmas on connection.
func registerOptimizedDriver() {
	sql.Register(optimizedDriver,
		&sqlite3.SQLiteDriver{
			Extensions: nil,
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				if _, err := conn.Exec(
					// Temporary tables and indices stay in memory.
					"PRAGMA temp_store = memory;", nil); err != nil {
					return fmt.Errorf("exec optimization pragmas: %w", err)
				}
				return nil
			},
		})
}

func connect(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	var (
		err         error
		readWriteDB *sql.DB
		readDB      *sql.DB
	)

	// In-memory databases need shared cache so that both pools see the same data, and a unique
	// name so that parallel tests do not share it. See https://www.sqlite.org/inmemorydb.html.
	inMemoryConfig := ""
	if strings.Contains(url, ":memory:") {
		url = rand.Text()
		inMemoryConfig = "&mode=memory&cache=shared"
	}
	commonConfig := strings.Join([]string{
		"_loc=auto",
		// Write-ahead logging enables concurrent readers.
		"_journal_mode=wal",
		// Avoids SQLITE_BUSY errors when another process holds the write lock.
		"_busy_timeout=5000",
		"_synchronous=normal",
		"_foreign_keys=on",
	}, "&")

	// Options prefixed with '_' are documented at https://pkg.go.dev/github.com/mattn/go-sqlite3#SQLiteDriver.Open.
	readConfig := fmt.Sprintf("file:%s?mode=ro&_txlock=deferred&_query_only=true&%s%s", url, commonConfig, inMemoryConfig)
	readWriteConfig := fmt.Sprintf("file:%s?mode=rwc&_txlock=immediate&%s%s", url, commonConfig, inMemoryConfig)
	if inMemoryConfig != "" {
		// mode=memory replaces mode=ro, so read-only is enforced by _query_only alone.
		readConfig = fmt.Sprintf("file:%s?_txlock=deferred&_query_only=true&%s%s", url, commonConfig, inMemoryConfig)
		readWriteConfig = fmt.Sprintf("file:%s?_txlock=immediate&%s%s", url, commonConfig, inMemoryConfig)
	}

	once.Do(registerOptimizedDriver)

	if readWriteDB, err = sql.Open(optimizedDriver, readWriteConfig); err != nil {
		return nil, fmt.Errorf("open read-write database: %w", err)
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "opened database", slog.String("sqlDsn", readWriteConfig))

	readWriteDB.SetMaxOpenConns(1)
	readWriteDB.SetMaxIdleConns(1)
	readWriteDB.SetConnMaxLifetime(0)
	readWriteDB.SetConnMaxIdleTime(0)

	// sql.DB is lazy, the ping creates the file and keeps the in-memory database alive.
	if err = readWriteDB.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping read-write database: %w", err), readWriteDB.Close())
	}

	if readDB, err = sql.Open(optimizedDriver, readConfig); err != nil {
		return nil, errors.Join(fmt.Errorf("open read database: %w", err), readWriteDB.Close())
	}

	maxReadConns := 4
	readDB.SetMaxOpenConns(maxReadConns)
	readDB.SetMaxIdleConns(maxReadConns)
	readDB.SetConnMaxLifetime(time.Hour)
	readDB.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite: readWriteDB,
		ReadOnly:  readDB,
		logger:    logger,
	}, nil
}

// Close runs PRAGMA optimize, as recommended for short-lived connections, and closes both pools.
// See https://www.sqlite.org/pragma.html#pragma_optimize.
func (db *Database) Close() error {
	var optimizeErr error
	if _, err := db.ReadWrite.Exec("PRAGMA optimize;"); err != nil {
		optimizeErr = fmt.Errorf("optimize database: %w", err)
	}
	return errors.Join(optimizeErr, db.ReadOnly.Close(), db.ReadWrite.Close())
}
