package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// ErrBackupExists is returned when the backup target already exists.
var ErrBackupExists = errors.New("backup file already exists")

// Backup writes a consistent copy of the database to path with VACUUM INTO. The copy is a regular
// SQLite file that NewDatabase can open.
func (db *Database) Backup(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve backup path: %w", err)
	}
	if _, err = os.Stat(abs); err == nil {
		return fmt.Errorf("%w: %s", ErrBackupExists, abs)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat backup path: %w", err)
	}

	start := time.Now()
	if _, err = db.ReadWrite.ExecContext(ctx, "VACUUM INTO ?", abs); err != nil {
		return fmt.Errorf("vacuum into %s: %w", abs, err)
	}
	db.logger.LogAttrs(ctx, slog.LevelInfo, "backed up database",
		slog.String("path", abs), slog.Duration("duration", time.Since(start)))
	return nil
}
