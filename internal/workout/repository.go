package workout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/sixsplit/internal/sqlite"
	"golang.org/x/sync/errgroup"
)

// Keys of the JSON documents in the kv table.
const (
	keySessions   = "workoutSessions"
	keyRecency    = "exerciseHistory"
	keyCycleStart = "currentCycleStart"
	keyActive     = "activeWorkout"
	keyDarkMode   = "darkMode"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// sqliteRepository stores the engine state as JSON documents in the kv table.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{
		db:     db,
		logger: logger,
	}
}

// get decodes the document at key into v. It reports false when the key is missing.
func (r *sqliteRepository) get(ctx context.Context, key string, v any) (bool, error) {
	var raw string
	err := r.db.ReadOnly.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query %s: %w", key, err)
	}
	if err = json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func put(ctx context.Context, tx *sql.Tx, key string, v any, now time.Time) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, string(raw), now.UTC().Format(timestampFormat))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// loadState reads the four engine documents concurrently. Missing documents decode to an empty
// history, an empty recency map, a zero cycle start and no active session.
func (r *sqliteRepository) loadState(ctx context.Context) (State, error) {
	var (
		sessions     []Session
		recency      RecencyMap
		cycleStartMs int64
		active       *Session
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := r.get(ctx, keySessions, &sessions)
		return err
	})
	g.Go(func() error {
		_, err := r.get(ctx, keyRecency, &recency)
		return err
	})
	g.Go(func() error {
		_, err := r.get(ctx, keyCycleStart, &cycleStartMs)
		return err
	})
	g.Go(func() error {
		_, err := r.get(ctx, keyActive, &active)
		return err
	})
	if err := g.Wait(); err != nil {
		return State{}, fmt.Errorf("load state: %w", err)
	}

	if sessions == nil {
		sessions = []Session{}
	}
	if recency == nil {
		recency = RecencyMap{}
	}
	return State{
		Sessions:   sessions,
		Recency:    recency,
		CycleStart: fromMillis(cycleStartMs),
		Active:     active,
	}, nil
}

// saveState writes the four engine documents in one transaction.
func (r *sqliteRepository) saveState(ctx context.Context, state State) (err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	sessions := state.Sessions
	if sessions == nil {
		sessions = []Session{}
	}
	recency := state.Recency
	if recency == nil {
		recency = RecencyMap{}
	}
	now := time.Now()
	if err = put(ctx, tx, keySessions, sessions, now); err != nil {
		return err
	}
	if err = put(ctx, tx, keyRecency, recency, now); err != nil {
		return err
	}
	if err = put(ctx, tx, keyCycleStart, toMillis(state.CycleStart), now); err != nil {
		return err
	}
	if err = put(ctx, tx, keyActive, state.Active, now); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit state: %w", err)
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, "saved state",
		slog.Int("sessions", len(sessions)), slog.Bool("active", state.Active != nil))
	return nil
}

// reset deletes the history, recency, cycle start and active session. Preferences are kept.
func (r *sqliteRepository) reset(ctx context.Context) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `DELETE FROM kv WHERE key IN (?, ?, ?, ?)`,
		keySessions, keyRecency, keyCycleStart, keyActive)
	if err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}

// darkMode returns the theme preference, true when unset.
func (r *sqliteRepository) darkMode(ctx context.Context) (bool, error) {
	dark := true
	if _, err := r.get(ctx, keyDarkMode, &dark); err != nil {
		return false, err
	}
	return dark, nil
}

func (r *sqliteRepository) setDarkMode(ctx context.Context, dark bool) (err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err = put(ctx, tx, keyDarkMode, dark, time.Now()); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit dark mode: %w", err)
	}
	return nil
}
