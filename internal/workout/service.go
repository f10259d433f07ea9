package workout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/myrjola/sixsplit/internal/split"
	"github.com/myrjola/sixsplit/internal/sqlite"
)

// Service loads the stored state, runs one engine operation and saves the result.
type Service struct {
	engine *Engine
	repo   *sqliteRepository
	logger *slog.Logger
}

// NewService creates a workout service over db.
func NewService(db *sqlite.Database, engine *Engine, logger *slog.Logger) *Service {
	return &Service{
		engine: engine,
		repo:   newSQLiteRepository(db, logger),
		logger: logger,
	}
}

// Engine returns the engine the service runs.
func (s *Service) Engine() *Engine {
	return s.engine
}

// State returns the stored state.
func (s *Service) State(ctx context.Context) (State, error) {
	state, err := s.repo.loadState(ctx)
	if err != nil {
		return State{}, fmt.Errorf("get state: %w", err)
	}
	return state, nil
}

// Begin returns the session to work on. The active session is resumed when forceDay is nil or
// matches its day. Otherwise a new session is generated for forceDay, or for the day after the
// last completed one. An active session with logged sets is only replaced when discard is set.
func (s *Service) Begin(ctx context.Context, forceDay *int, discard bool) (Session, error) {
	state, err := s.repo.loadState(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("begin workout: %w", err)
	}

	if state.Active != nil && (forceDay == nil || *forceDay == state.Active.DayIndex) {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "resuming workout",
			slog.String("session", state.Active.ID), slog.Int("day", state.Active.DayIndex+1))
		return *state.Active, nil
	}
	if state.Active != nil && HasSets(*state.Active) && !discard {
		return Session{}, fmt.Errorf("begin workout: %w: day %d", ErrActiveInProgress, state.Active.DayIndex+1)
	}

	dayIndex := s.engine.NextDayIndex(state.Sessions)
	if forceDay != nil {
		dayIndex = *forceDay
	}
	session, err := s.engine.Generate(dayIndex, state.Recency, state.Sessions, state.CycleStart)
	if err != nil {
		return Session{}, fmt.Errorf("generate workout: %w", err)
	}
	state.Active = &session
	if err = s.repo.saveState(ctx, state); err != nil {
		return Session{}, fmt.Errorf("save generated workout: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated workout",
		slog.String("session", session.ID),
		slog.Int("day", dayIndex+1),
		slog.Int("exercises", len(session.Exercises)))
	return session, nil
}

// Active returns the active session or ErrNoActiveWorkout.
func (s *Service) Active(ctx context.Context) (Session, error) {
	state, err := s.repo.loadState(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("get active workout: %w", err)
	}
	if state.Active == nil {
		return Session{}, ErrNoActiveWorkout
	}
	return *state.Active, nil
}

// mutateActive applies fn to the active session and saves the result. Nothing is saved when fn
// fails.
func (s *Service) mutateActive(ctx context.Context, op string, fn func(State, Session) (Session, error)) (Session, error) {
	state, err := s.repo.loadState(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	if state.Active == nil {
		return Session{}, fmt.Errorf("%s: %w", op, ErrNoActiveWorkout)
	}
	session, err := fn(state, *state.Active)
	if err != nil {
		return *state.Active, fmt.Errorf("%s: %w", op, err)
	}
	state.Active = &session
	if err = s.repo.saveState(ctx, state); err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, "updated workout", slog.String("op", op), slog.String("session", session.ID))
	return session, nil
}

// AddSet appends a set to one log of the active session.
func (s *Service) AddSet(ctx context.Context, logID string, set SetRecord) (Session, error) {
	return s.mutateActive(ctx, "add set", func(_ State, session Session) (Session, error) {
		return AddSet(session, logID, set)
	})
}

// RemoveSet removes the set at index from one log of the active session.
func (s *Service) RemoveSet(ctx context.Context, logID string, index int) (Session, error) {
	return s.mutateActive(ctx, "remove set", func(_ State, session Session) (Session, error) {
		return RemoveSet(session, logID, index)
	})
}

// Swap replaces the exercise of one log of the active session.
func (s *Service) Swap(ctx context.Context, logID string) (Session, error) {
	return s.mutateActive(ctx, "swap exercise", func(state State, session Session) (Session, error) {
		return s.engine.Swap(session, logID, state.Recency, state.Sessions, state.CycleStart)
	})
}

// Choose selects option index of one log's candidate pool.
func (s *Service) Choose(ctx context.Context, logID string, index int) (Session, error) {
	return s.mutateActive(ctx, "choose exercise", func(state State, session Session) (Session, error) {
		return s.engine.Choose(session, logID, index, state.Sessions, state.CycleStart)
	})
}

// Toggle adds or removes a block of the active session.
func (s *Service) Toggle(ctx context.Context, block split.Block) (Session, error) {
	return s.mutateActive(ctx, "toggle "+string(block), func(state State, session Session) (Session, error) {
		return s.engine.Toggle(session, block, state.Recency, state.Sessions, state.CycleStart)
	})
}

// Finish completes the active session and commits it to the history.
func (s *Service) Finish(ctx context.Context) (Session, error) {
	state, err := s.repo.loadState(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("finish workout: %w", err)
	}
	if state.Active == nil {
		return Session{}, fmt.Errorf("finish workout: %w", ErrNoActiveWorkout)
	}
	finished, err := s.engine.Finish(*state.Active)
	if err != nil {
		return Session{}, fmt.Errorf("finish workout: %w", err)
	}
	next := s.engine.Commit(state, finished)
	if err = s.repo.saveState(ctx, next); err != nil {
		return Session{}, fmt.Errorf("save finished workout: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "finished workout",
		slog.String("session", finished.ID),
		slog.Int("day", finished.DayIndex+1),
		slog.Int("sets", finished.TotalSets()),
		slog.Int("minutes", finished.Duration),
		slog.Bool("cycleRestarted", !next.CycleStart.Equal(state.CycleStart)))
	return finished, nil
}

// Discard drops the active session without recording it.
func (s *Service) Discard(ctx context.Context) error {
	state, err := s.repo.loadState(ctx)
	if err != nil {
		return fmt.Errorf("discard workout: %w", err)
	}
	if state.Active == nil {
		return fmt.Errorf("discard workout: %w", ErrNoActiveWorkout)
	}
	id := state.Active.ID
	state.Active = nil
	if err = s.repo.saveState(ctx, state); err != nil {
		return fmt.Errorf("discard workout: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "discarded workout", slog.String("session", id))
	return nil
}

// Reset deletes the history, recency, cycle start and active session.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, "reset all workout data")
	return nil
}

// DarkMode returns the stored theme preference.
func (s *Service) DarkMode(ctx context.Context) (bool, error) {
	dark, err := s.repo.darkMode(ctx)
	if err != nil {
		return false, fmt.Errorf("get dark mode: %w", err)
	}
	return dark, nil
}

// SetDarkMode stores the theme preference.
func (s *Service) SetDarkMode(ctx context.Context, dark bool) error {
	if err := s.repo.setDarkMode(ctx, dark); err != nil {
		return fmt.Errorf("set dark mode: %w", err)
	}
	return nil
}
