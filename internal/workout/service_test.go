package workout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/myrjola/sixsplit/internal/ptr"
	"github.com/myrjola/sixsplit/internal/split"
	"github.com/myrjola/sixsplit/internal/sqlite"
	"github.com/myrjola/sixsplit/internal/testhelpers"
	"github.com/myrjola/sixsplit/internal/workout"
)

func newService(t *testing.T) *workout.Service {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(t.Context(), ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err = db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	catalog, plan, err := split.Default()
	if err != nil {
		t.Fatalf("Failed to load reference data: %v", err)
	}
	return workout.NewService(db, workout.NewEngine(catalog, plan), logger)
}

func logWithSub(t *testing.T, s workout.Session, sub split.SubGroup) workout.ExerciseLog {
	t.Helper()
	for _, l := range s.Exercises {
		if l.SubGroup == sub {
			return l
		}
	}
	t.Fatalf("session %s has no %s log", s.ID, sub)
	return workout.ExerciseLog{}
}

func Test_Begin_GeneratesAndResumes(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newService(t)

	if _, err := svc.Active(ctx); !errors.Is(err, workout.ErrNoActiveWorkout) {
		t.Fatalf("Active() error = %v, want ErrNoActiveWorkout", err)
	}

	first, err := svc.Begin(ctx, nil, false)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if first.DayIndex != 0 || len(first.Exercises) == 0 {
		t.Fatalf("Begin() on empty history = day %d with %d exercises", first.DayIndex, len(first.Exercises))
	}

	resumed, err := svc.Begin(ctx, nil, false)
	if err != nil {
		t.Fatalf("Begin() resume error = %v", err)
	}
	if resumed.ID != first.ID {
		t.Errorf("resumed session %s, want %s", resumed.ID, first.ID)
	}

	// The active session has no sets, so forcing another day replaces it without discard.
	other, err := svc.Begin(ctx, ptr.Ref(3), false)
	if err != nil {
		t.Fatalf("Begin(day 4) error = %v", err)
	}
	if other.DayIndex != 3 || other.ID == first.ID {
		t.Errorf("Begin(day 4) = %s day %d, want a new day 4 session", other.ID, other.DayIndex)
	}
}

func Test_Begin_ProtectsLoggedSets(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newService(t)

	session, err := svc.Begin(ctx, nil, false)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if _, err = svc.AddSet(ctx, session.Exercises[0].LogID, workout.SetRecord{Weight: 60, Reps: ptr.Ref(8)}); err != nil {
		t.Fatalf("AddSet() error = %v", err)
	}

	if _, err = svc.Begin(ctx, ptr.Ref(2), false); !errors.Is(err, workout.ErrActiveInProgress) {
		t.Fatalf("Begin(day 3) error = %v, want ErrActiveInProgress", err)
	}
	replaced, err := svc.Begin(ctx, ptr.Ref(2), true)
	if err != nil {
		t.Fatalf("Begin(day 3, discard) error = %v", err)
	}
	if replaced.DayIndex != 2 || workout.HasSets(replaced) {
		t.Errorf("Begin(day 3, discard) = day %d hasSets=%t", replaced.DayIndex, workout.HasSets(replaced))
	}
}

func Test_BlockedMutationKeepsStoredSession(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newService(t)

	last := svc.Engine().Plan().LastDayIndex()
	session, err := svc.Begin(ctx, &last, false)
	if err != nil {
		t.Fatalf("Begin(last day) error = %v", err)
	}
	traps := logWithSub(t, session, split.Traps)

	if _, err = svc.Swap(ctx, traps.LogID); !errors.Is(err, workout.ErrMandatoryLocked) {
		t.Fatalf("Swap(traps) error = %v, want ErrMandatoryLocked", err)
	}
	if _, err = svc.Toggle(ctx, split.BlockTraps); !errors.Is(err, workout.ErrMandatoryLocked) {
		t.Fatalf("Toggle(traps) error = %v, want ErrMandatoryLocked", err)
	}
	if _, err = svc.AddSet(ctx, traps.LogID, workout.SetRecord{Weight: 0, Reps: nil}); !errors.Is(err, workout.ErrWeightRequired) {
		t.Fatalf("AddSet(weight 0) error = %v, want ErrWeightRequired", err)
	}

	stored, err := svc.Active(ctx)
	if err != nil {
		t.Fatalf("Active() error = %v", err)
	}
	if got := logWithSub(t, stored, split.Traps); got.ExerciseID != traps.ExerciseID || len(got.Sets) != 0 {
		t.Errorf("stored traps log = %s with %d sets, want %s unchanged", got.ExerciseID, len(got.Sets), traps.ExerciseID)
	}
}

func Test_FinishCommitsHistory(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newService(t)

	if _, err := svc.Finish(ctx); !errors.Is(err, workout.ErrNoActiveWorkout) {
		t.Fatalf("Finish() without workout error = %v, want ErrNoActiveWorkout", err)
	}

	last := svc.Engine().Plan().LastDayIndex()
	session, err := svc.Begin(ctx, &last, false)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if _, err = svc.Finish(ctx); !errors.Is(err, workout.ErrNothingLogged) {
		t.Fatalf("Finish() without sets error = %v, want ErrNothingLogged", err)
	}

	logged := session.Exercises[0]
	if _, err = svc.AddSet(ctx, logged.LogID, workout.SetRecord{Weight: 20, Reps: ptr.Ref(12)}); err != nil {
		t.Fatalf("AddSet() error = %v", err)
	}
	if _, err = svc.AddSet(ctx, logged.LogID, workout.SetRecord{Weight: 22.5, Reps: nil}); err != nil {
		t.Fatalf("AddSet() error = %v", err)
	}
	if _, err = svc.RemoveSet(ctx, logged.LogID, 0); err != nil {
		t.Fatalf("RemoveSet() error = %v", err)
	}

	finished, err := svc.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if len(finished.Exercises) != 1 || finished.Exercises[0].Sets[0].Weight != 22.5 {
		t.Errorf("finished exercises = %+v, want the single logged exercise", finished.Exercises)
	}
	if finished.Calories != 8 || finished.Duration < 1 {
		t.Errorf("finished calories = %d duration = %d", finished.Calories, finished.Duration)
	}

	state, err := svc.State(ctx)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if state.Active != nil {
		t.Error("active session survived Finish()")
	}
	if len(state.Sessions) != 1 || state.Sessions[0].ID != session.ID || !state.Sessions[0].IsCompleted {
		t.Fatalf("history = %+v, want the finished session", state.Sessions)
	}
	if !state.Recency[logged.ExerciseID].Equal(state.Sessions[0].Date) {
		t.Errorf("recency of %s = %v, want %v", logged.ExerciseID, state.Recency[logged.ExerciseID], state.Sessions[0].Date)
	}
	if !state.CycleStart.Equal(state.Sessions[0].Date) {
		t.Errorf("CycleStart = %v, want restart at %v", state.CycleStart, state.Sessions[0].Date)
	}

	next, err := svc.Begin(ctx, nil, false)
	if err != nil {
		t.Fatalf("Begin() after finish error = %v", err)
	}
	if next.DayIndex != 0 {
		t.Errorf("next day = %d, want wrap to 0", next.DayIndex)
	}
}

func Test_DiscardAndReset(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newService(t)

	if err := svc.Discard(ctx); !errors.Is(err, workout.ErrNoActiveWorkout) {
		t.Fatalf("Discard() error = %v, want ErrNoActiveWorkout", err)
	}
	if _, err := svc.Begin(ctx, nil, false); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := svc.Discard(ctx); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	if _, err := svc.Active(ctx); !errors.Is(err, workout.ErrNoActiveWorkout) {
		t.Errorf("Active() after discard error = %v, want ErrNoActiveWorkout", err)
	}

	if err := svc.SetDarkMode(ctx, false); err != nil {
		t.Fatalf("SetDarkMode() error = %v", err)
	}
	session, err := svc.Begin(ctx, nil, false)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if _, err = svc.AddSet(ctx, session.Exercises[0].LogID, workout.SetRecord{Weight: 30, Reps: nil}); err != nil {
		t.Fatalf("AddSet() error = %v", err)
	}
	if _, err = svc.Finish(ctx); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	if err = svc.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	state, err := svc.State(ctx)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if len(state.Sessions) != 0 || len(state.Recency) != 0 || !state.CycleStart.IsZero() || state.Active != nil {
		t.Errorf("state after reset = %+v, want empty", state)
	}
	dark, err := svc.DarkMode(ctx)
	if err != nil {
		t.Fatalf("DarkMode() error = %v", err)
	}
	if dark {
		t.Error("Reset() cleared the theme preference")
	}
}

func Test_DarkModeDefaultsOn(t *testing.T) {
	t.Parallel()
	dark, err := newService(t).DarkMode(context.Background())
	if err != nil {
		t.Fatalf("DarkMode() error = %v", err)
	}
	if !dark {
		t.Error("DarkMode() = false, want true when unset")
	}
}
