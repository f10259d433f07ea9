package workout

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/sixsplit/internal/split"
)

func chestUpper(id, name string) split.Exercise {
	return split.Exercise{ID: id, Name: name, MuscleGroup: split.Chest, SubGroup: split.ChestUpper}
}

func TestPickOldest(t *testing.T) {
	t.Parallel()

	e, _ := newCustomEngine(t, []split.Exercise{
		chestUpper("B", "Bench Press"),
		chestUpper("A", "Incline Press"),
		chestUpper("C", "Cable Fly"),
		{ID: "M", Name: "Dips", MuscleGroup: split.Chest, SubGroup: split.ChestLower},
	}, split.Requirement{MuscleGroup: split.Chest, Count: 1, SubGroups: nil})

	tests := []struct {
		name      string
		sub       split.SubGroup
		recency   RecencyMap
		exclude   []string
		wantID    string
		wantFound bool
	}{
		{
			name:      "never used beats used",
			sub:       split.ChestUpper,
			recency:   RecencyMap{"B": t0.AddDate(0, 0, -10), "C": t0.AddDate(0, 0, -30)},
			wantID:    "A",
			wantFound: true,
		},
		{
			name:      "excluded falls through to oldest used",
			sub:       split.ChestUpper,
			recency:   RecencyMap{"B": t0.AddDate(0, 0, -10), "C": t0.AddDate(0, 0, -30)},
			exclude:   []string{"A"},
			wantID:    "C",
			wantFound: true,
		},
		{
			name:      "ties broken by id",
			sub:       split.ChestUpper,
			recency:   RecencyMap{},
			wantID:    "A",
			wantFound: true,
		},
		{
			name:      "equal recency ties broken by id",
			sub:       split.ChestUpper,
			recency:   RecencyMap{"A": t0, "B": t0, "C": t0},
			exclude:   []string{"A"},
			wantID:    "B",
			wantFound: true,
		},
		{
			name:      "whole group when sub-group is unconstrained",
			sub:       split.SubGroupAny,
			recency:   RecencyMap{"A": t0, "B": t0, "C": t0},
			wantID:    "M",
			wantFound: true,
		},
		{
			name:      "all excluded",
			sub:       split.ChestUpper,
			exclude:   []string{"A", "B", "C"},
			wantFound: false,
		},
		{
			name:      "nil recency treats all as unused",
			sub:       split.ChestLower,
			recency:   nil,
			wantID:    "M",
			wantFound: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, found := e.PickOldest(split.Chest, tt.sub, tt.recency, tt.exclude)
			if found != tt.wantFound {
				t.Fatalf("PickOldest() found = %t, want %t", found, tt.wantFound)
			}
			if found && got.ID != tt.wantID {
				t.Errorf("PickOldest() = %s, want %s", got.ID, tt.wantID)
			}
			// Identical arguments give identical results.
			again, _ := e.PickOldest(split.Chest, tt.sub, tt.recency, tt.exclude)
			if again != got {
				t.Errorf("PickOldest() not deterministic: %v then %v", got, again)
			}
		})
	}
}

func TestPickOldest_TwoExerciseExample(t *testing.T) {
	t.Parallel()

	e, _ := newCustomEngine(t, []split.Exercise{
		chestUpper("A", "Alpha"),
		chestUpper("B", "Bravo"),
	}, split.Requirement{MuscleGroup: split.Chest, Count: 1, SubGroups: nil})
	recency := RecencyMap{"B": t0.Add(-10 * 24 * time.Hour)}

	if got, _ := e.PickOldest(split.Chest, split.ChestUpper, recency, nil); got.ID != "A" {
		t.Errorf("PickOldest() = %s, want A", got.ID)
	}
	if got, _ := e.PickOldest(split.Chest, split.ChestUpper, recency, []string{"A"}); got.ID != "B" {
		t.Errorf("PickOldest(exclude A) = %s, want B", got.ID)
	}
}

func TestPickOldest_UnusedAlwaysPreferred(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	// Mark every exercise but the last of each pair as used; the unused one must win.
	for _, group := range split.MuscleGroups() {
		for _, sub := range group.SubGroups() {
			pool := e.catalog.Filter(group, sub)
			if len(pool) < 2 {
				continue
			}
			recency := RecencyMap{}
			for i, ex := range pool[:len(pool)-1] {
				recency[ex.ID] = t0.Add(-time.Duration(i+1) * time.Hour)
			}
			unused := pool[len(pool)-1]
			got, found := e.PickOldest(group, sub, recency, nil)
			if !found || got.ID != unused.ID {
				t.Errorf("%s/%s: PickOldest() = %s, want unused %s", group, sub, got.ID, unused.ID)
			}
		}
	}
}

func TestPool(t *testing.T) {
	t.Parallel()

	e, _ := newCustomEngine(t, []split.Exercise{
		chestUpper("x1", "Incline Press"),
		chestUpper("x2", "Bench Press"),
		chestUpper("x3", "Cable Fly"),
		chestUpper("x0", "Bench Press"),
	}, split.Requirement{MuscleGroup: split.Chest, Count: 1, SubGroups: nil})

	var got []string
	for _, ex := range e.Pool(split.Chest, split.ChestUpper, []string{"x3"}) {
		got = append(got, ex.ID)
	}
	if diff := cmp.Diff([]string{"x0", "x2", "x1"}, got); diff != "" {
		t.Errorf("Pool() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLog(t *testing.T) {
	t.Parallel()

	e, _ := newCustomEngine(t, []split.Exercise{
		chestUpper("a", "Alpha"),
		chestUpper("b", "Bravo"),
		chestUpper("c", "Charlie"),
	}, split.Requirement{MuscleGroup: split.Chest, Count: 1, SubGroups: nil})
	bravo, _ := e.catalog.Lookup("b")

	log := e.BuildLog(bravo, []string{"a", "b"})

	want := ExerciseLog{
		LogID:       "log-1",
		ExerciseID:  "b",
		Name:        "Bravo",
		MuscleGroup: split.Chest,
		SubGroup:    split.ChestUpper,
		AvailableExercises: []split.Exercise{
			chestUpper("b", "Bravo"),
			chestUpper("c", "Charlie"),
		},
		SelectedIndex: 0,
		Sets:          []SetRecord{},
		Timestamp:     t0,
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("BuildLog() mismatch (-want +got):\n%s", diff)
	}

	other := e.BuildLog(bravo, nil)
	if other.LogID == log.LogID {
		t.Errorf("BuildLog() reused log id %s", log.LogID)
	}
	if other.SelectedIndex != 1 {
		t.Errorf("SelectedIndex = %d, want 1 in the full pool", other.SelectedIndex)
	}
}
