package workout

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/sixsplit/internal/split"
)

func TestCheckWeeklyRequirement(t *testing.T) {
	t.Parallel()

	cycleStart := t0.AddDate(0, 0, -3)
	traps := logOf("ba-tr1", split.Back, split.Traps)
	rear := logOf("ba-rd1", split.Back, split.RearDelts)

	tests := []struct {
		name     string
		sessions []Session
		want     Coverage
	}{
		{name: "no sessions", sessions: nil, want: Coverage{Traps: false, RearDelts: false}},
		{
			name:     "session at cycle start counts",
			sessions: []Session{completed(5, cycleStart, traps)},
			want:     Coverage{Traps: true, RearDelts: false},
		},
		{
			name:     "session before cycle start ignored",
			sessions: []Session{completed(2, cycleStart.Add(-time.Millisecond), traps, rear)},
			want:     Coverage{Traps: false, RearDelts: false},
		},
		{
			name: "incomplete session ignored",
			sessions: func() []Session {
				s := completed(1, t0, rear)
				s.IsCompleted = false
				return []Session{s}
			}(),
			want: Coverage{Traps: false, RearDelts: false},
		},
		{
			name:     "both across sessions",
			sessions: []Session{completed(0, t0.AddDate(0, 0, -2), rear), completed(1, t0, traps)},
			want:     Coverage{Traps: true, RearDelts: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := CheckWeeklyRequirement(tt.sessions, cycleStart)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CheckWeeklyRequirement() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if got := (Coverage{Traps: true, RearDelts: false}).Missing(); !cmp.Equal(got, []split.SubGroup{split.RearDelts}) {
		t.Errorf("Missing() = %v, want [Rear Delts]", got)
	}
	if !(Coverage{}).Covered(split.Lats) {
		t.Error("Covered(Lats) = false, non-mandatory sub-groups are always covered")
	}
}

func TestGenerate_NoDuplicates(t *testing.T) {
	t.Parallel()

	e, clock := newTestEngine(t)
	recency := RecencyMap{}
	var history []Session
	// Three full cycles; every generated session is completed and fed back into recency.
	for i := range 3 * split.DaysPerCycle {
		day := i % split.DaysPerCycle
		session, err := e.Generate(day, recency, history, time.Time{})
		if err != nil {
			t.Fatalf("Generate(%d) error = %v", day, err)
		}
		assertUniqueExercises(t, session)
		for _, l := range session.Exercises {
			if len(l.AvailableExercises) == 0 || l.AvailableExercises[l.SelectedIndex].ID != l.ExerciseID {
				t.Errorf("day %d: log %s does not point at its exercise in the pool", day, l.ExerciseID)
			}
		}
		clock.Advance(24 * time.Hour)
		session.IsCompleted = true
		session.Date = clock.Now()
		for _, l := range session.Exercises {
			recency[l.ExerciseID] = session.Date
		}
		history = append(history, session)
	}
}

func TestGenerate_Day1(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	session, err := e.Generate(0, RecencyMap{}, nil, time.Time{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	day, _ := e.plan.Day(0)
	if session.DayTitle != day.Title {
		t.Errorf("DayTitle = %q, want %q", session.DayTitle, day.Title)
	}
	if session.IsCompleted || !session.Date.Equal(t0) || !session.StartedAt.Equal(t0) {
		t.Errorf("new session = %+v, want incomplete and dated now", session)
	}
	var subs []split.SubGroup
	for _, l := range session.Exercises {
		subs = append(subs, l.SubGroup)
	}
	want := []split.SubGroup{
		split.ChestUpper, split.ChestLower, split.ChestMidLower,
		split.LateralMedial, split.LongHead, split.AllHeads,
		split.SideDelt, split.FrontDelt,
	}
	if diff := cmp.Diff(want, subs); diff != "" {
		t.Errorf("sub-groups mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_LastDayMandatory(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	last := e.plan.LastDayIndex()
	cycleStart := t0.AddDate(0, 0, -6)

	count := func(s Session, sub split.SubGroup) int {
		n := 0
		for _, l := range s.Exercises {
			if l.SubGroup == sub {
				n++
			}
		}
		return n
	}

	tests := []struct {
		name          string
		dayIndex      int
		sessions      []Session
		wantTraps     int
		wantRearDelts int
	}{
		{name: "uncovered cycle forces both", dayIndex: last, sessions: nil, wantTraps: 1, wantRearDelts: 1},
		{
			name:          "traps covered earlier in cycle",
			dayIndex:      last,
			sessions:      []Session{completed(1, cycleStart, logOf("ba-tr1", split.Back, split.Traps))},
			wantTraps:     0,
			wantRearDelts: 1,
		},
		{
			name:     "covered in previous cycle only",
			dayIndex: last,
			sessions: []Session{completed(1, cycleStart.Add(-time.Hour),
				logOf("ba-tr1", split.Back, split.Traps), logOf("ba-rd1", split.Back, split.RearDelts))},
			wantTraps:     1,
			wantRearDelts: 1,
		},
		{name: "other days never force", dayIndex: 1, sessions: nil, wantTraps: 0, wantRearDelts: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			session, err := e.Generate(tt.dayIndex, RecencyMap{}, tt.sessions, cycleStart)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if got := count(session, split.Traps); got != tt.wantTraps {
				t.Errorf("traps logs = %d, want %d", got, tt.wantTraps)
			}
			if got := count(session, split.RearDelts); got != tt.wantRearDelts {
				t.Errorf("rear delts logs = %d, want %d", got, tt.wantRearDelts)
			}
			assertUniqueExercises(t, session)
		})
	}
}

func TestGenerate_SlotsAndOmission(t *testing.T) {
	t.Parallel()

	e, _ := newCustomEngine(t,
		[]split.Exercise{
			{ID: "q1", Name: "Squat", MuscleGroup: split.Quads, SubGroup: split.QuadsMain},
			{ID: "q2", Name: "Leg Press", MuscleGroup: split.Quads, SubGroup: split.QuadsMain},
			{ID: "q3", Name: "Sissy Squat", MuscleGroup: split.Quads, SubGroup: split.QuadsSupplement},
		},
		split.Requirement{MuscleGroup: split.Quads, Count: 3, SubGroups: []split.SubGroup{
			split.QuadsMain, split.QuadsMain, split.QuadsMain,
		}},
		split.Requirement{MuscleGroup: split.Quads, Count: 2, SubGroups: nil},
		split.Requirement{MuscleGroup: split.Calves, Count: 1, SubGroups: nil},
	)

	session, err := e.Generate(0, RecencyMap{"q1": t0}, nil, time.Time{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// Two main slots are filled, the third is empty; the unconstrained slots take what is left.
	if diff := cmp.Diff([]string{"q2", "q1", "q3"}, exerciseIDs(session.Exercises)); diff != "" {
		t.Errorf("exercises mismatch (-want +got):\n%s", diff)
	}
	// The second main slot's pool omits the exercise chosen by the first.
	if diff := cmp.Diff([]split.Exercise{
		{ID: "q1", Name: "Squat", MuscleGroup: split.Quads, SubGroup: split.QuadsMain},
	}, session.Exercises[1].AvailableExercises); diff != "" {
		t.Errorf("pool mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_InvalidDay(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	for _, day := range []int{-1, split.DaysPerCycle} {
		if _, err := e.Generate(day, nil, nil, time.Time{}); !errors.Is(err, ErrInvalidDay) {
			t.Errorf("Generate(%d) error = %v, want ErrInvalidDay", day, err)
		}
	}
}

func TestNextDayIndex(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	incomplete := completed(4, t0.Add(time.Hour))
	incomplete.IsCompleted = false

	tests := []struct {
		name     string
		sessions []Session
		want     int
	}{
		{name: "no history", sessions: nil, want: 0},
		{name: "after day 3", sessions: []Session{completed(0, t0.AddDate(0, 0, -2)), completed(2, t0)}, want: 3},
		{name: "wraps after last day", sessions: []Session{completed(5, t0)}, want: 0},
		{name: "latest by date not position", sessions: []Session{completed(3, t0), completed(1, t0.AddDate(0, 0, -1))}, want: 4},
		{name: "incomplete ignored", sessions: []Session{completed(1, t0), incomplete}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := e.NextDayIndex(tt.sessions); got != tt.want {
				t.Errorf("NextDayIndex() = %d, want %d", got, tt.want)
			}
		})
	}
}
