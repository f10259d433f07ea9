package workout

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/myrjola/sixsplit/internal/split"
)

// SetRecord is one performed set. Weight is required, Reps is optional.
type SetRecord struct {
	Weight float64 `json:"weight"`
	Reps   *int    `json:"reps,omitempty"`
}

// ExerciseLog is one exercise slot within a session.
type ExerciseLog struct {
	// LogID is stable for the lifetime of the slot, including across swaps.
	LogID       string
	ExerciseID  string
	Name        string
	MuscleGroup split.MuscleGroup
	SubGroup    split.SubGroup
	// AvailableExercises is the candidate pool for manual selection, sorted by name.
	AvailableExercises []split.Exercise
	// SelectedIndex points at the current exercise in AvailableExercises.
	SelectedIndex int
	Sets          []SetRecord
	Timestamp     time.Time
}

// Session is one workout, either the active one or a completed entry in the history.
type Session struct {
	ID        string
	DayIndex  int
	DayTitle  string
	Date      time.Time
	StartedAt time.Time
	Exercises []ExerciseLog
	// IsCompleted is set once by Finish.
	IsCompleted bool
	// Duration is the length of a completed session in minutes.
	Duration int
	Calories int
}

// RecencyMap holds the last time each exercise was completed. A missing entry means never used and
// reads as the zero time.
type RecencyMap map[string]time.Time

// State is the snapshot of everything the engine needs from the store.
type State struct {
	Sessions   []Session
	Recency    RecencyMap
	CycleStart time.Time
	// Active is the in-progress session, nil when there is none.
	Active *Session
}

// TotalSets returns the number of sets logged across all exercises.
func (s Session) TotalSets() int {
	n := 0
	for _, ex := range s.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// clone returns a deep copy of s so that mutators never share slices with their input. Nil slices
// stay nil.
func (s Session) clone() Session {
	out := s
	if s.Exercises != nil {
		out.Exercises = make([]ExerciseLog, len(s.Exercises))
		for i, ex := range s.Exercises {
			out.Exercises[i] = ex.clone()
		}
	}
	return out
}

func (l ExerciseLog) clone() ExerciseLog {
	out := l
	out.AvailableExercises = slices.Clone(l.AvailableExercises)
	out.Sets = slices.Clone(l.Sets)
	for i, set := range out.Sets {
		if set.Reps != nil {
			reps := *set.Reps
			out.Sets[i].Reps = &reps
		}
	}
	return out
}

// The JSON documents store timestamps as milliseconds since the Unix epoch, with 0 for unset.

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

type exerciseLogJSON struct {
	LogID              string            `json:"logId"`
	ExerciseID         string            `json:"exerciseId"`
	Name               string            `json:"name"`
	MuscleGroup        split.MuscleGroup `json:"muscleGroup"`
	SubGroup           split.SubGroup    `json:"subGroup,omitempty"`
	AvailableExercises []split.Exercise  `json:"availableExercises"`
	SelectedIndex      int               `json:"selectedIndex"`
	Sets               []SetRecord       `json:"sets"`
	Timestamp          int64             `json:"timestamp"`
}

// MarshalJSON implements [json.Marshaler].
func (l ExerciseLog) MarshalJSON() ([]byte, error) {
	available := l.AvailableExercises
	if available == nil {
		available = []split.Exercise{}
	}
	sets := l.Sets
	if sets == nil {
		sets = []SetRecord{}
	}
	b, err := json.Marshal(exerciseLogJSON{
		LogID:              l.LogID,
		ExerciseID:         l.ExerciseID,
		Name:               l.Name,
		MuscleGroup:        l.MuscleGroup,
		SubGroup:           l.SubGroup,
		AvailableExercises: available,
		SelectedIndex:      l.SelectedIndex,
		Sets:               sets,
		Timestamp:          toMillis(l.Timestamp),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal exercise log: %w", err)
	}
	return b, nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (l *ExerciseLog) UnmarshalJSON(data []byte) error {
	var v exerciseLogJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal exercise log: %w", err)
	}
	*l = ExerciseLog{
		LogID:              v.LogID,
		ExerciseID:         v.ExerciseID,
		Name:               v.Name,
		MuscleGroup:        v.MuscleGroup,
		SubGroup:           v.SubGroup,
		AvailableExercises: v.AvailableExercises,
		SelectedIndex:      v.SelectedIndex,
		Sets:               v.Sets,
		Timestamp:          fromMillis(v.Timestamp),
	}
	return nil
}

type sessionJSON struct {
	ID          string        `json:"id"`
	DayIndex    int           `json:"dayIndex"`
	DayTitle    string        `json:"dayTitle"`
	Date        int64         `json:"date"`
	StartedAt   int64         `json:"startedAt,omitempty"`
	Exercises   []ExerciseLog `json:"exercises"`
	IsCompleted bool          `json:"isCompleted"`
	Duration    int           `json:"duration,omitempty"`
	Calories    int           `json:"calories,omitempty"`
}

// MarshalJSON implements [json.Marshaler].
func (s Session) MarshalJSON() ([]byte, error) {
	exercises := s.Exercises
	if exercises == nil {
		exercises = []ExerciseLog{}
	}
	b, err := json.Marshal(sessionJSON{
		ID:          s.ID,
		DayIndex:    s.DayIndex,
		DayTitle:    s.DayTitle,
		Date:        toMillis(s.Date),
		StartedAt:   toMillis(s.StartedAt),
		Exercises:   exercises,
		IsCompleted: s.IsCompleted,
		Duration:    s.Duration,
		Calories:    s.Calories,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return b, nil
}

// UnmarshalJSON implements [json.Unmarshaler]. Sessions stored without startedAt fall back to date.
func (s *Session) UnmarshalJSON(data []byte) error {
	var v sessionJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal session: %w", err)
	}
	startedAt := v.StartedAt
	if startedAt == 0 {
		startedAt = v.Date
	}
	*s = Session{
		ID:          v.ID,
		DayIndex:    v.DayIndex,
		DayTitle:    v.DayTitle,
		Date:        fromMillis(v.Date),
		StartedAt:   fromMillis(startedAt),
		Exercises:   v.Exercises,
		IsCompleted: v.IsCompleted,
		Duration:    v.Duration,
		Calories:    v.Calories,
	}
	return nil
}

// MarshalJSON implements [json.Marshaler] with millisecond values.
func (r RecencyMap) MarshalJSON() ([]byte, error) {
	m := make(map[string]int64, len(r))
	for id, t := range r {
		m[id] = toMillis(t)
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal recency: %w", err)
	}
	return b, nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (r *RecencyMap) UnmarshalJSON(data []byte) error {
	var m map[string]int64
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("unmarshal recency: %w", err)
	}
	out := make(RecencyMap, len(m))
	for id, ms := range m {
		out[id] = fromMillis(ms)
	}
	*r = out
	return nil
}
