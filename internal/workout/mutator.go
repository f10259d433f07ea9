package workout

import (
	"fmt"
	"slices"
	"time"

	"github.com/myrjola/sixsplit/internal/split"
)

// The mutators return a modified copy and never change the session passed in. On error the
// returned session is the unchanged input.

func findLog(session Session, logID string) (int, error) {
	i := slices.IndexFunc(session.Exercises, func(l ExerciseLog) bool { return l.LogID == logID })
	if i < 0 {
		return 0, fmt.Errorf("%w: %s", ErrLogNotFound, logID)
	}
	return i, nil
}

func validateSet(set SetRecord) error {
	if !(set.Weight > 0) {
		return ErrWeightRequired
	}
	if set.Reps != nil && *set.Reps <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidReps, *set.Reps)
	}
	return nil
}

// UpdateSets replaces the sets of the log identified by logID.
func UpdateSets(session Session, logID string, sets []SetRecord) (Session, error) {
	i, err := findLog(session, logID)
	if err != nil {
		return session, err
	}
	for _, set := range sets {
		if err = validateSet(set); err != nil {
			return session, err
		}
	}
	out := session.clone()
	out.Exercises[i].Sets = slices.Clone(sets)
	if out.Exercises[i].Sets == nil {
		out.Exercises[i].Sets = []SetRecord{}
	}
	return out, nil
}

// AddSet appends set to the log identified by logID. A set without a positive weight is rejected
// with ErrWeightRequired.
func AddSet(session Session, logID string, set SetRecord) (Session, error) {
	i, err := findLog(session, logID)
	if err != nil {
		return session, err
	}
	if err = validateSet(set); err != nil {
		return session, err
	}
	out := session.clone()
	out.Exercises[i].Sets = append(out.Exercises[i].Sets, set)
	return out, nil
}

// RemoveSet removes the set at index from the log identified by logID, keeping the order of the
// remaining sets.
func RemoveSet(session Session, logID string, index int) (Session, error) {
	i, err := findLog(session, logID)
	if err != nil {
		return session, err
	}
	if index < 0 || index >= len(session.Exercises[i].Sets) {
		return session, fmt.Errorf("%w: %d", ErrSetNotFound, index)
	}
	out := session.clone()
	out.Exercises[i].Sets = slices.Delete(out.Exercises[i].Sets, index, index+1)
	return out, nil
}

// Locked reports whether log is pinned to the session: on the last day of the plan a log of a
// mandatory sub-group the cycle has not covered cannot be swapped or removed.
func (e *Engine) Locked(session Session, log ExerciseLog, coverage Coverage) bool {
	return e.isLastDay(session.DayIndex) && log.SubGroup.IsMandatory() && !coverage.Covered(log.SubGroup)
}

func (e *Engine) checkLock(session Session, log ExerciseLog, sessions []Session, cycleStart time.Time) error {
	if e.Locked(session, log, CheckWeeklyRequirement(sessions, cycleStart)) {
		return fmt.Errorf("%w: %s", ErrMandatoryLocked, log.SubGroup)
	}
	return nil
}

// Swap replaces the exercise of a log with the least recently used alternative of the same
// muscle group and sub-group that no other log of the session holds. The log keeps its id and
// candidate pool, loses its sets and gets a fresh timestamp. ErrNoAlternative is returned when the
// only candidate is the current exercise.
func (e *Engine) Swap(
	session Session, logID string, recency RecencyMap, sessions []Session, cycleStart time.Time,
) (Session, error) {
	i, err := findLog(session, logID)
	if err != nil {
		return session, err
	}
	current := session.Exercises[i]
	if err = e.checkLock(session, current, sessions, cycleStart); err != nil {
		return session, err
	}

	others := newIDSet()
	for j, l := range session.Exercises {
		if j != i {
			others.add(l.ExerciseID)
		}
	}
	withCurrent := newIDSet(current.ExerciseID)
	for id := range others {
		withCurrent.add(id)
	}
	ex, found := e.pickOldest(current.MuscleGroup, current.SubGroup, recency, withCurrent)
	if !found {
		ex, found = e.pickOldest(current.MuscleGroup, current.SubGroup, recency, others)
	}
	if !found || ex.ID == current.ExerciseID {
		return session, fmt.Errorf("%w: %s", ErrNoAlternative, current.Name)
	}

	out := session.clone()
	l := &out.Exercises[i]
	l.ExerciseID = ex.ID
	l.Name = ex.Name
	l.MuscleGroup = ex.MuscleGroup
	l.SubGroup = ex.SubGroup
	l.AvailableExercises, l.SelectedIndex = withExercise(l.AvailableExercises, ex)
	l.Sets = []SetRecord{}
	l.Timestamp = e.now()
	return out, nil
}

// Choose points a log at AvailableExercises[index]. Logged sets are kept.
func (e *Engine) Choose(
	session Session, logID string, index int, sessions []Session, cycleStart time.Time,
) (Session, error) {
	i, err := findLog(session, logID)
	if err != nil {
		return session, err
	}
	current := session.Exercises[i]
	if index < 0 || index >= len(current.AvailableExercises) {
		return session, fmt.Errorf("%w: %d", ErrInvalidChoice, index)
	}
	if err = e.checkLock(session, current, sessions, cycleStart); err != nil {
		return session, err
	}
	ex := current.AvailableExercises[index]
	for j, l := range session.Exercises {
		if j != i && l.ExerciseID == ex.ID {
			return session, fmt.Errorf("%w: %s is already in the session", ErrInvalidChoice, ex.Name)
		}
	}

	out := session.clone()
	l := &out.Exercises[i]
	l.ExerciseID = ex.ID
	l.Name = ex.Name
	l.SelectedIndex = index
	return out, nil
}

// Toggle removes every log of block when the session has one, and otherwise appends one log per
// sub-group of the block. Removing an uncovered mandatory block on the last day is rejected with
// ErrMandatoryLocked.
func (e *Engine) Toggle(
	session Session, block split.Block, recency RecencyMap, sessions []Session, cycleStart time.Time,
) (Session, error) {
	var present []ExerciseLog
	for _, l := range session.Exercises {
		if block.Matches(l.MuscleGroup, l.SubGroup) {
			present = append(present, l)
		}
	}

	if len(present) > 0 {
		coverage := CheckWeeklyRequirement(sessions, cycleStart)
		for _, l := range present {
			if e.Locked(session, l, coverage) {
				return session, fmt.Errorf("%w: %s", ErrMandatoryLocked, l.SubGroup)
			}
		}
		out := session.clone()
		out.Exercises = slices.DeleteFunc(out.Exercises, func(l ExerciseLog) bool {
			return block.Matches(l.MuscleGroup, l.SubGroup)
		})
		return out, nil
	}

	out := session.clone()
	chosen := newIDSet()
	for _, l := range out.Exercises {
		chosen.add(l.ExerciseID)
	}
	added := 0
	for _, sub := range block.SubGroups() {
		ex, found := e.pickOldest(block.MuscleGroup(), sub, recency, chosen)
		if !found {
			continue
		}
		chosen.add(ex.ID)
		out.Exercises = append(out.Exercises, e.buildLog(ex, chosen))
		added++
	}
	if added == 0 {
		return session, fmt.Errorf("%w: %s", ErrNoAlternative, block)
	}
	return out, nil
}
