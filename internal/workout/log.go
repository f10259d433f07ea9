package workout

import (
	"cmp"
	"slices"

	"github.com/myrjola/sixsplit/internal/split"
)

// BuildLog creates an empty log for ex. Its candidate pool holds the exercises of the same muscle
// group and sub-group minus exclude. The exercise itself always stays in its own pool.
func (e *Engine) BuildLog(ex split.Exercise, exclude []string) ExerciseLog {
	return e.buildLog(ex, newIDSet(exclude...))
}

func (e *Engine) buildLog(ex split.Exercise, exclude idSet) ExerciseLog {
	poolExclude := make(idSet, len(exclude))
	for id := range exclude {
		if id != ex.ID {
			poolExclude.add(id)
		}
	}
	pool := e.pool(ex.MuscleGroup, ex.SubGroup, poolExclude)
	return ExerciseLog{
		LogID:              e.newID("log"),
		ExerciseID:         ex.ID,
		Name:               ex.Name,
		MuscleGroup:        ex.MuscleGroup,
		SubGroup:           ex.SubGroup,
		AvailableExercises: pool,
		SelectedIndex:      indexOf(pool, ex.ID),
		Sets:               []SetRecord{},
		Timestamp:          e.now(),
	}
}

// indexOf returns the position of id in pool, or 0 when it is absent.
func indexOf(pool []split.Exercise, id string) int {
	i := slices.IndexFunc(pool, func(ex split.Exercise) bool { return ex.ID == id })
	return max(i, 0)
}

// withExercise returns pool with ex and the position of ex in it. An exercise freed by another log
// after pool was built is inserted in name order.
func withExercise(pool []split.Exercise, ex split.Exercise) ([]split.Exercise, int) {
	if i := slices.IndexFunc(pool, func(p split.Exercise) bool { return p.ID == ex.ID }); i >= 0 {
		return pool, i
	}
	i, _ := slices.BinarySearchFunc(pool, ex, func(p, target split.Exercise) int {
		return cmp.Or(cmp.Compare(p.Name, target.Name), cmp.Compare(p.ID, target.ID))
	})
	return slices.Insert(slices.Clone(pool), i, ex), i
}
