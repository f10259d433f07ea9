package workout

import (
	"cmp"
	"slices"

	"github.com/myrjola/sixsplit/internal/split"
)

type idSet map[string]struct{}

func newIDSet(ids ...string) idSet {
	s := make(idSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s idSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s idSet) add(id string) {
	s[id] = struct{}{}
}

// candidates returns the catalog exercises of (group, sub) that are not excluded, in catalog order.
func (e *Engine) candidates(group split.MuscleGroup, sub split.SubGroup, exclude idSet) []split.Exercise {
	all := e.catalog.Filter(group, sub)
	out := make([]split.Exercise, 0, len(all))
	for _, ex := range all {
		if !exclude.has(ex.ID) {
			out = append(out, ex)
		}
	}
	return out
}

// PickOldest returns the least recently used exercise of group, narrowed to sub unless it is
// split.SubGroupAny, that is not in exclude. Never used exercises come first and ties are broken by
// id. It returns false when no exercise qualifies.
func (e *Engine) PickOldest(
	group split.MuscleGroup, sub split.SubGroup, recency RecencyMap, exclude []string,
) (split.Exercise, bool) {
	return e.pickOldest(group, sub, recency, newIDSet(exclude...))
}

func (e *Engine) pickOldest(
	group split.MuscleGroup, sub split.SubGroup, recency RecencyMap, exclude idSet,
) (split.Exercise, bool) {
	found := false
	var best split.Exercise
	for _, ex := range e.candidates(group, sub, exclude) {
		if !found || olderThan(ex, best, recency) {
			best = ex
			found = true
		}
	}
	return best, found
}

// olderThan orders a before b by last use, falling back to id order.
func olderThan(a, b split.Exercise, recency RecencyMap) bool {
	ta, tb := recency[a.ID], recency[b.ID]
	if !ta.Equal(tb) {
		return ta.Before(tb)
	}
	return a.ID < b.ID
}

// Pool returns the exercises of (group, sub) not in exclude, sorted by name for browsing.
func (e *Engine) Pool(group split.MuscleGroup, sub split.SubGroup, exclude []string) []split.Exercise {
	return e.pool(group, sub, newIDSet(exclude...))
}

func (e *Engine) pool(group split.MuscleGroup, sub split.SubGroup, exclude idSet) []split.Exercise {
	out := e.candidates(group, sub, exclude)
	slices.SortStableFunc(out, func(a, b split.Exercise) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out
}
