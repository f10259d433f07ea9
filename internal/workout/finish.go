package workout

import (
	"maps"
	"math"
	"slices"
)

// caloriesPerSet is the flat energy estimate for one logged set, in kcal.
const caloriesPerSet = 7.5

// HasSets reports whether any log of session has at least one set.
func HasSets(session Session) bool {
	return slices.ContainsFunc(session.Exercises, func(l ExerciseLog) bool { return len(l.Sets) > 0 })
}

// Finish completes session. Logs without sets are dropped, the date becomes now, the duration is
// the whole minutes since StartedAt (at least 1) and calories are estimated from the set count.
// A session without any set yields ErrNothingLogged.
func (e *Engine) Finish(session Session) (Session, error) {
	if !HasSets(session) {
		return session, ErrNothingLogged
	}
	out := session.clone()
	out.Exercises = slices.DeleteFunc(out.Exercises, func(l ExerciseLog) bool { return len(l.Sets) == 0 })

	now := e.now()
	started := out.StartedAt
	if started.IsZero() {
		started = out.Date
	}
	minutes := int(math.Round(now.Sub(started).Minutes()))
	out.Duration = max(1, minutes)
	out.Calories = int(math.Round(float64(out.TotalSets()) * caloriesPerSet))
	out.Date = now
	out.IsCompleted = true
	return out, nil
}

// Commit applies a finished session to state: it is appended to the history, the active session is
// cleared, every exercise of the session is marked used at the session date and, when the session
// closes the cycle, the cycle restarts at that date. state is not modified.
func (e *Engine) Commit(state State, finished Session) State {
	out := State{
		Sessions:   append(slices.Clone(state.Sessions), finished),
		Recency:    maps.Clone(state.Recency),
		CycleStart: state.CycleStart,
		Active:     nil,
	}
	if out.Recency == nil {
		out.Recency = RecencyMap{}
	}
	for _, l := range finished.Exercises {
		out.Recency[l.ExerciseID] = finished.Date
	}
	if e.isLastDay(finished.DayIndex) {
		out.CycleStart = finished.Date
	}
	return out
}
