package workout

import (
	"fmt"
	"time"

	"github.com/myrjola/sixsplit/internal/split"
)

// Generate builds a new incomplete session for the day template at dayIndex.
//
// Requirements are processed in declaration order and every chosen exercise is excluded from the
// slots that follow, so a session never holds the same exercise twice. Slots without a candidate
// are left out. On the last day of the plan one Back slot is appended for each mandatory sub-group
// the current cycle has not covered yet.
func (e *Engine) Generate(dayIndex int, recency RecencyMap, sessions []Session, cycleStart time.Time) (Session, error) {
	day, ok := e.plan.Day(dayIndex)
	if !ok {
		return Session{}, fmt.Errorf("%w: %d", ErrInvalidDay, dayIndex)
	}

	chosen := newIDSet()
	var logs []ExerciseLog
	fill := func(group split.MuscleGroup, sub split.SubGroup) {
		ex, found := e.pickOldest(group, sub, recency, chosen)
		if !found {
			return
		}
		chosen.add(ex.ID)
		logs = append(logs, e.buildLog(ex, chosen))
	}

	for _, req := range day.Requirements {
		if req.SubGroups != nil {
			for _, sub := range req.SubGroups {
				fill(req.MuscleGroup, sub)
			}
			continue
		}
		for range req.Count {
			fill(req.MuscleGroup, split.SubGroupAny)
		}
	}

	if e.isLastDay(dayIndex) {
		for _, sub := range CheckWeeklyRequirement(sessions, cycleStart).Missing() {
			fill(sub.MuscleGroup(), sub)
		}
	}

	now := e.now()
	return Session{
		ID:          e.newID("session"),
		DayIndex:    dayIndex,
		DayTitle:    day.Title,
		Date:        now,
		StartedAt:   now,
		Exercises:   logs,
		IsCompleted: false,
		Duration:    0,
		Calories:    0,
	}, nil
}

// NextDayIndex returns the day after the most recently completed session, wrapping around the plan,
// or 0 when nothing has been completed.
func (e *Engine) NextDayIndex(sessions []Session) int {
	latest, ok := LatestCompleted(sessions)
	if !ok {
		return 0
	}
	return (latest.DayIndex + 1) % len(e.plan.Days)
}

// LatestCompleted returns the completed session with the latest date. Later entries win ties.
func LatestCompleted(sessions []Session) (Session, bool) {
	var (
		latest Session
		found  bool
	)
	for _, s := range sessions {
		if !s.IsCompleted {
			continue
		}
		if !found || !s.Date.Before(latest.Date) {
			latest = s
			found = true
		}
	}
	return latest, found
}
