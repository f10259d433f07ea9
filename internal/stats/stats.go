// Package stats derives streaks, cycle progress and activity trends from the workout history.
//
// All calendar arithmetic happens in the location of the reference instant passed by the caller,
// so a session at 23:30 and one at 00:30 fall on different days for a user in that time zone.
package stats

import (
	"math"
	"slices"
	"time"

	"github.com/myrjola/sixsplit/internal/ptr"
	"github.com/myrjola/sixsplit/internal/workout"
)

// MaxGapDays is the longest gap in calendar days between two workouts that keeps a streak alive.
// Today counts as day 0, so a workout the day before yesterday still continues the streak.
const MaxGapDays = 2

// civilDay is a calendar date stripped of its clock and location.
type civilDay struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time, loc *time.Location) civilDay {
	y, m, d := t.In(loc).Date()
	return civilDay{year: y, month: m, day: d}
}

// daysBetween returns b - a in whole calendar days. Computing on UTC midnights keeps the result
// exact across daylight saving changes.
func daysBetween(a, b civilDay) int {
	ta := time.Date(a.year, a.month, a.day, 0, 0, 0, 0, time.UTC)
	tb := time.Date(b.year, b.month, b.day, 0, 0, 0, 0, time.UTC)
	return int(tb.Sub(ta).Hours() / 24) //nolint:mnd // hours per day.
}

// step compares two workout days of a streak walk, earlier first. same reports a repeat of the
// day and broken a gap longer than MaxGapDays.
func step(earlier, later civilDay) (same, broken bool) {
	gap := daysBetween(earlier, later)
	return gap == 0, gap > MaxGapDays
}

// completedByDate returns the completed sessions sorted by date ascending. The sort is stable so
// sessions with equal dates keep their history order.
func completedByDate(sessions []workout.Session) []workout.Session {
	var out []workout.Session
	for _, s := range sessions {
		if s.IsCompleted {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b workout.Session) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// CurrentStreak counts the distinct workout days ending at the most recent completed session, as
// long as consecutive days are at most MaxGapDays apart. The streak is 0 when the most recent
// session is more than MaxGapDays before the calendar day of now.
func CurrentStreak(sessions []workout.Session, now time.Time) int {
	completed := completedByDate(sessions)
	if len(completed) == 0 {
		return 0
	}
	loc := now.Location()
	last := dayOf(completed[len(completed)-1].Date, loc)
	if daysBetween(last, dayOf(now, loc)) > MaxGapDays {
		return 0
	}

	streak := 1
	for i := len(completed) - 2; i >= 0; i-- {
		d := dayOf(completed[i].Date, loc)
		same, broken := step(d, last)
		if same {
			continue
		}
		if broken {
			break
		}
		streak++
		last = d
	}
	return streak
}

// BestStreak returns the longest run of distinct workout days in the history where consecutive
// days are at most MaxGapDays apart. Days are taken in loc.
func BestStreak(sessions []workout.Session, loc *time.Location) int {
	completed := completedByDate(sessions)
	if len(completed) == 0 {
		return 0
	}
	best, running := 1, 1
	prev := dayOf(completed[0].Date, loc)
	for _, s := range completed[1:] {
		d := dayOf(s.Date, loc)
		same, broken := step(prev, d)
		if same {
			continue
		}
		if broken {
			running = 1
		} else {
			running++
		}
		best = max(best, running)
		prev = d
	}
	return best
}

// CycleProgress counts the completed sessions of the current cycle.
func CycleProgress(sessions []workout.Session, cycleStart time.Time) int {
	n := 0
	for _, s := range sessions {
		if s.InCycle(cycleStart) {
			n++
		}
	}
	return n
}

// DoneInCycle reports whether the split day dayIndex was completed in the current cycle.
func DoneInCycle(sessions []workout.Session, cycleStart time.Time, dayIndex int) bool {
	return slices.ContainsFunc(sessions, func(s workout.Session) bool {
		return s.DayIndex == dayIndex && s.InCycle(cycleStart)
	})
}

// DoneToday reports whether the most recent completed session falls on the calendar day of now.
func DoneToday(sessions []workout.Session, now time.Time) bool {
	latest, ok := workout.LatestCompleted(sessions)
	if !ok {
		return false
	}
	return dayOf(latest.Date, now.Location()) == dayOf(now, now.Location())
}

// TotalVolume sums weight × reps over every set of every session, completed or not. A set without
// reps counts as one repetition.
func TotalVolume(sessions []workout.Session) float64 {
	total := 0.0
	for _, s := range sessions {
		for _, l := range s.Exercises {
			for _, set := range l.Sets {
				reps := max(ptr.Deref(set.Reps, 1), 1)
				total += set.Weight * float64(reps)
			}
		}
	}
	return total
}

// DailyPoint aggregates the completed sessions of one calendar day.
type DailyPoint struct {
	// Day is midnight of the calendar day in the caller's location.
	Day      time.Time
	Duration int
	Calories int
	Sessions int
}

// Daily returns one point per calendar day for the last days days up to and including the day of
// now, oldest first.
func Daily(sessions []workout.Session, now time.Time, days int) []DailyPoint {
	if days <= 0 {
		return nil
	}
	loc := now.Location()
	today := dayOf(now, loc)
	first := time.Date(today.year, today.month, today.day-(days-1), 0, 0, 0, 0, loc)

	points := make([]DailyPoint, days)
	index := make(map[civilDay]int, days)
	for i := range points {
		day := time.Date(first.Year(), first.Month(), first.Day()+i, 0, 0, 0, 0, loc)
		points[i] = DailyPoint{Day: day, Duration: 0, Calories: 0, Sessions: 0}
		index[dayOf(day, loc)] = i
	}
	for _, s := range sessions {
		if !s.IsCompleted {
			continue
		}
		i, ok := index[dayOf(s.Date, loc)]
		if !ok {
			continue
		}
		points[i].Duration += s.Duration
		points[i].Calories += s.Calories
		points[i].Sessions++
	}
	return points
}

// Averages returns the rounded mean duration and calories per point, counting rest days.
func Averages(points []DailyPoint) (int, int) {
	if len(points) == 0 {
		return 0, 0
	}
	var duration, calories int
	for _, p := range points {
		duration += p.Duration
		calories += p.Calories
	}
	n := float64(len(points))
	return int(math.Round(float64(duration) / n)), int(math.Round(float64(calories) / n))
}

// ActiveDays returns the days of month, 1-based and ascending, on which a session was completed.
func ActiveDays(sessions []workout.Session, year int, month time.Month, loc *time.Location) []int {
	seen := map[int]bool{}
	for _, s := range sessions {
		if !s.IsCompleted {
			continue
		}
		d := dayOf(s.Date, loc)
		if d.year == year && d.month == month {
			seen[d.day] = true
		}
	}
	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	slices.Sort(days)
	return days
}

// Summary bundles the dashboard numbers for one point in time.
type Summary struct {
	CurrentStreak int
	BestStreak    int
	TotalSessions int
	TotalVolume   float64
	CycleProgress int
	// CycleDays reports per split day whether it is done in the current cycle.
	CycleDays []bool
	DoneToday bool
	Quote     string
}

// Summarize computes the Summary of state at now for a plan of dayCount days.
func Summarize(state workout.State, now time.Time, dayCount int) Summary {
	cycleDays := make([]bool, dayCount)
	for i := range cycleDays {
		cycleDays[i] = DoneInCycle(state.Sessions, state.CycleStart, i)
	}
	return Summary{
		CurrentStreak: CurrentStreak(state.Sessions, now),
		BestStreak:    BestStreak(state.Sessions, now.Location()),
		TotalSessions: len(state.Sessions),
		TotalVolume:   TotalVolume(state.Sessions),
		CycleProgress: CycleProgress(state.Sessions, state.CycleStart),
		CycleDays:     cycleDays,
		DoneToday:     DoneToday(state.Sessions, now),
		Quote:         QuoteOfDay(now),
	}
}
