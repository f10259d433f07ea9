package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/myrjola/sixsplit/internal/report"
	"github.com/myrjola/sixsplit/internal/stats"
	"github.com/myrjola/sixsplit/internal/workout"
)

// printSession lists the logs of session with 1-based positions for the set, swap and choose
// commands. With options every log also lists its candidate pool.
func printSession(
	w io.Writer,
	engine *workout.Engine,
	state workout.State,
	session workout.Session,
	loc *time.Location,
	options bool,
) error {
	coverage := workout.CheckWeeklyRequirement(state.Sessions, state.CycleStart)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", session.DayTitle)
	fmt.Fprintf(&b, "Started %s · %d sets logged\n", session.StartedAt.In(loc).Format("Mon 2 Jan 15:04"), session.TotalSets())
	for i, l := range session.Exercises {
		marker := ""
		if engine.Locked(session, l, coverage) {
			marker = "  [required this cycle]"
		}
		fmt.Fprintf(&b, "\n%2d. %s (%s · %s)%s\n", i+1, l.Name, l.MuscleGroup, l.SubGroup, marker)
		for j, set := range l.Sets {
			fmt.Fprintf(&b, "      set %d: %s\n", j+1, report.FormatSet(set))
		}
		if !options {
			continue
		}
		for j, ex := range l.AvailableExercises {
			current := " "
			if j == l.SelectedIndex {
				current = "*"
			}
			fmt.Fprintf(&b, "    %s %d) %s\n", current, j+1, ex.Name)
		}
	}
	if len(session.Exercises) == 0 {
		b.WriteString("\nNo exercises. Add a block with toggle.\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func printToday(w io.Writer, engine *workout.Engine, state workout.State, summary stats.Summary) error {
	plan := engine.Plan()
	var b strings.Builder
	switch {
	case state.Active != nil:
		fmt.Fprintf(&b, "Resume session: %s (%d sets logged)\n", state.Active.DayTitle, state.Active.TotalSets())
	case summary.DoneToday:
		b.WriteString("Complete. Great job! Rest or go again.\n")
	default:
		next := engine.NextDayIndex(state.Sessions)
		day, _ := plan.Day(next)
		fmt.Fprintf(&b, "Suggested: %s\n", day.Title)
	}

	fmt.Fprintf(&b, "\nStreak: %d days · Cycle: %d/%d\n", summary.CurrentStreak, summary.CycleProgress, len(plan.Days))
	for i, day := range plan.Days {
		check := "[ ]"
		if summary.CycleDays[i] {
			check = "[x]"
		}
		fmt.Fprintf(&b, "  %s Day %d %s\n", check, i+1, day.Name())
	}
	coverage := workout.CheckWeeklyRequirement(state.Sessions, state.CycleStart)
	if missing := coverage.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, sub := range missing {
			names[i] = string(sub)
		}
		fmt.Fprintf(&b, "Still needed this cycle: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "\n%q\n", summary.Quote)
	_, err := io.WriteString(w, b.String())
	return err
}

func printFinished(w io.Writer, finished workout.Session) error {
	_, err := fmt.Fprintf(w, "Finished %s: %d exercises, %d sets, %d min, %d kcal\n",
		finished.DayTitle, len(finished.Exercises), finished.TotalSets(), finished.Duration, finished.Calories)
	return err
}

func printStats(
	w io.Writer,
	state workout.State,
	summary stats.Summary,
	points []stats.DailyPoint,
	now time.Time,
) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Day streak:     %d\n", summary.CurrentStreak)
	fmt.Fprintf(&b, "Best streak:    %d\n", summary.BestStreak)
	fmt.Fprintf(&b, "Total sessions: %d\n", summary.TotalSessions)
	fmt.Fprintf(&b, "Total kg moved: %.0f\n", summary.TotalVolume)

	fmt.Fprintf(&b, "\nLast %d days\n", len(points))
	for _, p := range points {
		fmt.Fprintf(&b, "  %s  %3d min  %4d kcal\n", p.Day.Format("Jan 2"), p.Duration, p.Calories)
	}
	avgDuration, avgCalories := stats.Averages(points)
	fmt.Fprintf(&b, "Avg time: %dm · Avg burn: %d kcal\n", avgDuration, avgCalories)

	active := stats.ActiveDays(state.Sessions, now.Year(), now.Month(), now.Location())
	days := make([]string, len(active))
	for i, d := range active {
		days[i] = fmt.Sprint(d)
	}
	fmt.Fprintf(&b, "\nTrained in %s: %s\n", now.Format("January"), strings.Join(days, " "))
	fmt.Fprintf(&b, "\n%q\n", summary.Quote)
	_, err := io.WriteString(w, b.String())
	return err
}
