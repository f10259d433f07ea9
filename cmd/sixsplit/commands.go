package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/myrjola/sixsplit/internal/errors"
	"github.com/myrjola/sixsplit/internal/logging"
	"github.com/myrjola/sixsplit/internal/ptr"
	"github.com/myrjola/sixsplit/internal/report"
	"github.com/myrjola/sixsplit/internal/split"
	"github.com/myrjola/sixsplit/internal/stats"
	"github.com/myrjola/sixsplit/internal/workout"
	"github.com/spf13/cobra"
)

var errResetNotConfirmed = errors.NewSentinel("reset deletes all workout history, pass --yes to confirm")

func (app *application) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sixsplit",
		Short:         "Follow a 6-day training split with rotating exercises",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())))
		},
	}
	root.AddCommand(
		app.todayCommand(),
		app.startCommand(),
		app.showCommand(),
		app.setCommand(),
		app.swapCommand(),
		app.chooseCommand(),
		app.toggleCommand(),
		app.finishCommand(),
		app.discardCommand(),
		app.statsCommand(),
		app.historyCommand(),
		app.resetCommand(),
		app.themeCommand(),
		app.backupCommand(),
	)
	return root
}

// position parses a 1-based position argument into an index below n.
func position(arg, what string, n int) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil || v < 1 || v > n {
		return 0, fmt.Errorf("%s must be a number between 1 and %d, got %q", what, n, arg)
	}
	return v - 1, nil
}

// activeLog resolves the 1-based exercise position arg in the active session.
func (app *application) activeLog(cmd *cobra.Command, arg string) (workout.ExerciseLog, error) {
	session, err := app.service.Active(cmd.Context())
	if err != nil {
		return workout.ExerciseLog{}, err
	}
	i, err := position(arg, "exercise", len(session.Exercises))
	if err != nil {
		return workout.ExerciseLog{}, err
	}
	return session.Exercises[i], nil
}

// printActive prints session together with the lock markers derived from the stored state.
func (app *application) printActive(cmd *cobra.Command, session workout.Session, options bool) error {
	state, err := app.service.State(cmd.Context())
	if err != nil {
		return err
	}
	return printSession(cmd.OutOrStdout(), app.service.Engine(), state, session, app.loc, options)
}

func (app *application) todayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the suggested workout, cycle progress and streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := app.service.State(cmd.Context())
			if err != nil {
				return err
			}
			now := app.now().In(app.loc)
			engine := app.service.Engine()
			summary := stats.Summarize(state, now, len(engine.Plan().Days))
			return printToday(cmd.OutOrStdout(), engine, state, summary)
		},
	}
}

func (app *application) startCommand() *cobra.Command {
	var (
		day     int
		discard bool
	)
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Resume the active workout or generate the next one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var forceDay *int
			if cmd.Flags().Changed("day") {
				days := len(app.service.Engine().Plan().Days)
				if day < 1 || day > days {
					return fmt.Errorf("day must be between 1 and %d, got %d", days, day)
				}
				forceDay = ptr.Ref(day - 1)
			}
			session, err := app.service.Begin(cmd.Context(), forceDay, discard)
			if err != nil {
				return err
			}
			return app.printActive(cmd, session, false)
		},
	}
	cmd.Flags().IntVar(&day, "day", 0, "start this day of the split (1-based) instead of the next one")
	cmd.Flags().BoolVar(&discard, "discard", false, "replace an active workout that already has logged sets")
	return cmd
}

func (app *application) showCommand() *cobra.Command {
	var options bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.service.Active(cmd.Context())
			if err != nil {
				return err
			}
			return app.printActive(cmd, session, options)
		},
	}
	cmd.Flags().BoolVar(&options, "options", false, "list the alternative exercises of every log")
	return cmd
}

func (app *application) setCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Log or remove sets",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <exercise> <weight> [reps]",
		Short: "Log a set for an exercise of the active workout",
		Args:  cobra.RangeArgs(2, 3), //nolint:mnd // weight and optional reps.
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := app.activeLog(cmd, args[0])
			if err != nil {
				return err
			}
			weight, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parse weight %q: %w", args[1], err)
			}
			set := workout.SetRecord{Weight: weight, Reps: nil}
			if len(args) == 3 { //nolint:mnd // reps given.
				reps, atoiErr := strconv.Atoi(args[2])
				if atoiErr != nil {
					return fmt.Errorf("parse reps %q: %w", args[2], atoiErr)
				}
				set.Reps = &reps
			}
			session, err := app.service.AddSet(cmd.Context(), log.LogID, set)
			if err != nil {
				return err
			}
			return app.printActive(cmd, session, false)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <exercise> <set>",
		Short: "Remove a logged set",
		Args:  cobra.ExactArgs(2), //nolint:mnd // exercise and set.
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := app.activeLog(cmd, args[0])
			if err != nil {
				return err
			}
			i, err := position(args[1], "set", len(log.Sets))
			if err != nil {
				return err
			}
			session, err := app.service.RemoveSet(cmd.Context(), log.LogID, i)
			if err != nil {
				return err
			}
			return app.printActive(cmd, session, false)
		},
	})
	return cmd
}

func (app *application) swapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "swap <exercise>",
		Short: "Replace an exercise with the least recently used alternative",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := app.activeLog(cmd, args[0])
			if err != nil {
				return err
			}
			session, err := app.service.Swap(cmd.Context(), log.LogID)
			if err != nil {
				return err
			}
			return app.printActive(cmd, session, false)
		},
	}
}

func (app *application) chooseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "choose <exercise> <option>",
		Short: "Pick an alternative from an exercise's options, see show --options",
		Args:  cobra.ExactArgs(2), //nolint:mnd // exercise and option.
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := app.activeLog(cmd, args[0])
			if err != nil {
				return err
			}
			i, err := position(args[1], "option", len(log.AvailableExercises))
			if err != nil {
				return err
			}
			session, err := app.service.Choose(cmd.Context(), log.LogID, i)
			if err != nil {
				return err
			}
			return app.printActive(cmd, session, false)
		},
	}
}

func (app *application) toggleCommand() *cobra.Command {
	var names []string
	for _, b := range split.Blocks() {
		names = append(names, string(b))
	}
	return &cobra.Command{
		Use:       "toggle <block>",
		Short:     "Add or remove a whole block of the active workout",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := split.ParseBlock(args[0])
			if err != nil {
				return err
			}
			session, err := app.service.Toggle(cmd.Context(), block)
			if err != nil {
				return err
			}
			return app.printActive(cmd, session, false)
		},
	}
}

func (app *application) finishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "finish",
		Short: "Complete the active workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			finished, err := app.service.Finish(cmd.Context())
			if err != nil {
				return err
			}
			return printFinished(cmd.OutOrStdout(), finished)
		},
	}
}

func (app *application) discardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discard",
		Short: "Drop the active workout without recording it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.Discard(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Workout discarded.")
			return err
		},
	}
}

func (app *application) statsCommand() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show streaks, volume and the activity trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("days") {
				days = app.statsDays
			}
			if days < 1 {
				return fmt.Errorf("days must be positive, got %d", days)
			}
			state, err := app.service.State(cmd.Context())
			if err != nil {
				return err
			}
			now := app.now().In(app.loc)
			summary := stats.Summarize(state, now, len(app.service.Engine().Plan().Days))
			return printStats(cmd.OutOrStdout(), state, summary, stats.Daily(state.Sessions, now, days), now)
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "length of the activity trend in days, 7 or 30 in the app")
	return cmd
}

func (app *application) historyCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List completed workouts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			state, err := app.service.State(cmd.Context())
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), f, state.Sessions, app.loc)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(report.FormatText), "output format: text, markdown or html")
	return cmd
}

func (app *application) resetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the workout history, exercise recency and active workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errResetNotConfirmed
			}
			if err := app.service.Reset(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "All workout data deleted.")
			return err
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all workout data")
	return cmd
}

func (app *application) themeCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Show or set the stored theme preference",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"dark", "light"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				if err := app.service.SetDarkMode(ctx, args[0] == "dark"); err != nil {
					return err
				}
			}
			dark, err := app.service.DarkMode(ctx)
			if err != nil {
				return err
			}
			theme := "light"
			if dark {
				theme = "dark"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Theme:", theme)
			return err
		},
	}
}

func (app *application) backupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <path>",
		Short: "Write a copy of the database to a new file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.db.Backup(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Backup written to", args[0])
			return err
		},
	}
}
