package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/myrjola/sixsplit/internal/envstruct"
	"github.com/myrjola/sixsplit/internal/errors"
	"github.com/myrjola/sixsplit/internal/logging"
	"github.com/myrjola/sixsplit/internal/split"
	"github.com/myrjola/sixsplit/internal/sqlite"
	"github.com/myrjola/sixsplit/internal/workout"
)

type config struct {
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"SIXSPLIT_SQLITE_URL" envDefault:"./sixsplit.sqlite3"`
	// LogLevel is one of debug, info, warn and error. Logs go to stderr.
	LogLevel string `env:"SIXSPLIT_LOG_LEVEL" envDefault:"warn"`
	// CatalogPath optionally replaces the embedded exercise catalog with a YAML file.
	CatalogPath string `env:"SIXSPLIT_CATALOG_PATH" envDefault:""`
	// PlanPath optionally replaces the embedded 6-day plan with a YAML file.
	PlanPath string `env:"SIXSPLIT_PLAN_PATH" envDefault:""`
	// Timezone is the IANA zone used for calendar days, "Local" for the system zone.
	Timezone string `env:"SIXSPLIT_TIMEZONE" envDefault:"Local"`
	// StatsDays is the default length of the activity trend in days.
	StatsDays int `env:"SIXSPLIT_STATS_DAYS" envDefault:"7"`
}

type application struct {
	logger    *slog.Logger
	db        *sqlite.Database
	service   *workout.Service
	loc       *time.Location
	statsDays int
	now       func() time.Time
}

func run(
	ctx context.Context,
	args []string,
	stdout io.Writer,
	stderr io.Writer,
	lookupEnv func(string) (string, bool),
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(err, errors.DecoratePanic(r))
		}
	}()

	var cancel context.CancelFunc
	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "parse log level", slog.String("level", cfg.LogLevel))
	}
	logger := logging.NewLogger(stderr, level)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return errors.Wrap(err, "load timezone", slog.String("timezone", cfg.Timezone))
	}

	catalog, plan, err := split.LoadFiles(cfg.CatalogPath, cfg.PlanPath)
	if err != nil {
		return errors.Wrap(err, "load reference data",
			slog.String("catalog", cfg.CatalogPath), slog.String("plan", cfg.PlanPath))
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, errors.Wrap(closeErr, "close db"))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelDebug, "connected to db", slog.String("url", cfg.SqliteURL))

	app := &application{
		logger:    logger,
		db:        db,
		service:   workout.NewService(db, workout.NewEngine(catalog, plan), logger),
		loc:       loc,
		statsDays: cfg.StatsDays,
		now:       time.Now,
	}

	root := app.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err = root.ExecuteContext(ctx); err != nil {
		return errors.Wrap(err, "run command")
	}
	return nil
}

func main() {
	ctx := context.Background()
	logger := logging.NewLogger(os.Stderr, slog.LevelInfo)
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "sixsplit failed", errors.SlogError(err))
		os.Exit(1)
	}
}
