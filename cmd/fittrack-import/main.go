package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/fittrack/internal/config"
	"github.com/claude/fittrack/internal/ingest"
	"github.com/claude/fittrack/internal/ingest/alpha"
	"github.com/claude/fittrack/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	csvPath := flag.String("file", "", "Alpha Progression CSV export (required)")
	userID := flag.Int("user", 1, "user ID to import as")
	dryRun := flag.Bool("dry-run", false, "parse and report counts without touching the database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *csvPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: fittrack-import -config config.yaml -file export.csv [-user N] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Error("failed to open export", "path", *csvPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if *dryRun {
		log.Info("DRY RUN mode: no data will be written to the database")
		sessions, err := alpha.Parse(f)
		if err != nil {
			log.Error("parse failed", "error", err)
			os.Exit(1)
		}
		for _, s := range sessions {
			w := alpha.ToWorkout(s, *userID)
			log.Info("session", "name", s.Name, "date", s.Date, "exercises", len(w.Exercises))
		}
		log.Info("dry run complete", "sessions", len(sessions))
		return
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	// Connect database
	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	res, err := alpha.NewProvider(db, log).Ingest(ctx, f, *userID)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	printStats(log, res)
	log.Info("import complete")
}

func printStats(log *slog.Logger, res *ingest.Result) {
	log.Info("import stats",
		"sessions", res.SessionsReceived,
		"workouts_inserted", res.WorkoutsInserted,
		"workouts_replaced", res.WorkoutsReplaced,
		"sets", res.SetsReceived,
		"warmup_sets", res.WarmupSets,
	)
	if len(res.UnmappedExercises) > 0 {
		log.Info("exercises with no muscle mapping", "exercises", res.UnmappedExercises)
	}
}
