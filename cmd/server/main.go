package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/adapters"
	sqliteadapter "github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/adapters/sqlite"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/config"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/form"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/handlers"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/submit"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)
	ctx := context.Background()

	repo, err := sqliteadapter.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer repo.Close()
	if err := repo.Migrate(ctx); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	sink, err := adapters.NewSink(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to build sink: %v", err)
	}

	store := form.NewStore()
	coord := submit.NewCoordinator(sink, store,
		submit.WithLogger(logger),
		submit.WithJournal(repo),
		submit.WithDispatchTimeout(cfg.DispatchTimeout),
	)
	session := submit.NewSession(store, coord, form.Validator{Strict: cfg.StrictHours})
	h := handlers.New(session, repo, logger)

	log.Printf("Daily Task Tracker running on http://localhost:%s", cfg.Port)
	log.Printf("Database: %s  Sink: %s", cfg.DBPath, cfg.SinkKind)
	if err := http.ListenAndServe(":"+cfg.Port, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
