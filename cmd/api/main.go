package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"teampulse/adapters/postgres"
	"teampulse/app"
	"teampulse/domain/core"
	"teampulse/internal"
	"teampulse/internal/config"
	"teampulse/internal/testkit"
	"teampulse/ports"
	"teampulse/ui"
)

func main() {
	_ = godotenv.Load()
	logger := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	var (
		tasks    ports.TaskRepository
		checkIns ports.CheckInRepository
		teams    ports.TeamDirectory
	)

	if os.Getenv("DEMO_MODE") == "1" || os.Getenv("DATABASE_URL") == "" {
		logger.Info("running with seeded in-memory data")
		kit := testkit.NewTestKit(time.Now().UnixNano(), time.Now())
		if err := kit.SeedCompany(context.Background(), 3, 5); err != nil {
			logger.Error("seeding demo data: %v", err)
			os.Exit(1)
		}
		tasks = kit.Repo
		checkIns = kit.Repo
		teams = kit.Directory()
	} else {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			logger.Error("connecting to database: %v", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(context.Background(), db); err != nil {
			logger.Error("migrating: %v", err)
			os.Exit(1)
		}
		tasks = postgres.NewTaskRepository(db)
		checkIns = postgres.NewCheckInRepository(db)
		teams = postgres.NewTeamDirectory(db)
	}

	clock := core.SystemClock{}
	metrics := app.NewMetricsService(tasks, checkIns, clock)
	company := app.NewCompanyService(metrics, app.NewInsightGenerator(), clock)

	server := ui.NewServer(metrics, company, teams, clock, logger)
	if err := server.ListenAndServe(cfg.Server.Port); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
}
