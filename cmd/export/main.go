// Command export writes a company analytics workbook to disk, either from a
// PostgreSQL record store or from seeded demo data.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"teampulse/adapters/excel"
	"teampulse/adapters/postgres"
	"teampulse/app"
	"teampulse/domain/analytics"
	"teampulse/domain/core"
	"teampulse/internal"
	"teampulse/internal/config"
	"teampulse/internal/report"
	"teampulse/internal/testkit"
	"teampulse/ports"
)

func main() {
	period := flag.String("period", "week", "reporting window: week, month, or quarter")
	outDir := flag.String("out", "", "output directory (defaults to EXPORT_DIR)")
	printReport := flag.Bool("report", false, "also print the markdown report to stdout")
	flag.Parse()

	_ = godotenv.Load()
	logger := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}
	if *outDir == "" {
		*outDir = cfg.Export.Dir
	}

	g, err := analytics.ParseGranularity(*period)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var (
		tasks     ports.TaskRepository
		checkIns  ports.CheckInRepository
		directory ports.TeamDirectory
	)
	if os.Getenv("DATABASE_URL") == "" {
		kit := testkit.NewTestKit(42, time.Now())
		if err := kit.SeedCompany(ctx, 3, 5); err != nil {
			logger.Error("seeding demo data: %v", err)
			os.Exit(1)
		}
		tasks, checkIns, directory = kit.Repo, kit.Repo, kit.Directory()
	} else {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			logger.Error("connecting to database: %v", err)
			os.Exit(1)
		}
		defer db.Close()
		tasks = postgres.NewTaskRepository(db)
		checkIns = postgres.NewCheckInRepository(db)
		directory = postgres.NewTeamDirectory(db)
	}

	clock := core.SystemClock{}
	metrics := app.NewMetricsService(tasks, checkIns, clock)
	company := app.NewCompanyService(metrics, app.NewInsightGenerator(), clock)

	teams, err := directory.Teams(ctx)
	if err != nil {
		logger.Error("loading roster: %v", err)
		os.Exit(1)
	}

	now := clock.Now()
	snapshot, err := company.ComputeCompanyAnalytics(ctx, teams, analytics.ResolveRange(g, now))
	if err != nil {
		logger.Error("computing analytics: %v", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("creating output dir: %v", err)
		os.Exit(1)
	}
	path := filepath.Join(*outDir, fmt.Sprintf("analytics-%s-%s.xlsx", g, now.Format("2006-01-02")))
	f, err := os.Create(path)
	if err != nil {
		logger.Error("creating %s: %v", path, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := excel.NewExporter().Write(f, snapshot, now); err != nil {
		logger.Error("exporting: %v", err)
		os.Exit(1)
	}
	logger.Info("wrote %s", path)

	if *printReport {
		fmt.Println(report.BuildCompanyContext(snapshot, now))
	}
}
