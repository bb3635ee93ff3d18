package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/catalog-backend/internal/seed"
	"github.com/angelmondragon/catalog-backend/pkg/config"
	"github.com/angelmondragon/catalog-backend/pkg/db"
	"github.com/angelmondragon/catalog-backend/pkg/logger"
	"github.com/angelmondragon/catalog-backend/pkg/metrics"
	"github.com/angelmondragon/catalog-backend/pkg/migrate"
)

func main() {
	reset := flag.Bool("reset", false, "delete all categories, products and variants before seeding")
	metricsFile := flag.String("metrics-file", "", "write seed metrics in the prometheus text format to this file")
	flag.Parse()

	os.Exit(run(*reset, *metricsFile))
}

func run(reset bool, metricsFile string) int {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		return 1
	}
	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env, "reset": reset})

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		return 1
	}
	defer dbClient.Close()

	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run migrations", err)
		return 1
	}

	registry := prometheus.NewRegistry()
	svc, err := seed.NewService(dbClient, logg.Component("seed"), seed.WithMetrics(metrics.NewSeedMetrics(registry)))
	if err != nil {
		logg.Error(ctx, "failed to create seed service", err)
		return 1
	}

	res, runErr := svc.Run(ctx, seed.Options{Reset: reset})

	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
			logg.Error(ctx, "failed to write seed metrics", err)
		}
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "seeding failed, nothing was changed: %v\n", runErr)
		return 1
	}

	if res.Reset {
		fmt.Println("Reset done: deleted categories, products and variants.")
	}
	fmt.Println("Seeding completed.")
	fmt.Printf("Categories created: %d\n", res.CategoriesCreated)
	fmt.Printf("Products created:   %d\n", res.ProductsCreated)
	fmt.Printf("Variants created:   %d\n", res.VariantsCreated)
	fmt.Println("Run: seed  (or reset: seed --reset)")
	return 0
}
