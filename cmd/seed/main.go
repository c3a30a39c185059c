package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/pariney/saree-storefront/internal/seed"
	"github.com/pariney/saree-storefront/pkg/config"
	"github.com/pariney/saree-storefront/pkg/db"
	"github.com/pariney/saree-storefront/pkg/logger"
	"github.com/pariney/saree-storefront/pkg/migrate"
)

func main() {
	migrateFirst := flag.Bool("migrate", false, "apply pending migrations before seeding")
	flag.Parse()

	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})
	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithField(ctx, "env", cfg.App.Env)

	if err := run(ctx, cfg, logg, *migrateFirst); err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, migrateFirst bool) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if migrateFirst {
		sqlDB, err := dbClient.DB().DB()
		if err != nil {
			return err
		}
		if err := migrate.Run(ctx, sqlDB, "", "up"); err != nil {
			return err
		}
	}

	_, err = seed.Apply(ctx, dbClient, seed.LaunchCatalog(), logg)
	return err
}
