package migrate

import (
	"context"
	"fmt"

	"github.com/pariney/saree-storefront/pkg/config"
	"github.com/pariney/saree-storefront/pkg/db"
	"github.com/pariney/saree-storefront/pkg/logger"
)

// MaybeRunDev applies the embedded migrations on API start when running in
// dev with SAREE_AUTO_MIGRATE enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "migrate.auto.start")
	if err := Run(ctx, sqlDB, "", "up"); err != nil {
		return err
	}
	logg.Info(ctx, "migrate.auto.done")
	return nil
}
