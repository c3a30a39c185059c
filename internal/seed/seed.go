// Package seed writes the storefront reference data. Rows that already exist
// are left alone, so Apply can run on every deploy.
package seed

import (
	"context"

	"github.com/pariney/saree-storefront/pkg/db"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"github.com/pariney/saree-storefront/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Result counts the rows Apply inserted per table.
type Result struct {
	Categories int64
	Slides     int64
	Products   int64
}

// Apply inserts catalog inside a single transaction.
func Apply(ctx context.Context, client *db.Client, catalog Catalog, logg *logger.Logger) (Result, error) {
	if logg == nil {
		logg = logger.Nop()
	}
	var res Result
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		if res.Categories, err = insert(tx, catalog.Categories); err != nil {
			return pkgerrors.Store(err, "seed categories")
		}
		if res.Slides, err = insert(tx, catalog.Slides); err != nil {
			return pkgerrors.Store(err, "seed hero slides")
		}
		if res.Products, err = insert(tx, catalog.Products); err != nil {
			return pkgerrors.Store(err, "seed products")
		}
		if err := resetSequences(tx, "hero_slides", "products"); err != nil {
			return pkgerrors.Store(err, "reset sequences")
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"categories": res.Categories,
		"slides":     res.Slides,
		"products":   res.Products,
	}), "seed.applied")
	return res, nil
}

func insert[T any](tx *gorm.DB, rows []T) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	return result.RowsAffected, result.Error
}

// resetSequences moves bigserial sequences past the explicit ids written
// above. SQLite tracks AUTOINCREMENT on its own.
func resetSequences(tx *gorm.DB, tables ...string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range tables {
		stmt := "SELECT setval(pg_get_serial_sequence('" + table + "', 'id'), COALESCE((SELECT MAX(id) FROM " + table + "), 1))"
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
