package heroslides

import (
	"context"

	"github.com/pariney/saree-storefront/pkg/db/models"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns slides in carousel order.
func (r *Repository) List(ctx context.Context) ([]models.HeroSlide, error) {
	slides := []models.HeroSlide{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&slides).Error; err != nil {
		return nil, err
	}
	return slides, nil
}

func (r *Repository) Create(ctx context.Context, slide *models.HeroSlide) error {
	return r.db.WithContext(ctx).Create(slide).Error
}

func (r *Repository) Update(ctx context.Context, id int64, changes map[string]any) (*models.HeroSlide, error) {
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(&models.HeroSlide{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	var slide models.HeroSlide
	if err := r.db.WithContext(ctx).First(&slide, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slide, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.HeroSlide{}).Error
}
