package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/models"
)

type GalleryGormRepository struct {
	db *gorm.DB
}

func NewGalleryGormRepository(db *gorm.DB) *GalleryGormRepository {
	return &GalleryGormRepository{db: db}
}

func (r *GalleryGormRepository) Create(ctx context.Context, img *models.GalleryImage) error {
	if err := r.db.WithContext(ctx).Create(img).Error; err != nil {
		return httperr.Persistence(err)
	}
	return nil
}

func (r *GalleryGormRepository) Get(ctx context.Context, id uint) (*models.GalleryImage, error) {
	var img models.GalleryImage
	if err := r.db.WithContext(ctx).First(&img, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("image_not_found")
		}
		return nil, httperr.Persistence(err)
	}
	return &img, nil
}

// List orders by sort_order then newest first. activeOnly serves the public site.
func (r *GalleryGormRepository) List(ctx context.Context, activeOnly bool) ([]models.GalleryImage, error) {
	q := r.db.WithContext(ctx).Model(&models.GalleryImage{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var out []models.GalleryImage
	if err := q.Order("sort_order ASC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, httperr.Persistence(err)
	}
	return out, nil
}

func (r *GalleryGormRepository) Save(ctx context.Context, img *models.GalleryImage) error {
	if err := r.db.WithContext(ctx).Save(img).Error; err != nil {
		return httperr.Persistence(err)
	}
	return nil
}

func (r *GalleryGormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.GalleryImage{}, id)
	if res.Error != nil {
		return httperr.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("image_not_found")
	}
	return nil
}
