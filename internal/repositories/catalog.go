package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// CatalogRepository defines the interface for service catalog persistence
type CatalogRepository interface {
	Create(ctx context.Context, entry *models.CatalogService) error
	Save(ctx context.Context, entry *models.CatalogService) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.CatalogService, error)
	FindByName(ctx context.Context, name, excludeID string) (*models.CatalogService, error)
	FindAll(ctx context.Context) ([]models.CatalogService, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Create(ctx context.Context, entry *models.CatalogService) error {
	return wrapWrite(r.db.WithContext(ctx).Create(entry).Error, ErrCreateFailed)
}

func (r *catalogRepository) Save(ctx context.Context, entry *models.CatalogService) error {
	return wrapWrite(r.db.WithContext(ctx).Save(entry).Error, ErrUpdateFailed)
}

func (r *catalogRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CatalogService{})
	if res.Error != nil {
		return wrapWrite(res.Error, ErrDeleteFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *catalogRepository) FindByID(ctx context.Context, id string) (*models.CatalogService, error) {
	var entry models.CatalogService
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (r *catalogRepository) FindByName(ctx context.Context, name, excludeID string) (*models.CatalogService, error) {
	q := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var entry models.CatalogService
	if err := q.First(&entry).Error; err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (r *catalogRepository) FindAll(ctx context.Context) ([]models.CatalogService, error) {
	var entries []models.CatalogService
	err := r.db.WithContext(ctx).Order("name").Find(&entries).Error
	return entries, translate(err)
}
