package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// CarTypeRepository defines the interface for car type persistence
type CarTypeRepository interface {
	Create(ctx context.Context, carType *models.CarType) error
	Save(ctx context.Context, carType *models.CarType) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.CarType, error)
	FindByName(ctx context.Context, name string) (*models.CarType, error)
	FindAll(ctx context.Context, activeOnly bool) ([]models.CarType, error)
}

type carTypeRepository struct {
	db *gorm.DB
}

// NewCarTypeRepository creates a new car type repository
func NewCarTypeRepository(db *gorm.DB) CarTypeRepository {
	return &carTypeRepository{db: db}
}

func (r *carTypeRepository) Create(ctx context.Context, carType *models.CarType) error {
	return wrapWrite(r.db.WithContext(ctx).Create(carType).Error, ErrCreateFailed)
}

func (r *carTypeRepository) Save(ctx context.Context, carType *models.CarType) error {
	return wrapWrite(r.db.WithContext(ctx).Save(carType).Error, ErrUpdateFailed)
}

func (r *carTypeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CarType{})
	if res.Error != nil {
		return wrapWrite(res.Error, ErrDeleteFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *carTypeRepository) FindByID(ctx context.Context, id string) (*models.CarType, error) {
	var carType models.CarType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&carType).Error; err != nil {
		return nil, translate(err)
	}
	return &carType, nil
}

func (r *carTypeRepository) FindByName(ctx context.Context, name string) (*models.CarType, error) {
	var carType models.CarType
	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&carType).Error; err != nil {
		return nil, translate(err)
	}
	return &carType, nil
}

func (r *carTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]models.CarType, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var carTypes []models.CarType
	err := q.Order("name").Find(&carTypes).Error
	return carTypes, translate(err)
}
