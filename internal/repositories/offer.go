package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// OfferRepository defines the interface for price offer persistence
type OfferRepository interface {
	Create(ctx context.Context, offer *models.OfferPrice) error
	Save(ctx context.Context, offer *models.OfferPrice) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.OfferPrice, error)
	FindAll(ctx context.Context, clientID string, page Page) ([]models.OfferPrice, error)
	AddService(ctx context.Context, service *models.OfferService) error
	FindService(ctx context.Context, offerID, serviceID string) (*models.OfferService, error)
	SaveService(ctx context.Context, service *models.OfferService) error
	DeleteService(ctx context.Context, offerID, serviceID string) error
}

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) preload(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Client").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") })
}

func (r *offerRepository) Create(ctx context.Context, offer *models.OfferPrice) error {
	return wrapWrite(r.db.WithContext(ctx).Omit("Client").Create(offer).Error, ErrCreateFailed)
}

func (r *offerRepository) Save(ctx context.Context, offer *models.OfferPrice) error {
	return wrapWrite(r.db.WithContext(ctx).Omit(clause.Associations).Save(offer).Error, ErrUpdateFailed)
}

func (r *offerRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.OfferPrice{})
	if res.Error != nil {
		return wrapWrite(res.Error, ErrDeleteFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *offerRepository) FindByID(ctx context.Context, id string) (*models.OfferPrice, error) {
	var offer models.OfferPrice
	if err := r.preload(r.db.WithContext(ctx)).Where("id = ?", id).First(&offer).Error; err != nil {
		return nil, translate(err)
	}
	return &offer, nil
}

func (r *offerRepository) FindAll(ctx context.Context, clientID string, page Page) ([]models.OfferPrice, error) {
	q := r.preload(r.db.WithContext(ctx))
	if clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}
	var offers []models.OfferPrice
	err := page.apply(q).Order("created_at DESC").Find(&offers).Error
	return offers, translate(err)
}

func (r *offerRepository) AddService(ctx context.Context, service *models.OfferService) error {
	return wrapWrite(r.db.WithContext(ctx).Create(service).Error, ErrCreateFailed)
}

func (r *offerRepository) FindService(ctx context.Context, offerID, serviceID string) (*models.OfferService, error) {
	var service models.OfferService
	err := r.db.WithContext(ctx).Where("id = ? AND offer_id = ?", serviceID, offerID).First(&service).Error
	if err != nil {
		return nil, translate(err)
	}
	return &service, nil
}

func (r *offerRepository) SaveService(ctx context.Context, service *models.OfferService) error {
	return wrapWrite(r.db.WithContext(ctx).Save(service).Error, ErrUpdateFailed)
}

func (r *offerRepository) DeleteService(ctx context.Context, offerID, serviceID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND offer_id = ?", serviceID, offerID).Delete(&models.OfferService{})
	if res.Error != nil {
		return wrapWrite(res.Error, ErrDeleteFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
