package services

import (
	"context"
	"strings"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/shopspring/decimal"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/cache"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

// CarTypeInput creates or replaces a car type
type CarTypeInput struct {
	Name         string          `json:"name" validate:"required"`
	Manufacturer string          `json:"manufacturer"`
	Size         models.CarSize  `json:"size" validate:"omitempty,oneof=small medium large"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	IsActive     *bool           `json:"isActive"`
}

// CarTypeService manages the known car models
type CarTypeService struct {
	deps *Dependencies
}

// NewCarTypeService creates a new car type service
func NewCarTypeService(deps *Dependencies) *CarTypeService {
	return &CarTypeService{deps: deps}
}

// FindAll lists car types, cached per activeOnly flag
func (s *CarTypeService) FindAll(ctx context.Context, activeOnly bool) ([]models.CarType, error) {
	var carTypes []models.CarType
	if s.deps.cached(ctx, cache.CarTypesKey(activeOnly), &carTypes) {
		return carTypes, nil
	}
	carTypes, err := s.deps.Store.CarTypes.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fromRepo(err, i18n.CarTypeNotFound)
	}
	s.deps.remember(ctx, cache.CarTypesKey(activeOnly), carTypes)
	return carTypes, nil
}

// FindOne returns a car type by id
func (s *CarTypeService) FindOne(ctx context.Context, id string) (*models.CarType, error) {
	carType, err := s.deps.Store.CarTypes.FindByID(ctx, id)
	return carType, fromRepo(err, i18n.CarTypeNotFound)
}

// Create adds a car type with a unique name
func (s *CarTypeService) Create(ctx context.Context, input CarTypeInput) (*models.CarType, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if _, err := s.deps.Store.CarTypes.FindByName(ctx, name); err == nil {
		return nil, conflict(i18n.CarTypeNameTaken)
	} else if !IsNotFound(fromRepo(err, i18n.CarTypeNotFound)) {
		return nil, fromRepo(err, i18n.CarTypeNotFound)
	}

	carType := &models.CarType{
		Name:         name,
		Manufacturer: strings.TrimSpace(input.Manufacturer),
		Size:         input.Size,
		AveragePrice: input.AveragePrice.Round(2),
		IsActive:     true,
	}
	if err := s.deps.Store.CarTypes.Create(ctx, carType); err != nil {
		return nil, fromRepo(err, i18n.CarTypeNotFound)
	}
	if input.IsActive != nil && !*input.IsActive {
		carType.IsActive = false
		if err := s.deps.Store.CarTypes.Save(ctx, carType); err != nil {
			return nil, fromRepo(err, i18n.CarTypeNotFound)
		}
	}
	s.invalidate(ctx)
	return carType, nil
}

// Update replaces the attributes of a car type
func (s *CarTypeService) Update(ctx context.Context, id string, input CarTypeInput) (*models.CarType, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	carType, err := s.deps.Store.CarTypes.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.CarTypeNotFound)
	}
	name := strings.TrimSpace(input.Name)
	if other, err := s.deps.Store.CarTypes.FindByName(ctx, name); err == nil && other.ID != id {
		return nil, conflict(i18n.CarTypeNameTaken)
	}

	carType.Name = name
	carType.Manufacturer = strings.TrimSpace(input.Manufacturer)
	carType.Size = input.Size
	carType.AveragePrice = input.AveragePrice.Round(2)
	if input.IsActive != nil {
		carType.IsActive = *input.IsActive
	}
	if err := s.deps.Store.CarTypes.Save(ctx, carType); err != nil {
		return nil, fromRepo(err, i18n.CarTypeNotFound)
	}
	s.invalidate(ctx)
	return carType, nil
}

// Remove soft deletes a car type
func (s *CarTypeService) Remove(ctx context.Context, id string) error {
	if err := s.deps.Store.CarTypes.Delete(ctx, id); err != nil {
		return fromRepo(err, i18n.CarTypeNotFound)
	}
	s.invalidate(ctx)
	return nil
}

// FindOrCreateByModel returns the car type named after the model, creating it when unknown
func (s *CarTypeService) FindOrCreateByModel(ctx context.Context, car models.CarDetails) (*models.CarType, error) {
	return s.findOrCreate(ctx, s.deps.Store, car)
}

func (s *CarTypeService) findOrCreate(ctx context.Context, store *repositories.Store, car models.CarDetails) (*models.CarType, error) {
	defer newrelic.FromContext(ctx).StartSegment("car-type-find-or-create").End()

	name := strings.TrimSpace(car.CarModel)
	if name == "" {
		return nil, badRequest(i18n.OfferCarModelRequired)
	}
	carType, err := store.CarTypes.FindByName(ctx, name)
	if err == nil {
		return carType, nil
	}
	if !IsNotFound(fromRepo(err, i18n.CarTypeNotFound)) {
		return nil, fromRepo(err, i18n.CarTypeNotFound)
	}

	carType = &models.CarType{
		Name:         name,
		Manufacturer: car.CarManufacturer,
		Size:         car.CarSize,
		IsActive:     true,
	}
	if err := store.CarTypes.Create(ctx, carType); err != nil {
		return nil, fromRepo(err, i18n.CarTypeNotFound)
	}
	s.invalidate(ctx)
	return carType, nil
}

func (s *CarTypeService) invalidate(ctx context.Context) {
	s.deps.invalidate(ctx, cache.CarTypesKey(true), cache.CarTypesKey(false))
}
