package services

import (
	"context"
	"strings"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// CatalogInput creates or replaces a catalog entry
type CatalogInput struct {
	Name        string             `json:"name" validate:"required"`
	ServiceType models.ServiceType `json:"serviceType" validate:"omitempty,oneof=protection insulation polish addition"`
	Description string             `json:"description" validate:"required"`
}

// CatalogService manages the service catalog
type CatalogService struct {
	deps *Dependencies
}

// NewCatalogService creates a new catalog service
func NewCatalogService(deps *Dependencies) *CatalogService {
	return &CatalogService{deps: deps}
}

func (s *CatalogService) FindAll(ctx context.Context) ([]models.CatalogService, error) {
	entries, err := s.deps.Store.Catalog.FindAll(ctx)
	return entries, fromRepo(err, i18n.CatalogNotFound)
}

func (s *CatalogService) FindOne(ctx context.Context, id string) (*models.CatalogService, error) {
	entry, err := s.deps.Store.Catalog.FindByID(ctx, id)
	return entry, fromRepo(err, i18n.CatalogNotFound)
}

func (s *CatalogService) Create(ctx context.Context, input CatalogInput) (*models.CatalogService, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, input.Name, ""); err != nil {
		return nil, err
	}
	entry := &models.CatalogService{
		Name:        strings.TrimSpace(input.Name),
		ServiceType: input.ServiceType,
		Description: input.Description,
	}
	if err := s.deps.Store.Catalog.Create(ctx, entry); err != nil {
		return nil, fromRepo(err, i18n.CatalogNotFound)
	}
	return entry, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, input CatalogInput) (*models.CatalogService, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	entry, err := s.deps.Store.Catalog.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.CatalogNotFound)
	}
	if err := s.ensureUniqueName(ctx, input.Name, id); err != nil {
		return nil, err
	}
	entry.Name = strings.TrimSpace(input.Name)
	entry.ServiceType = input.ServiceType
	entry.Description = input.Description
	if err := s.deps.Store.Catalog.Save(ctx, entry); err != nil {
		return nil, fromRepo(err, i18n.CatalogNotFound)
	}
	return entry, nil
}

func (s *CatalogService) Remove(ctx context.Context, id string) error {
	return fromRepo(s.deps.Store.Catalog.Delete(ctx, id), i18n.CatalogNotFound)
}

func (s *CatalogService) ensureUniqueName(ctx context.Context, name, excludeID string) error {
	_, err := s.deps.Store.Catalog.FindByName(ctx, strings.TrimSpace(name), excludeID)
	if err == nil {
		return conflict(i18n.CatalogNameTaken)
	}
	if err = fromRepo(err, i18n.CatalogNotFound); !IsNotFound(err) {
		return err
	}
	return nil
}
