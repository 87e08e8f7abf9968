package models

// CatalogService is an entry of the service catalog shown to staff
type CatalogService struct {
	Base
	Name        string      `json:"name" gorm:"size:150;not null;index"`
	ServiceType ServiceType `json:"serviceType,omitempty" gorm:"size:20"`
	Description string      `json:"description" gorm:"not null"`
}
