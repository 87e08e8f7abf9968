package models

import "github.com/shopspring/decimal"

// CarType is a known vehicle model
type CarType struct {
	Base
	Name         string          `json:"name" gorm:"size:100;not null;index"`
	Manufacturer string          `json:"manufacturer,omitempty" gorm:"size:100"`
	Size         CarSize         `json:"size,omitempty" gorm:"size:10"`
	AveragePrice decimal.Decimal `json:"averagePrice" gorm:"type:decimal(12,2);not null;default:0"`
	IsActive     bool            `json:"isActive" gorm:"not null;default:true"`
}
