package models

import "github.com/shopspring/decimal"

// Branch is a physical location with its own budget
type Branch struct {
	Base
	Name          string          `json:"name" gorm:"size:150;not null;index"`
	Address       string          `json:"address,omitempty"`
	Phone         string          `json:"phone,omitempty" gorm:"size:10"`
	SecondPhone   string          `json:"secondPhone,omitempty" gorm:"size:10"`
	ManagerID     *string         `json:"managerId,omitempty" gorm:"type:uuid"`
	Budget        decimal.Decimal `json:"budget" gorm:"type:decimal(14,2);not null;default:0"`
	TotalExpenses decimal.Decimal `json:"totalExpenses" gorm:"type:decimal(14,2);not null;default:0"`
}
