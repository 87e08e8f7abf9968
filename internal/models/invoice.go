package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the approval state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusOpen     InvoiceStatus = "open"
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusApproved InvoiceStatus = "approved"
	InvoiceStatusRejected InvoiceStatus = "rejected"
)

// Invoice is the bill issued for an order
type Invoice struct {
	Base
	InvoiceNumber string          `json:"invoiceNumber" gorm:"size:32;uniqueIndex"`
	InvoiceDate   time.Time       `json:"invoiceDate" gorm:"not null;index"`
	ClientID      string          `json:"clientId" gorm:"type:uuid;not null;index"`
	Client        *Client         `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	OrderID       string          `json:"orderId" gorm:"type:uuid;not null;index"`
	Order         *Order          `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Subtotal      decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	TaxRate       decimal.Decimal `json:"taxRate" gorm:"type:decimal(5,2);not null"`
	TaxAmount     decimal.Decimal `json:"taxAmount" gorm:"type:decimal(12,2);not null"`
	TotalAmount   decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	Discount      decimal.Decimal `json:"discount" gorm:"type:decimal(12,2);not null;default:0"`
	FinalAmount   decimal.Decimal `json:"finalAmount" gorm:"type:decimal(12,2);not null"`
	Notes         string          `json:"notes,omitempty"`
	Status        InvoiceStatus   `json:"status" gorm:"size:10;not null;default:open;index"`
}
