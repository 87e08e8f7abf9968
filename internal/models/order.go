package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusNew         OrderStatus = "NEW_ORDER"
	OrderStatusInProgress  OrderStatus = "IN_PROGRESS"
	OrderStatusMaintenance OrderStatus = "MAINTENANCE"
	OrderStatusCompleted   OrderStatus = "COMPLETED"
	OrderStatusDelivered   OrderStatus = "DELIVERED"
	OrderStatusCancelled   OrderStatus = "CANCELLED"
)

// CarSize classifies vehicles for pricing
type CarSize string

const (
	CarSizeSmall  CarSize = "small"
	CarSizeMedium CarSize = "medium"
	CarSizeLarge  CarSize = "large"
)

// GuaranteeStatus is the activation state of a guarantee
type GuaranteeStatus string

const (
	GuaranteeActive   GuaranteeStatus = "active"
	GuaranteeInactive GuaranteeStatus = "inactive"
)

// CarDetails are the vehicle attributes shared by orders and offers
type CarDetails struct {
	CarModel        string  `json:"carModel" gorm:"size:100"`
	CarManufacturer string  `json:"carManufacturer" gorm:"size:100"`
	CarColor        string  `json:"carColor" gorm:"size:50"`
	CarPlateNumber  string  `json:"carPlateNumber" gorm:"size:8;index"`
	CarSize         CarSize `json:"carSize" gorm:"size:10"`
}

// Order is a set of car services performed for a client
type Order struct {
	Base
	OrderNumber string         `json:"orderNumber" gorm:"size:32;uniqueIndex"`
	ClientID    string         `json:"clientId" gorm:"type:uuid;not null;index"`
	Client      *Client        `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	InvoiceID   *string        `json:"invoiceId,omitempty" gorm:"type:uuid;index"`
	CarDetails
	Status        OrderStatus    `json:"status" gorm:"size:20;not null;index"`
	StatusHistory StatusHistory  `json:"statusHistory"`
	Services      []OrderService `json:"services" gorm:"foreignKey:OrderID"`
	Notes         string         `json:"notes,omitempty"`

	// StatusChangedBy is the actor recorded with the next status change
	StatusChangedBy string `json:"-" gorm:"-"`
}

// BeforeSave appends to the status history whenever the status moves
func (o *Order) BeforeSave(tx *gorm.DB) error {
	if o.Status == "" {
		o.Status = OrderStatusNew
	}
	o.StatusHistory = appendStatusChange(o.StatusHistory, string(o.Status), o.StatusChangedBy, false)
	return nil
}

// ServiceLines returns the shared part of every service line
func (o *Order) ServiceLines() []ServiceLine {
	lines := make([]ServiceLine, len(o.Services))
	for i, s := range o.Services {
		lines[i] = s.ServiceLine
	}
	return lines
}

// OrderService is one service line of an order
type OrderService struct {
	Base
	OrderID string `json:"orderId" gorm:"type:uuid;not null;index"`
	ServiceLine
	Guarantee *Guarantee `json:"guarantee,omitempty" gorm:"foreignKey:ServiceID"`
}

// Guarantee is the warranty attached to an order service line
type Guarantee struct {
	Base
	ServiceID           string          `json:"serviceId" gorm:"type:uuid;not null;uniqueIndex"`
	TypeGuarantee       string          `json:"typeGuarantee,omitempty" gorm:"size:100"`
	StartDate           time.Time       `json:"startDate" gorm:"not null"`
	EndDate             time.Time       `json:"endDate" gorm:"not null;index"`
	Terms               string          `json:"terms,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	Status              GuaranteeStatus `json:"status" gorm:"size:10;not null;default:inactive"`
	Accepted            bool            `json:"accepted" gorm:"not null;default:false"`
	SendApproveForAdmin bool            `json:"sendApproveForAdmin" gorm:"not null;default:false"`
}

// ActiveAt reports whether the guarantee period covers t
func (g *Guarantee) ActiveAt(t time.Time) bool {
	return g.EndDate.After(t)
}
