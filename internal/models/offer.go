package models

import "time"

// GuaranteeTerms is the guarantee proposed on an offer line
type GuaranteeTerms struct {
	TypeGuarantee string    `json:"typeGuarantee,omitempty"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Terms         string    `json:"terms,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// OfferPrice is a price quotation that can later become an order
type OfferPrice struct {
	Base
	ClientID  string  `json:"clientId" gorm:"type:uuid;not null;index"`
	Client    *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	CreatedBy string  `json:"createdBy" gorm:"type:uuid;not null"`
	CarDetails
	Services []OfferService `json:"services" gorm:"foreignKey:OfferID"`
	OrderID  *string        `json:"orderId,omitempty" gorm:"type:uuid;index"`
	Notes    string         `json:"notes,omitempty"`
}

// Converted reports whether the offer already produced an order
func (o *OfferPrice) Converted() bool {
	return o.OrderID != nil && *o.OrderID != ""
}

// OfferService is one quoted service line
type OfferService struct {
	Base
	OfferID string `json:"offerId" gorm:"type:uuid;not null;index"`
	ServiceLine
	Guarantee *GuaranteeTerms `json:"guarantee,omitempty" gorm:"serializer:json"`
}
