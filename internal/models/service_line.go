package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType selects which attribute variant a service line carries
type ServiceType string

const (
	ServiceTypeProtection ServiceType = "protection"
	ServiceTypeInsulation ServiceType = "insulation"
	ServiceTypePolish     ServiceType = "polish"
	ServiceTypeAddition   ServiceType = "addition"
)

// ProtectionDetails holds paint-protection film attributes
type ProtectionDetails struct {
	ProtectionFinish   string `json:"protectionFinish" validate:"required,oneof=glossy matte colored"`
	ProtectionSize     string `json:"protectionSize,omitempty"`
	ProtectionCoverage string `json:"protectionCoverage" validate:"required,oneof=full half quarter edges other"`
	ProtectionColor    string `json:"protectionColor,omitempty"`
	OriginalCarColor   string `json:"originalCarColor,omitempty"`
}

// InsulationDetails holds window insulation attributes
type InsulationDetails struct {
	InsulatorType       string `json:"insulatorType,omitempty"`
	InsulatorCoverage   string `json:"insulatorCoverage" validate:"required,oneof=full half piece shield external"`
	InsulatorPercentage string `json:"insulatorPercentage,omitempty"`
}

// PolishDetails holds polishing attributes
type PolishDetails struct {
	PolishType    string `json:"polishType" validate:"required,oneof=internalAndExternal external internal seats piece water_polish"`
	PolishSubType string `json:"polishSubType,omitempty"`
}

// AdditionDetails holds add-on attributes
type AdditionDetails struct {
	AdditionType string `json:"additionType" validate:"required,oneof=detailed_wash premium_wash leather_pedals blackout nano_interior_decor nano_interior_seats"`
	WashScope    string `json:"washScope,omitempty" validate:"omitempty,oneof=full external_only internal_only engine"`
}

// ServiceLine is the part shared by order and offer service lines.
// Exactly one of the variant pointers is set, matching ServiceType.
type ServiceLine struct {
	ServiceType ServiceType        `json:"serviceType" gorm:"size:20;not null"`
	DealDetails string             `json:"dealDetails,omitempty"`
	Price       decimal.Decimal    `json:"servicePrice" gorm:"type:decimal(12,2);not null;default:0"`
	ServiceDate *time.Time         `json:"serviceDate,omitempty"`
	Protection  *ProtectionDetails `json:"protection,omitempty" gorm:"serializer:json"`
	Insulation  *InsulationDetails `json:"insulation,omitempty" gorm:"serializer:json"`
	Polish      *PolishDetails     `json:"polish,omitempty" gorm:"serializer:json"`
	Addition    *AdditionDetails   `json:"addition,omitempty" gorm:"serializer:json"`
}

// Variant returns the attribute block that matches ServiceType, or nil when it is missing
func (l ServiceLine) Variant() interface{} {
	switch l.ServiceType {
	case ServiceTypeProtection:
		if l.Protection != nil {
			return l.Protection
		}
	case ServiceTypeInsulation:
		if l.Insulation != nil {
			return l.Insulation
		}
	case ServiceTypePolish:
		if l.Polish != nil {
			return l.Polish
		}
	case ServiceTypeAddition:
		if l.Addition != nil {
			return l.Addition
		}
	}
	return nil
}

// ValidServiceType reports whether t is a known service type
func ValidServiceType(t ServiceType) bool {
	switch t {
	case ServiceTypeProtection, ServiceTypeInsulation, ServiceTypePolish, ServiceTypeAddition:
		return true
	}
	return false
}

// SetCount returns how many variant blocks are present
func (l ServiceLine) SetCount() int {
	n := 0
	if l.Protection != nil {
		n++
	}
	if l.Insulation != nil {
		n++
	}
	if l.Polish != nil {
		n++
	}
	if l.Addition != nil {
		n++
	}
	return n
}

// SumPrices adds up the price of every line
func SumPrices(lines []ServiceLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price)
	}
	return total
}
