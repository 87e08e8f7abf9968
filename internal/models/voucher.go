package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType separates money paid out from money received
type VoucherType string

const (
	VoucherTypePayment VoucherType = "PAYMENT"
	VoucherTypeReceipt VoucherType = "RECEIPT"
)

// VoucherStatus is the approval state of a voucher
type VoucherStatus string

const (
	VoucherStatusDraft    VoucherStatus = "DRAFT"
	VoucherStatusApproved VoucherStatus = "APPROVED"
	VoucherStatusRejected VoucherStatus = "REJECTED"
)

// PaymentMethod is how a voucher was settled
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// Voucher is a payment or receipt document
type Voucher struct {
	Base
	VoucherNumber string          `json:"voucherNumber" gorm:"size:32;uniqueIndex"`
	Type          VoucherType     `json:"type" gorm:"size:10;not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Date          time.Time       `json:"date" gorm:"not null"`
	PayeeName     string          `json:"payeeName,omitempty"`
	PayerName     string          `json:"payerName,omitempty"`
	PaymentMethod PaymentMethod   `json:"paymentMethod,omitempty" gorm:"size:20"`
	ClientID      *string         `json:"clientId,omitempty" gorm:"type:uuid;index"`
	BranchID      string          `json:"branchId" gorm:"type:uuid;not null;index"`
	Description   string          `json:"description" gorm:"not null"`
	Status        VoucherStatus   `json:"status" gorm:"size:10;not null;default:DRAFT"`
	CreatedBy     string          `json:"createdBy,omitempty" gorm:"type:uuid"`
}
