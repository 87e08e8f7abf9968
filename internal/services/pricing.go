package services

import (
	"github.com/shopspring/decimal"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Totals are the computed amounts of an invoice
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Discount    decimal.Decimal `json:"discount"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
}

// ComputeTotals prices a subtotal with taxRate percent and a flat discount
func ComputeTotals(subtotal, taxRate, discount decimal.Decimal) Totals {
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Div(hundred).Round(2)
	total := subtotal.Add(tax).Round(2)
	return Totals{
		Subtotal:    subtotal,
		TaxRate:     taxRate,
		TaxAmount:   tax,
		TotalAmount: total,
		Discount:    discount.Round(2),
		FinalAmount: total.Sub(discount).Round(2),
	}
}

// Apply copies the totals onto inv
func (t Totals) Apply(inv *models.Invoice) {
	inv.Subtotal = t.Subtotal
	inv.TaxRate = t.TaxRate
	inv.TaxAmount = t.TaxAmount
	inv.TotalAmount = t.TotalAmount
	inv.Discount = t.Discount
	inv.FinalAmount = t.FinalAmount
}

func invoiceTotals(inv *models.Invoice) Totals {
	return ComputeTotals(inv.Subtotal, inv.TaxRate, inv.Discount)
}
