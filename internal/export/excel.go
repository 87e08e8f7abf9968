// Package export renders invoice lists as spreadsheets.
package export

import (
	"io"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// InvoiceSheet is the name of the worksheet holding invoices
const InvoiceSheet = "Invoices"

// Labeler translates enum values for the requested language
type Labeler interface {
	Label(lang, namespace, value string) string
}

var invoiceHeaders = []string{
	"Invoice Number", "Invoice Date", "Client Number", "Client Name", "Phone",
	"Order Number", "Subtotal", "Tax Rate", "Tax Amount", "Total",
	"Discount", "Final Amount", "Status",
}

// WriteInvoices writes invoices as an XLSX workbook to w.
// Client and Order must be preloaded for their columns to be filled.
func WriteInvoices(w io.Writer, invoices []models.Invoice, labels Labeler, lang string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", InvoiceSheet); err != nil {
		return errors.Wrap(err, "failed to name invoice sheet")
	}

	for col, header := range invoiceHeaders {
		if err := setCell(f, col+1, 1, header); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}
	last, _ := excelize.CoordinatesToCellName(len(invoiceHeaders), 1)
	if err := f.SetCellStyle(InvoiceSheet, "A1", last, bold); err != nil {
		return errors.Wrap(err, "failed to style header")
	}

	for i, inv := range invoices {
		row := i + 2
		var clientNumber, clientName, phone, orderNumber string
		if inv.Client != nil {
			clientNumber = inv.Client.ClientNumber
			clientName = inv.Client.FullName()
			phone = inv.Client.Phone
		}
		if inv.Order != nil {
			orderNumber = inv.Order.OrderNumber
		}
		status := string(inv.Status)
		if labels != nil {
			status = labels.Label(lang, "invoice_status", status)
		}

		values := []interface{}{
			inv.InvoiceNumber,
			inv.InvoiceDate.Format("2006-01-02"),
			clientNumber,
			clientName,
			phone,
			orderNumber,
			inv.Subtotal.InexactFloat64(),
			inv.TaxRate.InexactFloat64(),
			inv.TaxAmount.InexactFloat64(),
			inv.TotalAmount.InexactFloat64(),
			inv.Discount.InexactFloat64(),
			inv.FinalAmount.InexactFloat64(),
			status,
		}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return err
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(invoiceHeaders))
	if err := f.SetColWidth(InvoiceSheet, "A", lastCol, 18); err != nil {
		return errors.Wrap(err, "failed to size columns")
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return errors.Wrap(err, "invalid cell coordinates")
	}
	if err := f.SetCellValue(InvoiceSheet, cell, value); err != nil {
		return errors.Wrapf(err, "failed to set cell %s", cell)
	}
	return nil
}
