package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteInvoices(t *testing.T) {
	invoices := []models.Invoice{
		{
			InvoiceNumber: "INV-1001",
			InvoiceDate:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Client:        &models.Client{ClientNumber: "CL-1001", FirstName: "Ahmad", SecondName: "Ali", ThirdName: "Saleh", LastName: "Omar", Phone: "0501234567"},
			Order:         &models.Order{OrderNumber: "ORD-1001"},
			Subtotal:      decimal.NewFromInt(150),
			TaxRate:       decimal.NewFromInt(15),
			TaxAmount:     decimal.RequireFromString("22.5"),
			TotalAmount:   decimal.RequireFromString("172.5"),
			Discount:      decimal.Zero,
			FinalAmount:   decimal.RequireFromString("172.5"),
			Status:        models.InvoiceStatusOpen,
		},
		{InvoiceNumber: "INV-1002", Status: models.InvoiceStatusApproved},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInvoices(&buf, invoices, i18n.New(i18n.English), i18n.English))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(InvoiceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, invoiceHeaders, rows[0])

	require.Equal(t, "INV-1001", rows[1][0])
	require.Equal(t, "2024-03-01", rows[1][1])
	require.Equal(t, "Ahmad Ali Saleh Omar", rows[1][3])
	require.Equal(t, "ORD-1001", rows[1][5])
	require.Equal(t, "172.5", rows[1][11])
	require.Equal(t, "Open", rows[1][12])

	require.Equal(t, "INV-1002", rows[2][0])
	require.Equal(t, "Approved", rows[2][12])
}
