package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// InvoiceFilter narrows an invoice listing
type InvoiceFilter struct {
	// Number matches an exact invoice number and takes precedence over Keyword
	Number    string
	Keyword   string
	Status    models.InvoiceStatus
	ClientID  string
	StartDate *time.Time
	EndDate   *time.Time
	Page
}

// InvoiceSummary aggregates a client's invoices
type InvoiceSummary struct {
	Count         int64
	TotalSubtotal decimal.Decimal
	TotalTax      decimal.Decimal
	TotalAmount   decimal.Decimal
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	Save(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Invoice, error)
	FindDeletedByID(ctx context.Context, id string) (*models.Invoice, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]models.Invoice, error)
	ClientSummary(ctx context.Context, clientID string) (InvoiceSummary, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) preload(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Client").
		Preload("Order").
		Preload("Order.Services", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Preload("Order.Services.Guarantee")
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	return wrapWrite(r.db.WithContext(ctx).Omit(clause.Associations).Create(invoice).Error, ErrCreateFailed)
}

func (r *invoiceRepository) Save(ctx context.Context, invoice *models.Invoice) error {
	return wrapWrite(r.db.WithContext(ctx).Omit(clause.Associations).Save(invoice).Error, ErrUpdateFailed)
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{})
	if res.Error != nil {
		return wrapWrite(res.Error, ErrDeleteFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore clears the soft delete marker of a deleted invoice
func (r *invoiceRepository) Restore(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Unscoped().Model(&models.Invoice{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return wrapWrite(res.Error, ErrUpdateFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *invoiceRepository) FindByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.preload(r.db.WithContext(ctx)).Where("id = ?", id).First(&invoice).Error; err != nil {
		return nil, translate(err)
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindDeletedByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).Unscoped().Where("id = ? AND deleted_at IS NOT NULL", id).First(&invoice).Error
	if err != nil {
		return nil, translate(err)
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.preload(r.db.WithContext(ctx)).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&invoice).Error
	if err != nil {
		return nil, translate(err)
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindAll(ctx context.Context, filter InvoiceFilter) ([]models.Invoice, error) {
	q := r.preload(r.db.WithContext(ctx))

	switch {
	case filter.Number != "":
		q = q.Where("invoice_number = ?", filter.Number)
	case filter.Keyword != "":
		p := likePattern(filter.Keyword)
		clients := r.db.Model(&models.Client{}).Select("id").
			Where("LOWER(first_name || ' ' || second_name || ' ' || third_name || ' ' || last_name) LIKE ? OR phone LIKE ?", p, p)
		q = q.Where("LOWER(invoice_number) LIKE ? OR LOWER(notes) LIKE ? OR client_id IN (?)", p, p, clients)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.StartDate != nil {
		q = q.Where("invoice_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("invoice_date < ?", *filter.EndDate)
	}

	var invoices []models.Invoice
	err := filter.Page.apply(q).Order("invoice_date DESC, created_at DESC").Find(&invoices).Error
	return invoices, translate(err)
}

func (r *invoiceRepository) ClientSummary(ctx context.Context, clientID string) (InvoiceSummary, error) {
	var row struct {
		Count         int64
		TotalSubtotal decimal.Decimal
		TotalTax      decimal.Decimal
		TotalAmount   decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Select("COUNT(*) AS count, "+
			"COALESCE(SUM(subtotal), 0) AS total_subtotal, "+
			"COALESCE(SUM(tax_amount), 0) AS total_tax, "+
			"COALESCE(SUM(total_amount), 0) AS total_amount").
		Where("client_id = ?", clientID).
		Scan(&row).Error
	if err != nil {
		return InvoiceSummary{}, translate(err)
	}
	return InvoiceSummary(row), nil
}
