package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// VoucherFilter narrows a voucher listing
type VoucherFilter struct {
	BranchID string
	Number   string
	Type     models.VoucherType
	Status   models.VoucherStatus
	Page
}

// VoucherTotals aggregates vouchers by type and status
type VoucherTotals struct {
	TotalPayments decimal.Decimal
	TotalReceipts decimal.Decimal
	PaymentCount  int64
	ReceiptCount  int64
	DraftCount    int64
	ApprovedCount int64
	RejectedCount int64
}

// VoucherRepository defines the interface for voucher persistence
type VoucherRepository interface {
	Create(ctx context.Context, voucher *models.Voucher) error
	Save(ctx context.Context, voucher *models.Voucher) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Voucher, error)
	FindAll(ctx context.Context, filter VoucherFilter) ([]models.Voucher, error)
	Totals(ctx context.Context, branchID string) (VoucherTotals, error)
}

type voucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository creates a new voucher repository
func NewVoucherRepository(db *gorm.DB) VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) Create(ctx context.Context, voucher *models.Voucher) error {
	return wrapWrite(r.db.WithContext(ctx).Create(voucher).Error, ErrCreateFailed)
}

func (r *voucherRepository) Save(ctx context.Context, voucher *models.Voucher) error {
	return wrapWrite(r.db.WithContext(ctx).Save(voucher).Error, ErrUpdateFailed)
}

func (r *voucherRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Voucher{})
	if res.Error != nil {
		return wrapWrite(res.Error, ErrDeleteFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *voucherRepository) FindByID(ctx context.Context, id string) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&voucher).Error; err != nil {
		return nil, translate(err)
	}
	return &voucher, nil
}

func (r *voucherRepository) FindAll(ctx context.Context, filter VoucherFilter) ([]models.Voucher, error) {
	q := r.db.WithContext(ctx)
	if filter.BranchID != "" {
		q = q.Where("branch_id = ?", filter.BranchID)
	}
	if filter.Number != "" {
		q = q.Where("LOWER(voucher_number) LIKE ?", likePattern(filter.Number))
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var vouchers []models.Voucher
	err := filter.Page.apply(q).Order("date DESC, created_at DESC").Find(&vouchers).Error
	return vouchers, translate(err)
}

func (r *voucherRepository) Totals(ctx context.Context, branchID string) (VoucherTotals, error) {
	q := r.db.WithContext(ctx).Model(&models.Voucher{})
	if branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var rows []struct {
		Type   models.VoucherType
		Status models.VoucherStatus
		Count  int64
		Total  decimal.Decimal
	}
	err := q.Select("type, status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("type, status").
		Scan(&rows).Error
	if err != nil {
		return VoucherTotals{}, translate(err)
	}

	totals := VoucherTotals{TotalPayments: decimal.Zero, TotalReceipts: decimal.Zero}
	for _, row := range rows {
		switch row.Type {
		case models.VoucherTypePayment:
			totals.PaymentCount += row.Count
			if row.Status != models.VoucherStatusRejected {
				totals.TotalPayments = totals.TotalPayments.Add(row.Total)
			}
		case models.VoucherTypeReceipt:
			totals.ReceiptCount += row.Count
			if row.Status != models.VoucherStatusRejected {
				totals.TotalReceipts = totals.TotalReceipts.Add(row.Total)
			}
		}
		switch row.Status {
		case models.VoucherStatusDraft:
			totals.DraftCount += row.Count
		case models.VoucherStatusApproved:
			totals.ApprovedCount += row.Count
		case models.VoucherStatusRejected:
			totals.RejectedCount += row.Count
		}
	}
	return totals, nil
}
