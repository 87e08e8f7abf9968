package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

// VoucherInput creates a voucher
type VoucherInput struct {
	Type          models.VoucherType   `json:"type" validate:"required,oneof=PAYMENT RECEIPT"`
	Amount        decimal.Decimal      `json:"amount"`
	Date          time.Time            `json:"date"`
	PayeeName     string               `json:"payeeName"`
	PayerName     string               `json:"payerName"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=CASH BANK_TRANSFER CHEQUE CREDIT_CARD OTHER"`
	ClientID      *string              `json:"clientId"`
	BranchID      string               `json:"branchId" validate:"required"`
	Description   string               `json:"description" validate:"required"`
}

// UpdateVoucherInput edits a draft voucher; nil fields are left alone
type UpdateVoucherInput struct {
	Amount        *decimal.Decimal      `json:"amount"`
	Date          *time.Time            `json:"date"`
	PayeeName     *string               `json:"payeeName"`
	PayerName     *string               `json:"payerName"`
	PaymentMethod *models.PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=CASH BANK_TRANSFER CHEQUE CREDIT_CARD OTHER"`
	Description   *string               `json:"description" validate:"omitempty,min=1"`
}

// VoucherQuery filters a voucher listing
type VoucherQuery struct {
	BranchID string               `form:"branchId"`
	Number   string               `form:"voucherNumber"`
	Type     models.VoucherType   `form:"type"`
	Status   models.VoucherStatus `form:"status"`
	PageQuery
}

// VoucherStatistics summarizes the vouchers of a branch. Rejected vouchers are left out of the totals.
type VoucherStatistics struct {
	TotalPayments decimal.Decimal `json:"totalPayments"`
	TotalReceipts decimal.Decimal `json:"totalReceipts"`
	NetCashFlow   decimal.Decimal `json:"netCashFlow"`
	PaymentCount  int64           `json:"paymentCount"`
	ReceiptCount  int64           `json:"receiptCount"`
	DraftCount    int64           `json:"draftCount"`
	ApprovedCount int64           `json:"approvedCount"`
	RejectedCount int64           `json:"rejectedCount"`
}

// VoucherService manages payment and receipt vouchers
type VoucherService struct {
	deps *Dependencies
}

// NewVoucherService creates a new voucher service
func NewVoucherService(deps *Dependencies) *VoucherService {
	return &VoucherService{deps: deps}
}

// Create stores a draft voucher with the next voucher number
func (s *VoucherService) Create(ctx context.Context, actor Actor, input VoucherInput) (*models.Voucher, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, badRequest(i18n.VoucherInvalidAmount)
	}
	date := input.Date
	if date.IsZero() {
		date = s.deps.now()
	}

	voucher := &models.Voucher{
		Type:          input.Type,
		Amount:        input.Amount.Round(2),
		Date:          date,
		PayeeName:     input.PayeeName,
		PayerName:     input.PayerName,
		PaymentMethod: input.PaymentMethod,
		ClientID:      input.ClientID,
		BranchID:      input.BranchID,
		Description:   strings.TrimSpace(input.Description),
		Status:        models.VoucherStatusDraft,
		CreatedBy:     actor.UserID,
	}
	err := s.deps.Store.WithTransaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Branches.FindByID(ctx, input.BranchID); err != nil {
			return fromRepo(err, i18n.BranchNotFound)
		}
		number, err := tx.Sequences.NextNumber(ctx, models.SequenceVoucher)
		if err != nil {
			return fromRepo(err, i18n.VoucherNotFound)
		}
		voucher.VoucherNumber = number
		return fromRepo(tx.Vouchers.Create(ctx, voucher), i18n.VoucherNotFound)
	})
	if err != nil {
		return nil, err
	}
	return voucher, nil
}

// FindAll lists vouchers by branch, number, type and status
func (s *VoucherService) FindAll(ctx context.Context, query VoucherQuery) ([]models.Voucher, error) {
	vouchers, err := s.deps.Store.Vouchers.FindAll(ctx, repositories.VoucherFilter{
		BranchID: query.BranchID,
		Number:   strings.TrimSpace(query.Number),
		Type:     models.VoucherType(strings.ToUpper(string(query.Type))),
		Status:   models.VoucherStatus(strings.ToUpper(string(query.Status))),
		Page:     repositories.Page{Limit: query.Limit, Offset: query.Offset},
	})
	return vouchers, fromRepo(err, i18n.VoucherNotFound)
}

// FindOne returns a voucher by id
func (s *VoucherService) FindOne(ctx context.Context, id string) (*models.Voucher, error) {
	voucher, err := s.deps.Store.Vouchers.FindByID(ctx, id)
	return voucher, fromRepo(err, i18n.VoucherNotFound)
}

// Update edits a voucher that is still a draft
func (s *VoucherService) Update(ctx context.Context, id string, input UpdateVoucherInput) (*models.Voucher, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	voucher, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if voucher.Status != models.VoucherStatusDraft {
		return nil, badRequest(i18n.VoucherNotDraft)
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, badRequest(i18n.VoucherInvalidAmount)
		}
		voucher.Amount = input.Amount.Round(2)
	}
	if input.Date != nil {
		voucher.Date = *input.Date
	}
	if input.PayeeName != nil {
		voucher.PayeeName = *input.PayeeName
	}
	if input.PayerName != nil {
		voucher.PayerName = *input.PayerName
	}
	if input.PaymentMethod != nil {
		voucher.PaymentMethod = *input.PaymentMethod
	}
	if input.Description != nil {
		voucher.Description = strings.TrimSpace(*input.Description)
	}
	if err := s.deps.Store.Vouchers.Save(ctx, voucher); err != nil {
		return nil, fromRepo(err, i18n.VoucherNotFound)
	}
	return voucher, nil
}

// Remove soft deletes a voucher
func (s *VoucherService) Remove(ctx context.Context, id string) error {
	return fromRepo(s.deps.Store.Vouchers.Delete(ctx, id), i18n.VoucherNotFound)
}

// Approve moves a draft voucher to APPROVED
func (s *VoucherService) Approve(ctx context.Context, id string) (*models.Voucher, error) {
	voucher, err := s.decide(ctx, id, models.VoucherStatusApproved)
	if err == nil {
		s.deps.Metrics.IncrementCounter(metrics.VouchersApproved)
	}
	return voucher, err
}

// Reject moves a draft voucher to REJECTED
func (s *VoucherService) Reject(ctx context.Context, id string) (*models.Voucher, error) {
	return s.decide(ctx, id, models.VoucherStatusRejected)
}

func (s *VoucherService) decide(ctx context.Context, id string, status models.VoucherStatus) (*models.Voucher, error) {
	voucher, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if voucher.Status != models.VoucherStatusDraft {
		return nil, badRequest(i18n.VoucherNotDraft)
	}
	voucher.Status = status
	if err := s.deps.Store.Vouchers.Save(ctx, voucher); err != nil {
		return nil, fromRepo(err, i18n.VoucherNotFound)
	}
	return voucher, nil
}

// GetStatistics returns voucher totals for a branch, or for every branch when branchID is empty
func (s *VoucherService) GetStatistics(ctx context.Context, branchID string) (*VoucherStatistics, error) {
	totals, err := s.deps.Store.Vouchers.Totals(ctx, branchID)
	if err != nil {
		return nil, fromRepo(err, i18n.VoucherNotFound)
	}
	return &VoucherStatistics{
		TotalPayments: totals.TotalPayments,
		TotalReceipts: totals.TotalReceipts,
		NetCashFlow:   totals.TotalReceipts.Sub(totals.TotalPayments),
		PaymentCount:  totals.PaymentCount,
		ReceiptCount:  totals.ReceiptCount,
		DraftCount:    totals.DraftCount,
		ApprovedCount: totals.ApprovedCount,
		RejectedCount: totals.RejectedCount,
	}, nil
}
