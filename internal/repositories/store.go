package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Store bundles every repository behind a single handle
type Store struct {
	db *gorm.DB

	Clients    ClientRepository
	Orders     OrderRepository
	Invoices   InvoiceRepository
	Offers     OfferRepository
	WorkOrders WorkOrderRepository
	Branches   BranchRepository
	Vouchers   VoucherRepository
	Tasks      TaskRepository
	Users      UserRepository
	CarTypes   CarTypeRepository
	Reports    ReportRepository
	Catalog    CatalogRepository
	Sequences  SequenceRepository
}

// NewStore creates repositories bound to db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Clients:    NewClientRepository(db),
		Orders:     NewOrderRepository(db),
		Invoices:   NewInvoiceRepository(db),
		Offers:     NewOfferRepository(db),
		WorkOrders: NewWorkOrderRepository(db),
		Branches:   NewBranchRepository(db),
		Vouchers:   NewVoucherRepository(db),
		Tasks:      NewTaskRepository(db),
		Users:      NewUserRepository(db),
		CarTypes:   NewCarTypeRepository(db),
		Reports:    NewReportRepository(db),
		Catalog:    NewCatalogRepository(db),
		Sequences:  NewSequenceRepository(db),
	}
}

// WithTransaction runs fn with repositories bound to one transaction.
// A Store assembled without a database (unit tests with mocks) runs fn directly.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx *Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Page limits a list query
type Page struct {
	Limit  int
	Offset int
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}
	if p.Offset > 0 {
		q = q.Offset(p.Offset)
	}
	return q
}

// likePattern builds a case-insensitive containment pattern
func likePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
