package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// BranchRepository defines the interface for branch persistence
type BranchRepository interface {
	Create(ctx context.Context, branch *models.Branch) error
	Save(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Branch, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Branch, error)
	FindByName(ctx context.Context, name, excludeID string) (*models.Branch, error)
	List(ctx context.Context, page Page) ([]models.Branch, int64, error)
	AddExpense(ctx context.Context, id string, amount decimal.Decimal) (bool, error)
}

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *models.Branch) error {
	return wrapWrite(r.db.WithContext(ctx).Create(branch).Error, ErrCreateFailed)
}

func (r *branchRepository) Save(ctx context.Context, branch *models.Branch) error {
	return wrapWrite(r.db.WithContext(ctx).Omit(clause.Associations).Save(branch).Error, ErrUpdateFailed)
}

func (r *branchRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Branch{})
	if res.Error != nil {
		return wrapWrite(res.Error, ErrDeleteFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *branchRepository) FindByID(ctx context.Context, id string) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&branch).Error; err != nil {
		return nil, translate(err)
	}
	return &branch, nil
}

func (r *branchRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Branch, error) {
	var branches []models.Branch
	if len(ids) == 0 {
		return branches, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&branches).Error
	return branches, translate(err)
}

// FindByName matches names case-insensitively, skipping excludeID when set
func (r *branchRepository) FindByName(ctx context.Context, name, excludeID string) (*models.Branch, error) {
	q := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var branch models.Branch
	if err := q.First(&branch).Error; err != nil {
		return nil, translate(err)
	}
	return &branch, nil
}

func (r *branchRepository) List(ctx context.Context, page Page) ([]models.Branch, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Branch{})

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var branches []models.Branch
	if err := page.apply(q).Order("created_at DESC").Find(&branches).Error; err != nil {
		return nil, 0, translate(err)
	}
	return branches, total, nil
}

// AddExpense increments total expenses in one statement. It reports false
// when the branch has a positive budget that the new total would exceed.
func (r *branchRepository) AddExpense(ctx context.Context, id string, amount decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Branch{}).
		Where("id = ? AND (budget <= 0 OR total_expenses + ? <= budget)", id, amount).
		Update("total_expenses", gorm.Expr("total_expenses + ?", amount))
	if res.Error != nil {
		return false, wrapWrite(res.Error, ErrUpdateFailed)
	}
	return res.RowsAffected > 0, nil
}
