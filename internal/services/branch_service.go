package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

// BranchInput creates a branch
type BranchInput struct {
	Name        string          `json:"name" validate:"required"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone" validate:"omitempty,phone10"`
	SecondPhone string          `json:"secondPhone" validate:"omitempty,phone10"`
	ManagerID   *string         `json:"managerId"`
	Budget      decimal.Decimal `json:"budget"`
}

// UpdateBranchInput edits a branch; nil fields are left alone
type UpdateBranchInput struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Address     *string          `json:"address"`
	Phone       *string          `json:"phone" validate:"omitempty,phone10"`
	SecondPhone *string          `json:"secondPhone" validate:"omitempty,phone10"`
	ManagerID   *string          `json:"managerId"`
	Budget      *decimal.Decimal `json:"budget"`
}

// BranchPage is one page of branches
type BranchPage struct {
	Branches   []models.Branch `json:"branches"`
	Pagination Pagination      `json:"pagination"`
}

// BranchFinancialReport summarizes the budget use of a branch
type BranchFinancialReport struct {
	BranchID        string          `json:"branchId"`
	Name            string          `json:"name"`
	Budget          decimal.Decimal `json:"budget"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	RemainingBudget decimal.Decimal `json:"remainingBudget"`
	UtilizationRate decimal.Decimal `json:"utilizationRate"`
}

// BranchService manages branches and their budgets
type BranchService struct {
	deps *Dependencies
}

// NewBranchService creates a new branch service
func NewBranchService(deps *Dependencies) *BranchService {
	return &BranchService{deps: deps}
}

func (s *BranchService) ensureUniqueName(ctx context.Context, name, excludeID string) error {
	_, err := s.deps.Store.Branches.FindByName(ctx, name, excludeID)
	if err == nil {
		return conflict(i18n.BranchNameTaken)
	}
	if err = fromRepo(err, i18n.BranchNotFound); IsNotFound(err) {
		return nil
	}
	return err
}

// Create adds a branch with a unique name
func (s *BranchService) Create(ctx context.Context, input BranchInput) (*models.Branch, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	if input.Budget.IsNegative() {
		return nil, badRequest(i18n.BranchInvalidAmount)
	}
	name := strings.TrimSpace(input.Name)
	if err := s.ensureUniqueName(ctx, name, ""); err != nil {
		return nil, err
	}

	branch := &models.Branch{
		Name:        name,
		Address:     input.Address,
		Phone:       input.Phone,
		SecondPhone: input.SecondPhone,
		ManagerID:   input.ManagerID,
		Budget:      input.Budget.Round(2),
	}
	if err := s.deps.Store.Branches.Create(ctx, branch); err != nil {
		return nil, fromRepo(err, i18n.BranchNotFound)
	}
	return branch, nil
}

// FindAll returns one page of branches
func (s *BranchService) FindAll(ctx context.Context, page PageQuery) (*BranchPage, error) {
	limit := page.Limit
	if limit <= 0 {
		limit = 10
	}
	branches, total, err := s.deps.Store.Branches.List(ctx, repositories.Page{Limit: limit, Offset: page.Offset})
	if err != nil {
		return nil, fromRepo(err, i18n.BranchNotFound)
	}
	if branches == nil {
		branches = []models.Branch{}
	}
	return &BranchPage{Branches: branches, Pagination: paginate(total, limit, page.Offset)}, nil
}

// FindOne returns a branch by id
func (s *BranchService) FindOne(ctx context.Context, id string) (*models.Branch, error) {
	branch, err := s.deps.Store.Branches.FindByID(ctx, id)
	return branch, fromRepo(err, i18n.BranchNotFound)
}

// Update edits a branch, keeping names unique
func (s *BranchService) Update(ctx context.Context, id string, input UpdateBranchInput) (*models.Branch, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	branch, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := s.ensureUniqueName(ctx, name, id); err != nil {
			return nil, err
		}
		branch.Name = name
	}
	if input.Address != nil {
		branch.Address = *input.Address
	}
	if input.Phone != nil {
		branch.Phone = *input.Phone
	}
	if input.SecondPhone != nil {
		branch.SecondPhone = *input.SecondPhone
	}
	if input.ManagerID != nil {
		branch.ManagerID = input.ManagerID
	}
	if input.Budget != nil {
		if input.Budget.IsNegative() {
			return nil, badRequest(i18n.BranchInvalidAmount)
		}
		branch.Budget = input.Budget.Round(2)
	}
	if err := s.deps.Store.Branches.Save(ctx, branch); err != nil {
		return nil, fromRepo(err, i18n.BranchNotFound)
	}
	return branch, nil
}

// Remove soft deletes a branch
func (s *BranchService) Remove(ctx context.Context, id string) error {
	return fromRepo(s.deps.Store.Branches.Delete(ctx, id), i18n.BranchNotFound)
}

// AddExpense books an expense against the branch budget
func (s *BranchService) AddExpense(ctx context.Context, id string, amount decimal.Decimal) (*models.Branch, error) {
	if !amount.IsPositive() {
		return nil, badRequest(i18n.BranchInvalidAmount)
	}
	if _, err := s.FindOne(ctx, id); err != nil {
		return nil, err
	}
	ok, err := s.deps.Store.Branches.AddExpense(ctx, id, amount.Round(2))
	if err != nil {
		return nil, fromRepo(err, i18n.BranchNotFound)
	}
	if !ok {
		return nil, badRequest(i18n.BranchBudgetExceeded)
	}
	return s.FindOne(ctx, id)
}

// GetFinancialReport returns the remaining budget and the utilization percentage
func (s *BranchService) GetFinancialReport(ctx context.Context, id string) (*BranchFinancialReport, error) {
	branch, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	utilization := decimal.Zero
	if branch.Budget.IsPositive() {
		utilization = branch.TotalExpenses.Div(branch.Budget).Mul(hundred).Round(2)
	}
	return &BranchFinancialReport{
		BranchID:        branch.ID,
		Name:            branch.Name,
		Budget:          branch.Budget,
		TotalExpenses:   branch.TotalExpenses,
		RemainingBudget: branch.Budget.Sub(branch.TotalExpenses),
		UtilizationRate: utilization,
	}, nil
}
