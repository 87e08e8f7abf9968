package services

import (
	"context"
	"strings"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/auth"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

// CreateUserInput creates a staff account
type CreateUserInput struct {
	FullName    string            `json:"fullName" validate:"required"`
	EmployeeID  string            `json:"employeeId" validate:"required"`
	Email       string            `json:"email" validate:"omitempty,email"`
	Password    string            `json:"password" validate:"required,min=6"`
	PhoneNumber string            `json:"phoneNumber" validate:"omitempty,mobile"`
	Role        models.Role       `json:"role" validate:"omitempty,oneof=admin employee"`
	Status      models.UserStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	BranchIDs   []string          `json:"branchIds"`
}

// UpdateUserInput edits a staff account; nil fields are left alone
type UpdateUserInput struct {
	FullName    *string            `json:"fullName" validate:"omitempty,min=1"`
	Email       *string            `json:"email" validate:"omitempty,email"`
	PhoneNumber *string            `json:"phoneNumber" validate:"omitempty,mobile"`
	Role        *models.Role       `json:"role" validate:"omitempty,oneof=admin employee"`
	Status      *models.UserStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	BranchIDs   *[]string          `json:"branchIds"`
}

// ChangePasswordInput replaces a password after checking the current one
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UserQuery filters the user listing
type UserQuery struct {
	Role   models.Role       `form:"role"`
	Status models.UserStatus `form:"status"`
	Search string            `form:"search"`
	PageQuery
}

// UserPage is one page of users
type UserPage struct {
	Users      []models.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// UserService manages staff accounts
type UserService struct {
	deps *Dependencies
}

// NewUserService creates a new user service
func NewUserService(deps *Dependencies) *UserService {
	return &UserService{deps: deps}
}

func (s *UserService) branches(ctx context.Context, store *repositories.Store, ids []string) ([]models.Branch, error) {
	if len(ids) == 0 {
		return []models.Branch{}, nil
	}
	branches, err := store.Branches.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fromRepo(err, i18n.BranchNotFound)
	}
	if len(branches) != len(uniqueStrings(ids)) {
		return nil, notFound(i18n.BranchNotFound)
	}
	return branches, nil
}

// CreateUser hashes the password and stores the account with its branches
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	employeeID := strings.TrimSpace(input.EmployeeID)
	if _, err := s.deps.Store.Users.FindByEmployeeID(ctx, employeeID); err == nil {
		return nil, conflict(i18n.UserEmployeeIDTaken)
	} else if err = fromRepo(err, i18n.UserNotFound); !IsNotFound(err) {
		return nil, err
	}

	branches, err := s.branches(ctx, s.deps.Store, input.BranchIDs)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Key: i18n.ErrInternal, Err: err}
	}

	role := input.Role
	if role == "" {
		role = models.RoleEmployee
	}
	status := input.Status
	if status == "" {
		status = models.UserStatusActive
	}
	user := &models.User{
		FullName:     strings.TrimSpace(input.FullName),
		EmployeeID:   employeeID,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		PhoneNumber:  input.PhoneNumber,
		Role:         role,
		Status:       status,
		Branches:     branches,
	}
	if err := s.deps.Store.Users.Create(ctx, user); err != nil {
		if KindOf(fromRepo(err, i18n.UserNotFound)) == KindConflict {
			return nil, conflict(i18n.UserEmployeeIDTaken)
		}
		return nil, fromRepo(err, i18n.UserNotFound)
	}
	return user, nil
}

// ListUsers returns one page of users
func (s *UserService) ListUsers(ctx context.Context, query UserQuery) (*UserPage, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}
	users, total, err := s.deps.Store.Users.List(ctx, repositories.UserFilter{
		Role:   query.Role,
		Status: query.Status,
		Search: strings.TrimSpace(query.Search),
		Page:   repositories.Page{Limit: limit, Offset: query.Offset},
	})
	if err != nil {
		return nil, fromRepo(err, i18n.UserNotFound)
	}
	if users == nil {
		users = []models.User{}
	}
	return &UserPage{Users: users, Pagination: paginate(total, limit, query.Offset)}, nil
}

// GetUser returns a user with its branches
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.deps.Store.Users.FindByID(ctx, id)
	return user, fromRepo(err, i18n.UserNotFound)
}

// UpdateUser edits an account and optionally replaces its branches
func (s *UserService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*models.User, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	err := s.deps.Store.WithTransaction(ctx, func(tx *repositories.Store) error {
		user, err := tx.Users.FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, i18n.UserNotFound)
		}
		if input.FullName != nil {
			user.FullName = strings.TrimSpace(*input.FullName)
		}
		if input.Email != nil {
			user.Email = strings.TrimSpace(*input.Email)
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}
		if input.Role != nil {
			user.Role = *input.Role
		}
		if input.Status != nil {
			user.Status = *input.Status
		}
		if err := tx.Users.Save(ctx, user); err != nil {
			return fromRepo(err, i18n.UserNotFound)
		}
		if input.BranchIDs == nil {
			return nil
		}
		branches, err := s.branches(ctx, tx, *input.BranchIDs)
		if err != nil {
			return err
		}
		return fromRepo(tx.Users.ReplaceBranches(ctx, user, branches), i18n.UserNotFound)
	})
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// ChangePassword replaces the password once the current one is verified
func (s *UserService) ChangePassword(ctx context.Context, id string, input ChangePasswordInput) error {
	if err := validate(input); err != nil {
		return err
	}
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, input.CurrentPassword) {
		return badRequest(i18n.UserWrongPassword)
	}
	hash, err := auth.HashPassword(input.NewPassword)
	if err != nil {
		return &Error{Kind: KindInternal, Key: i18n.ErrInternal, Err: err}
	}
	user.PasswordHash = hash
	return fromRepo(s.deps.Store.Users.Save(ctx, user), i18n.UserNotFound)
}

// RemoveUser soft deletes an account
func (s *UserService) RemoveUser(ctx context.Context, id string) error {
	return fromRepo(s.deps.Store.Users.Delete(ctx, id), i18n.UserNotFound)
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
