package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// UserFilter narrows a user listing
type UserFilter struct {
	Role   models.Role
	Status models.UserStatus
	Search string
	Page
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	ReplaceBranches(ctx context.Context, user *models.User, branches []models.Branch) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user and links any branches already set on it
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return wrapWrite(r.db.WithContext(ctx).Omit("Branches.*").Create(user).Error, ErrCreateFailed)
}

func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	return wrapWrite(r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error, ErrUpdateFailed)
}

func (r *userRepository) ReplaceBranches(ctx context.Context, user *models.User, branches []models.Branch) error {
	err := r.db.WithContext(ctx).Model(user).Association("Branches").Replace(branches)
	return wrapWrite(err, ErrUpdateFailed)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return wrapWrite(res.Error, ErrDeleteFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Branches").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, translate(err)
}

func (r *userRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Branches").Where("employee_id = ?", employeeID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(employee_id) LIKE ? OR LOWER(email) LIKE ?", p, p, p)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var users []models.User
	if err := filter.Page.apply(q).Preload("Branches").Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, translate(err)
	}
	return users, total, nil
}
