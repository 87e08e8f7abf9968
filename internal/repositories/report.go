package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// ReportFilter narrows an employee report listing
type ReportFilter struct {
	EmployeeID string
	Status     models.ReportStatus
	Page
}

// ReportRepository defines the interface for employee report persistence
type ReportRepository interface {
	Create(ctx context.Context, report *models.EmployeeReport) error
	Save(ctx context.Context, report *models.EmployeeReport) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.EmployeeReport, error)
	FindAll(ctx context.Context, filter ReportFilter) ([]models.EmployeeReport, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.EmployeeReport) error {
	return wrapWrite(r.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error, ErrCreateFailed)
}

func (r *reportRepository) Save(ctx context.Context, report *models.EmployeeReport) error {
	return wrapWrite(r.db.WithContext(ctx).Omit(clause.Associations).Save(report).Error, ErrUpdateFailed)
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.EmployeeReport{})
	if res.Error != nil {
		return wrapWrite(res.Error, ErrDeleteFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reportRepository) FindByID(ctx context.Context, id string) (*models.EmployeeReport, error) {
	var report models.EmployeeReport
	if err := r.db.WithContext(ctx).Preload("Employee").Where("id = ?", id).First(&report).Error; err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

func (r *reportRepository) FindAll(ctx context.Context, filter ReportFilter) ([]models.EmployeeReport, error) {
	q := r.db.WithContext(ctx).Preload("Employee")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var reports []models.EmployeeReport
	err := filter.Page.apply(q).Order("created_at DESC").Find(&reports).Error
	return reports, translate(err)
}
