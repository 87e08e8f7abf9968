package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// WorkOrderFilter narrows a work order listing
type WorkOrderFilter struct {
	Status     models.WorkOrderStatus
	ClientID   string
	EmployeeID string
	Page
}

// WorkOrderRepository defines the interface for work order persistence
type WorkOrderRepository interface {
	Create(ctx context.Context, workOrder *models.WorkOrder) error
	Save(ctx context.Context, workOrder *models.WorkOrder) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.WorkOrder, error)
	FindAll(ctx context.Context, filter WorkOrderFilter) ([]models.WorkOrder, error)
}

type workOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a new work order repository
func NewWorkOrderRepository(db *gorm.DB) WorkOrderRepository {
	return &workOrderRepository{db: db}
}

func (r *workOrderRepository) preload(q *gorm.DB) *gorm.DB {
	return q.Preload("Order").Preload("Order.Services").Preload("Client")
}

func (r *workOrderRepository) Create(ctx context.Context, workOrder *models.WorkOrder) error {
	return wrapWrite(r.db.WithContext(ctx).Omit(clause.Associations).Create(workOrder).Error, ErrCreateFailed)
}

func (r *workOrderRepository) Save(ctx context.Context, workOrder *models.WorkOrder) error {
	return wrapWrite(r.db.WithContext(ctx).Omit(clause.Associations).Save(workOrder).Error, ErrUpdateFailed)
}

func (r *workOrderRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.WorkOrder{})
	if res.Error != nil {
		return wrapWrite(res.Error, ErrDeleteFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *workOrderRepository) FindByID(ctx context.Context, id string) (*models.WorkOrder, error) {
	var workOrder models.WorkOrder
	if err := r.preload(r.db.WithContext(ctx)).Where("id = ?", id).First(&workOrder).Error; err != nil {
		return nil, translate(err)
	}
	return &workOrder, nil
}

func (r *workOrderRepository) FindAll(ctx context.Context, filter WorkOrderFilter) ([]models.WorkOrder, error) {
	q := r.preload(r.db.WithContext(ctx))
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.EmployeeID != "" {
		id := filter.EmployeeID
		q = q.Where("assigned_to_employee1 = ? OR assigned_to_employee2 = ? OR assigned_to_employee3 = ?", id, id, id)
	}
	var workOrders []models.WorkOrder
	err := filter.Page.apply(q).Order("created_at DESC").Find(&workOrders).Error
	return workOrders, translate(err)
}
