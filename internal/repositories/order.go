package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// OrderFilter narrows an order listing
type OrderFilter struct {
	Status   models.OrderStatus
	ClientID string
	Page
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	Save(ctx context.Context, order *models.Order) error
	SetInvoice(ctx context.Context, orderID, invoiceID string) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	FindGuarantee(ctx context.Context, orderID, serviceID, guaranteeID string) (*models.Guarantee, error)
	SaveGuarantee(ctx context.Context, guarantee *models.Guarantee) error
	FindAwaitingApproval(ctx context.Context) ([]models.Order, error)
	FindWithActiveGuarantees(ctx context.Context, since time.Time) ([]models.Order, error)
	ExpireGuarantees(ctx context.Context, now time.Time) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) preload(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Client").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Preload("Services.Guarantee")
}

// Create inserts the order with its service lines and guarantees
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return wrapWrite(r.db.WithContext(ctx).Omit("Client").Create(order).Error, ErrCreateFailed)
}

// Save persists the order row only; service lines are left untouched
func (r *orderRepository) Save(ctx context.Context, order *models.Order) error {
	return wrapWrite(r.db.WithContext(ctx).Omit(clause.Associations).Save(order).Error, ErrUpdateFailed)
}

func (r *orderRepository) SetInvoice(ctx context.Context, orderID, invoiceID string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Update("invoice_id", invoiceID)
	if res.Error != nil {
		return wrapWrite(res.Error, ErrUpdateFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	if res.Error != nil {
		return wrapWrite(res.Error, ErrDeleteFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.preload(r.db.WithContext(ctx)).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepository) FindAll(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	q := r.preload(r.db.WithContext(ctx))
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	var orders []models.Order
	err := filter.Page.apply(q).Order("created_at DESC").Find(&orders).Error
	return orders, translate(err)
}

// FindGuarantee resolves a guarantee only through the order and service it belongs to
func (r *orderRepository) FindGuarantee(ctx context.Context, orderID, serviceID, guaranteeID string) (*models.Guarantee, error) {
	var guarantee models.Guarantee
	err := r.db.WithContext(ctx).
		Joins("JOIN order_services ON order_services.id = guarantees.service_id AND order_services.deleted_at IS NULL").
		Joins("JOIN orders ON orders.id = order_services.order_id AND orders.deleted_at IS NULL").
		Where("guarantees.id = ? AND order_services.id = ? AND orders.id = ?", guaranteeID, serviceID, orderID).
		First(&guarantee).Error
	if err != nil {
		return nil, translate(err)
	}
	return &guarantee, nil
}

func (r *orderRepository) SaveGuarantee(ctx context.Context, guarantee *models.Guarantee) error {
	return wrapWrite(r.db.WithContext(ctx).Save(guarantee).Error, ErrUpdateFailed)
}

func (r *orderRepository) ordersWithGuarantees(ctx context.Context, cond string, args ...interface{}) ([]models.Order, error) {
	sub := r.db.WithContext(ctx).Model(&models.OrderService{}).
		Select("order_services.order_id").
		Joins("JOIN guarantees ON guarantees.service_id = order_services.id AND guarantees.deleted_at IS NULL").
		Where(cond, args...)

	var orders []models.Order
	err := r.preload(r.db.WithContext(ctx)).
		Where("id IN (?)", sub).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, translate(err)
}

func (r *orderRepository) FindAwaitingApproval(ctx context.Context) ([]models.Order, error) {
	return r.ordersWithGuarantees(ctx, "guarantees.send_approve_for_admin = ? AND guarantees.accepted = ?", true, false)
}

func (r *orderRepository) FindWithActiveGuarantees(ctx context.Context, since time.Time) ([]models.Order, error) {
	return r.ordersWithGuarantees(ctx, "guarantees.end_date >= ?", since)
}

// ExpireGuarantees deactivates active guarantees whose period has ended
func (r *orderRepository) ExpireGuarantees(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Guarantee{}).
		Where("status = ? AND end_date < ?", models.GuaranteeActive, now).
		Update("status", models.GuaranteeInactive)
	if res.Error != nil {
		return 0, wrapWrite(res.Error, ErrUpdateFailed)
	}
	return res.RowsAffected, nil
}
