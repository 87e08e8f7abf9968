package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// ClientFilter narrows a client listing
type ClientFilter struct {
	Branch   models.ClientBranch
	Search   string
	SortBy   string
	SortDesc bool
	Page
}

// ClientOrderStats summarizes a client's orders
type ClientOrderStats struct {
	TotalOrders      int64 `json:"totalOrders"`
	ActiveGuarantees int64 `json:"activeGuarantees"`
}

var clientSortColumns = map[string]string{
	"createdAt":    "created_at",
	"clientNumber": "client_number",
	"firstName":    "first_name",
	"lastName":     "last_name",
	"rating":       "rating",
}

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Client, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Client, error)
	FindByPhone(ctx context.Context, phone string) (*models.Client, error)
	FindByFullName(ctx context.Context, first, second, third, last string) (*models.Client, error)
	FindOtherByPhone(ctx context.Context, phone, excludeID string) (*models.Client, error)
	FindOtherByEmail(ctx context.Context, email, excludeID string) (*models.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]models.Client, int64, error)
	OrderStats(ctx context.Context, clientIDs []string, now time.Time) (map[string]ClientOrderStats, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	return wrapWrite(r.db.WithContext(ctx).Omit(clause.Associations).Create(client).Error, ErrCreateFailed)
}

func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	return wrapWrite(r.db.WithContext(ctx).Omit(clause.Associations).Save(client).Error, ErrUpdateFailed)
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Client{})
	if res.Error != nil {
		return wrapWrite(res.Error, ErrDeleteFailed)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *clientRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Client, error) {
	var clients []models.Client
	if len(ids) == 0 {
		return clients, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&clients).Error
	return clients, translate(err)
}

// FindByPhone matches either phone column of an active client
func (r *clientRepository) FindByPhone(ctx context.Context, phone string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ? OR second_phone = ?", phone, phone).
		Order("created_at").
		First(&client).Error
	if err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *clientRepository) FindByFullName(ctx context.Context, first, second, third, last string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Where("first_name = ? AND second_name = ? AND third_name = ? AND last_name = ?", first, second, third, last).
		Order("created_at").
		First(&client).Error
	if err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *clientRepository) FindOtherByPhone(ctx context.Context, phone, excludeID string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Where("(phone = ? OR second_phone = ?) AND id <> ?", phone, phone, excludeID).
		First(&client).Error
	if err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *clientRepository) FindOtherByEmail(ctx context.Context, email, excludeID string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, excludeID).
		First(&client).Error
	if err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, filter ClientFilter) ([]models.Client, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Client{})
	if filter.Branch != "" {
		q = q.Where("branch = ?", filter.Branch)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(second_name) LIKE ? OR LOWER(third_name) LIKE ? OR LOWER(last_name) LIKE ? "+
				"OR phone LIKE ? OR second_phone LIKE ? OR LOWER(client_number) LIKE ? "+
				"OR LOWER(first_name || ' ' || second_name || ' ' || third_name || ' ' || last_name) LIKE ?",
			p, p, p, p, p, p, p, p,
		)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	column, ok := clientSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	var clients []models.Client
	err := filter.Page.apply(q).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: filter.SortDesc}).
		Find(&clients).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return clients, total, nil
}

// OrderStats counts live orders per client and the orders holding an unexpired guarantee
func (r *clientRepository) OrderStats(ctx context.Context, clientIDs []string, now time.Time) (map[string]ClientOrderStats, error) {
	stats := make(map[string]ClientOrderStats, len(clientIDs))
	if len(clientIDs) == 0 {
		return stats, nil
	}

	var totals []struct {
		ClientID string
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("client_id, COUNT(*) AS count").
		Where("client_id IN ?", clientIDs).
		Group("client_id").
		Scan(&totals).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, t := range totals {
		s := stats[t.ClientID]
		s.TotalOrders = t.Count
		stats[t.ClientID] = s
	}

	var active []struct {
		ClientID string
		Count    int64
	}
	err = r.db.WithContext(ctx).Model(&models.Order{}).
		Select("orders.client_id, COUNT(DISTINCT orders.id) AS count").
		Joins("JOIN order_services ON order_services.order_id = orders.id AND order_services.deleted_at IS NULL").
		Joins("JOIN guarantees ON guarantees.service_id = order_services.id AND guarantees.deleted_at IS NULL").
		Where("orders.client_id IN ? AND guarantees.end_date > ?", clientIDs, now).
		Group("orders.client_id").
		Scan(&active).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, a := range active {
		s := stats[a.ClientID]
		s.ActiveGuarantees = a.Count
		stats[a.ClientID] = s
	}
	return stats, nil
}
