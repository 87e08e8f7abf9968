// Package services holds the business rules of the back office.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/auth"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

// Cache is the subset of the Redis cache used by services
type Cache interface {
	Get(ctx context.Context, key string, value interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ClientIndex is the full-text index of clients
type ClientIndex interface {
	IndexClient(ctx context.Context, client *models.Client) error
	DeleteClient(ctx context.Context, id string) error
	SearchClients(ctx context.Context, term string, limit int) ([]string, error)
	Enabled() bool
}

// Publisher sends domain events
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// Settings are the business rules that come from configuration
type Settings struct {
	TaxRate                   decimal.Decimal
	EnforceOrderTransitions   bool
	EnforceInvoiceTransitions bool
	// Location sets where a business day starts; nil means UTC
	Location *time.Location
}

// startOfDay returns midnight of t's calendar day in the business location
func (s Settings) startOfDay(t time.Time) time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SettingsFromConfig extracts Settings from the application config
func SettingsFromConfig(cfg config.Config) Settings {
	return Settings{
		TaxRate:                   decimal.NewFromFloat(cfg.Invoice.TaxRate),
		EnforceOrderTransitions:   cfg.Orders.EnforceTransitions,
		EnforceInvoiceTransitions: cfg.Invoice.EnforceTransitions,
		Location:                  cfg.I18n.Location(),
	}
}

// Dependencies are shared by every service. Only Store is required.
type Dependencies struct {
	Store      *repositories.Store
	Cache      Cache
	Index      ClientIndex
	Publisher  Publisher
	Metrics    *metrics.Metrics
	Translator i18n.Translator
	Tokens     *auth.TokenManager
	Settings   Settings
	Now        func() time.Time
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

// publish sends an event after a committed write; failures are only logged
func (d *Dependencies) publish(ctx context.Context, eventType string, payload interface{}) {
	if d.Publisher == nil {
		return
	}
	if err := d.Publisher.Publish(ctx, eventType, payload); err != nil {
		d.Metrics.IncrementCounter(metrics.EventsPublishFailed)
		log.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}

// invalidate drops cached entries; failures are only logged
func (d *Dependencies) invalidate(ctx context.Context, keys ...string) {
	if d.Cache == nil || len(keys) == 0 {
		return
	}
	if err := d.Cache.Delete(ctx, keys...); err != nil {
		log.Debug().Err(err).Strs("keys", keys).Msg("cache invalidation skipped")
	}
}

// cached loads key into value, reporting a hit
func (d *Dependencies) cached(ctx context.Context, key string, value interface{}) bool {
	if d.Cache == nil {
		return false
	}
	return d.Cache.Get(ctx, key, value) == nil
}

func (d *Dependencies) remember(ctx context.Context, key string, value interface{}) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Set(ctx, key, value, 0); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("cache write skipped")
	}
}

func (d *Dependencies) translate(lang, key string, args ...interface{}) string {
	if d.Translator == nil {
		return key
	}
	return d.Translator.T(lang, key, args...)
}

func (d *Dependencies) label(lang, namespace, value string) string {
	if d.Translator == nil {
		return value
	}
	return d.Translator.Label(lang, namespace, value)
}

// Services bundles every domain service
type Services struct {
	Clients    *ClientService
	Orders     *OrderService
	Invoices   *InvoiceService
	Offers     *OfferService
	WorkOrders *WorkOrderService
	Branches   *BranchService
	Vouchers   *VoucherService
	Tasks      *TaskService
	Users      *UserService
	Auth       *AuthService
	CarTypes   *CarTypeService
	Reports    *ReportService
	Catalog    *CatalogService
}

// New wires every service on top of deps
func New(deps *Dependencies) *Services {
	carTypes := NewCarTypeService(deps)
	invoices := NewInvoiceService(deps)
	orders := NewOrderService(deps, carTypes, invoices)
	workOrders := NewWorkOrderService(deps)

	return &Services{
		Clients:    NewClientService(deps, orders),
		Orders:     orders,
		Invoices:   invoices,
		Offers:     NewOfferService(deps, orders, workOrders),
		WorkOrders: workOrders,
		Branches:   NewBranchService(deps),
		Vouchers:   NewVoucherService(deps),
		Tasks:      NewTaskService(deps),
		Users:      NewUserService(deps),
		Auth:       NewAuthService(deps),
		CarTypes:   carTypes,
		Reports:    NewReportService(deps),
		Catalog:    NewCatalogService(deps),
	}
}
