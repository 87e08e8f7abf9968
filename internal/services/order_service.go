package services

import (
	"context"
	"strings"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/messaging"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

// CreateOrderInput creates an order for a known client
type CreateOrderInput struct {
	CarInput
	Services []ServiceLineInput `json:"services"`
	Notes    string             `json:"notes"`
}

// UpdateOrderInput edits notes and car attributes of an order
type UpdateOrderInput struct {
	CarModel        *string         `json:"carModel"`
	CarManufacturer *string         `json:"carManufacturer"`
	CarColor        *string         `json:"carColor"`
	CarPlateNumber  *string         `json:"carPlateNumber" validate:"omitempty,carplate"`
	CarSize         *models.CarSize `json:"carSize" validate:"omitempty,oneof=small medium large"`
	Notes           *string         `json:"notes"`
}

// OrderQuery filters an order listing
type OrderQuery struct {
	Status   models.OrderStatus `form:"status"`
	ClientID string             `form:"clientId"`
	PageQuery
}

// OrderWithInvoice is the result of creating an order
type OrderWithInvoice struct {
	Order   *models.Order   `json:"order"`
	Invoice *models.Invoice `json:"invoice,omitempty"`
}

// OrderView is an order joined with its client and invoice
type OrderView struct {
	*models.Order
	ClientName   string          `json:"clientName"`
	ClientNumber string          `json:"clientNumber"`
	Invoice      *models.Invoice `json:"invoice,omitempty"`
}

// OrderService runs the order and guarantee workflow
type OrderService struct {
	deps     *Dependencies
	carTypes *CarTypeService
	invoices *InvoiceService
}

// NewOrderService creates a new order service
func NewOrderService(deps *Dependencies, carTypes *CarTypeService, invoices *InvoiceService) *OrderService {
	return &OrderService{deps: deps, carTypes: carTypes, invoices: invoices}
}

func (s *OrderService) checkInput(input CreateOrderInput) error {
	if err := validate(input.CarInput); err != nil {
		return err
	}
	if len(input.Services) == 0 {
		return badRequest(i18n.OrderServicesRequired)
	}
	car := input.Details()
	if car.CarModel == "" || car.CarColor == "" || car.CarPlateNumber == "" || car.CarManufacturer == "" {
		return badRequest(i18n.OrderCarDetailsRequired)
	}
	return checkLines(input.Services)
}

// createInTx writes an order with its lines and, when it has lines, its invoice.
// Input must already be validated.
func (s *OrderService) createInTx(ctx context.Context, tx *repositories.Store, actor Actor, clientID string, car models.CarDetails, lines []ServiceLineInput, notes string) (*models.Order, *models.Invoice, error) {
	defer newrelic.FromContext(ctx).StartSegment("order-create").End()

	if car.CarModel != "" {
		if _, err := s.carTypes.findOrCreate(ctx, tx, car); err != nil {
			return nil, nil, err
		}
	}

	number, err := tx.Sequences.NextNumber(ctx, models.SequenceOrder)
	if err != nil {
		return nil, nil, fromRepo(err, i18n.OrderNotFound)
	}

	order := &models.Order{
		OrderNumber:     number,
		ClientID:        clientID,
		CarDetails:      car,
		Status:          models.OrderStatusNew,
		Notes:           notes,
		StatusChangedBy: actor.UserID,
	}
	for _, line := range lines {
		order.Services = append(order.Services, line.OrderService())
	}
	if err := tx.Orders.Create(ctx, order); err != nil {
		return nil, nil, fromRepo(err, i18n.OrderNotFound)
	}

	if len(order.Services) == 0 {
		return order, nil, nil
	}
	invoice, err := s.invoices.createForOrder(ctx, tx, order, decimal.Zero, "", s.deps.now())
	if err != nil {
		return nil, nil, err
	}
	return order, invoice, nil
}

// afterCreate runs the post-commit side effects of a new order
func (s *OrderService) afterCreate(ctx context.Context, order *models.Order, invoice *models.Invoice) {
	s.deps.Metrics.IncrementCounter(metrics.OrdersCreated)
	s.deps.publish(ctx, messaging.OrderCreated, map[string]interface{}{
		"id":          order.ID,
		"orderNumber": order.OrderNumber,
		"clientId":    order.ClientID,
		"services":    len(order.Services),
	})
	if invoice != nil {
		s.invoices.afterCreate(ctx, invoice)
	}
}

// CreateOrderForExistingClient creates an order and its invoice in one transaction
func (s *OrderService) CreateOrderForExistingClient(ctx context.Context, actor Actor, clientID string, input CreateOrderInput) (*OrderWithInvoice, error) {
	if err := s.checkInput(input); err != nil {
		return nil, err
	}

	var result OrderWithInvoice
	err := s.deps.Store.WithTransaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Clients.FindByID(ctx, clientID); err != nil {
			return fromRepo(err, i18n.ClientNotFound)
		}
		order, invoice, err := s.createInTx(ctx, tx, actor, clientID, input.Details(), input.Services, input.Notes)
		result = OrderWithInvoice{Order: order, Invoice: invoice}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterCreate(ctx, result.Order, result.Invoice)
	return &result, nil
}

// AddServicesToOrder creates a sibling order for the same client and car carrying the new services
func (s *OrderService) AddServicesToOrder(ctx context.Context, actor Actor, orderID string, services []ServiceLineInput) (*OrderWithInvoice, error) {
	if len(services) == 0 {
		return nil, badRequest(i18n.OrderServicesRequired)
	}
	if err := checkLines(services); err != nil {
		return nil, err
	}

	var result OrderWithInvoice
	err := s.deps.Store.WithTransaction(ctx, func(tx *repositories.Store) error {
		original, err := tx.Orders.FindByID(ctx, orderID)
		if err != nil {
			return fromRepo(err, i18n.OrderNotFound)
		}
		order, invoice, err := s.createInTx(ctx, tx, actor, original.ClientID, original.CarDetails, services, original.Notes)
		result = OrderWithInvoice{Order: order, Invoice: invoice}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterCreate(ctx, result.Order, result.Invoice)
	return &result, nil
}

// ManuallyUpdateGuaranteeStatus sets the status of one guarantee, marks it accepted
// and returns the refreshed order
func (s *OrderService) ManuallyUpdateGuaranteeStatus(ctx context.Context, orderID, serviceID, guaranteeID string, status models.GuaranteeStatus) (*OrderView, error) {
	if status != models.GuaranteeActive && status != models.GuaranteeInactive {
		return nil, badRequest(i18n.GuaranteeInvalidStatus)
	}
	return s.updateGuarantee(ctx, orderID, serviceID, guaranteeID, func(g *models.Guarantee) {
		g.Status = status
		g.Accepted = true
	})
}

// UpdateGuaranteeAcceptance records the admin decision; acceptance activates the guarantee
func (s *OrderService) UpdateGuaranteeAcceptance(ctx context.Context, orderID, serviceID, guaranteeID string, accepted bool) (*OrderView, error) {
	return s.updateGuarantee(ctx, orderID, serviceID, guaranteeID, func(g *models.Guarantee) {
		g.Accepted = accepted
		if accepted {
			g.Status = models.GuaranteeActive
		} else {
			g.Status = models.GuaranteeInactive
		}
	})
}

// SendApproveGuaranteeRequest queues the guarantee for admin approval
func (s *OrderService) SendApproveGuaranteeRequest(ctx context.Context, orderID, serviceID, guaranteeID string) (*OrderView, error) {
	return s.updateGuarantee(ctx, orderID, serviceID, guaranteeID, func(g *models.Guarantee) {
		g.SendApproveForAdmin = true
	})
}

func (s *OrderService) updateGuarantee(ctx context.Context, orderID, serviceID, guaranteeID string, apply func(*models.Guarantee)) (*OrderView, error) {
	guarantee, err := s.deps.Store.Orders.FindGuarantee(ctx, orderID, serviceID, guaranteeID)
	if err != nil {
		return nil, fromRepo(err, i18n.GuaranteeNotFound)
	}
	wasActive := guarantee.Status == models.GuaranteeActive && guarantee.Accepted

	apply(guarantee)
	if err := s.deps.Store.Orders.SaveGuarantee(ctx, guarantee); err != nil {
		return nil, fromRepo(err, i18n.GuaranteeNotFound)
	}

	if !wasActive && guarantee.Accepted && guarantee.Status == models.GuaranteeActive {
		s.deps.Metrics.IncrementCounter(metrics.GuaranteesAccepted)
		s.deps.publish(ctx, messaging.GuaranteeAccepted, map[string]interface{}{
			"orderId": orderID, "serviceId": serviceID, "guaranteeId": guaranteeID,
		})
	}
	return s.FindOne(ctx, orderID)
}

// FindUnacceptedGuaranteesAwaitingApproval lists orders with a guarantee waiting for an admin
func (s *OrderService) FindUnacceptedGuaranteesAwaitingApproval(ctx context.Context) ([]models.Order, error) {
	orders, err := s.deps.Store.Orders.FindAwaitingApproval(ctx)
	return orders, fromRepo(err, i18n.OrderNotFound)
}

// FindActiveGuarantees lists orders holding a guarantee that ends today or later,
// where today starts at local midnight in the business location
func (s *OrderService) FindActiveGuarantees(ctx context.Context) ([]models.Order, error) {
	today := s.deps.Settings.startOfDay(s.deps.now()).UTC()
	orders, err := s.deps.Store.Orders.FindWithActiveGuarantees(ctx, today)
	return orders, fromRepo(err, i18n.OrderNotFound)
}

// ExpireGuarantees deactivates guarantees whose end date has passed
func (s *OrderService) ExpireGuarantees(ctx context.Context) (int64, error) {
	n, err := s.deps.Store.Orders.ExpireGuarantees(ctx, s.deps.now())
	if err != nil {
		return 0, fromRepo(err, i18n.GuaranteeNotFound)
	}
	if n > 0 {
		s.deps.Metrics.IncrementCounterBy(metrics.GuaranteesExpired, n)
		s.deps.publish(ctx, messaging.GuaranteesExpired, map[string]interface{}{"count": n})
		log.Info().Int64("count", n).Msg("expired guarantees")
	}
	return n, nil
}

// ChangeStatus moves an order to status, recording who changed it
func (s *OrderService) ChangeStatus(ctx context.Context, actor Actor, id string, status models.OrderStatus) (*models.Order, error) {
	status = models.OrderStatus(strings.ToUpper(strings.TrimSpace(string(status))))
	if !ValidOrderStatus(status) {
		return nil, badRequest(i18n.OrderInvalidStatus)
	}
	order, err := s.deps.Store.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.OrderNotFound)
	}
	if s.deps.Settings.EnforceOrderTransitions && !allowed(orderTransitions, order.Status, status) {
		return nil, badRequest(i18n.OrderInvalidTransition, order.Status, status)
	}

	from := order.Status
	order.Status = status
	order.StatusChangedBy = actor.UserID
	if err := s.deps.Store.Orders.Save(ctx, order); err != nil {
		return nil, fromRepo(err, i18n.OrderNotFound)
	}

	if from != status {
		s.deps.publish(ctx, messaging.OrderStatusChange, map[string]interface{}{
			"id": order.ID, "from": from, "to": status, "changedBy": actor.UserID,
		})
	}
	return order, nil
}

// GetStatusHistory returns the recorded status changes of an order
func (s *OrderService) GetStatusHistory(ctx context.Context, id string) (models.StatusHistory, error) {
	order, err := s.deps.Store.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.OrderNotFound)
	}
	if order.StatusHistory == nil {
		return models.StatusHistory{}, nil
	}
	return order.StatusHistory, nil
}

// FindByStatus lists orders in one status
func (s *OrderService) FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	if !ValidOrderStatus(status) {
		return nil, badRequest(i18n.OrderInvalidStatus)
	}
	return s.FindAll(ctx, OrderQuery{Status: status})
}

// FindAll lists orders newest first
func (s *OrderService) FindAll(ctx context.Context, query OrderQuery) ([]models.Order, error) {
	if query.Status != "" && !ValidOrderStatus(query.Status) {
		return nil, badRequest(i18n.OrderInvalidStatus)
	}
	orders, err := s.deps.Store.Orders.FindAll(ctx, repositories.OrderFilter{
		Status:   query.Status,
		ClientID: query.ClientID,
		Page:     repositories.Page{Limit: query.Limit, Offset: query.Offset},
	})
	return orders, fromRepo(err, i18n.OrderNotFound)
}

// FindByClient lists the orders of a client
func (s *OrderService) FindByClient(ctx context.Context, clientID string) ([]models.Order, error) {
	if _, err := s.deps.Store.Clients.FindByID(ctx, clientID); err != nil {
		return nil, fromRepo(err, i18n.ClientNotFound)
	}
	return s.FindAll(ctx, OrderQuery{ClientID: clientID})
}

// FindOne returns an order with its client and invoice
func (s *OrderService) FindOne(ctx context.Context, id string) (*OrderView, error) {
	order, err := s.deps.Store.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.OrderNotFound)
	}
	view := &OrderView{Order: order}
	if order.Client != nil {
		view.ClientName = order.Client.FullName()
		view.ClientNumber = order.Client.ClientNumber
	}
	if order.InvoiceID != nil {
		invoice, err := s.deps.Store.Invoices.FindByID(ctx, *order.InvoiceID)
		switch {
		case err == nil:
			invoice.Order = nil
			view.Invoice = invoice
		case !IsNotFound(fromRepo(err, i18n.InvoiceNotFound)):
			return nil, fromRepo(err, i18n.InvoiceNotFound)
		}
	}
	return view, nil
}

// Update edits notes and car attributes
func (s *OrderService) Update(ctx context.Context, id string, input UpdateOrderInput) (*models.Order, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	order, err := s.deps.Store.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.OrderNotFound)
	}
	applyCarUpdate(&order.CarDetails, input.CarModel, input.CarManufacturer, input.CarColor, input.CarPlateNumber, input.CarSize)
	if input.Notes != nil {
		order.Notes = *input.Notes
	}
	if err := s.deps.Store.Orders.Save(ctx, order); err != nil {
		return nil, fromRepo(err, i18n.OrderNotFound)
	}
	return order, nil
}

// Remove soft deletes an order
func (s *OrderService) Remove(ctx context.Context, id string) error {
	return fromRepo(s.deps.Store.Orders.Delete(ctx, id), i18n.OrderNotFound)
}
