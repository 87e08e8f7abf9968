package services

import (
	"context"
	"strings"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/shopspring/decimal"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/messaging"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

// CreateOfferInput quotes services for a client
type CreateOfferInput struct {
	ClientID string `json:"clientId" validate:"required"`
	CarInput
	Services []ServiceLineInput `json:"services"`
	Notes    string             `json:"notes"`
}

// UpdateOfferInput edits the car attributes and notes of an offer
type UpdateOfferInput struct {
	CarModel        *string         `json:"carModel"`
	CarManufacturer *string         `json:"carManufacturer"`
	CarColor        *string         `json:"carColor"`
	CarPlateNumber  *string         `json:"carPlateNumber" validate:"omitempty,carplate"`
	CarSize         *models.CarSize `json:"carSize" validate:"omitempty,oneof=small medium large"`
	Notes           *string         `json:"notes"`
}

// ConvertOfferInput carries what an offer lacks to become an order
type ConvertOfferInput struct {
	CarInput
	EmployeeIDs []string `json:"employeeIds"`
	Notes       string   `json:"notes"`
}

// ConvertedOffer is the result of ConvertOfferToOrder
type ConvertedOffer struct {
	Order     *models.Order     `json:"order"`
	Invoice   *models.Invoice   `json:"invoice,omitempty"`
	WorkOrder *models.WorkOrder `json:"workOrder"`
}

// OfferService manages price offers
type OfferService struct {
	deps       *Dependencies
	orders     *OrderService
	workOrders *WorkOrderService
}

// NewOfferService creates a new offer service
func NewOfferService(deps *Dependencies, orders *OrderService, workOrders *WorkOrderService) *OfferService {
	return &OfferService{deps: deps, orders: orders, workOrders: workOrders}
}

// Create stores an offer for an existing client
func (s *OfferService) Create(ctx context.Context, actor Actor, input CreateOfferInput) (*models.OfferPrice, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	if err := checkLines(input.Services); err != nil {
		return nil, err
	}
	if _, err := s.deps.Store.Clients.FindByID(ctx, input.ClientID); err != nil {
		return nil, fromRepo(err, i18n.ClientNotFound)
	}

	offer := &models.OfferPrice{
		ClientID:   input.ClientID,
		CreatedBy:  actor.UserID,
		CarDetails: input.Details(),
		Notes:      input.Notes,
	}
	for _, line := range input.Services {
		offer.Services = append(offer.Services, line.OfferService())
	}
	if err := s.deps.Store.Offers.Create(ctx, offer); err != nil {
		return nil, fromRepo(err, i18n.OfferNotFound)
	}
	return offer, nil
}

// FindAll lists offers newest first
func (s *OfferService) FindAll(ctx context.Context, page PageQuery) ([]models.OfferPrice, error) {
	offers, err := s.deps.Store.Offers.FindAll(ctx, "", repositories.Page{Limit: page.Limit, Offset: page.Offset})
	return offers, fromRepo(err, i18n.OfferNotFound)
}

// FindByClient lists the offers of a client
func (s *OfferService) FindByClient(ctx context.Context, clientID string) ([]models.OfferPrice, error) {
	offers, err := s.deps.Store.Offers.FindAll(ctx, clientID, repositories.Page{})
	return offers, fromRepo(err, i18n.OfferNotFound)
}

// FindOne returns an offer with its services
func (s *OfferService) FindOne(ctx context.Context, id string) (*models.OfferPrice, error) {
	offer, err := s.deps.Store.Offers.FindByID(ctx, id)
	return offer, fromRepo(err, i18n.OfferNotFound)
}

// Update edits the offer header
func (s *OfferService) Update(ctx context.Context, id string, input UpdateOfferInput) (*models.OfferPrice, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	offer, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCarUpdate(&offer.CarDetails, input.CarModel, input.CarManufacturer, input.CarColor, input.CarPlateNumber, input.CarSize)
	if input.Notes != nil {
		offer.Notes = *input.Notes
	}
	if err := s.deps.Store.Offers.Save(ctx, offer); err != nil {
		return nil, fromRepo(err, i18n.OfferNotFound)
	}
	return offer, nil
}

// Remove soft deletes an offer
func (s *OfferService) Remove(ctx context.Context, id string) error {
	return fromRepo(s.deps.Store.Offers.Delete(ctx, id), i18n.OfferNotFound)
}

// AddService appends a quoted line to an offer
func (s *OfferService) AddService(ctx context.Context, offerID string, input ServiceLineInput) (*models.OfferPrice, error) {
	if err := checkLines([]ServiceLineInput{input}); err != nil {
		return nil, err
	}
	if _, err := s.FindOne(ctx, offerID); err != nil {
		return nil, err
	}
	svc := input.OfferService()
	svc.OfferID = offerID
	if err := s.deps.Store.Offers.AddService(ctx, &svc); err != nil {
		return nil, fromRepo(err, i18n.OfferNotFound)
	}
	return s.FindOne(ctx, offerID)
}

// UpdateService replaces one quoted line
func (s *OfferService) UpdateService(ctx context.Context, offerID, serviceID string, input ServiceLineInput) (*models.OfferPrice, error) {
	if err := checkLines([]ServiceLineInput{input}); err != nil {
		return nil, err
	}
	svc, err := s.deps.Store.Offers.FindService(ctx, offerID, serviceID)
	if err != nil {
		return nil, fromRepo(err, i18n.OfferServiceNotFound)
	}
	replacement := input.OfferService()
	svc.ServiceLine = replacement.ServiceLine
	svc.Guarantee = replacement.Guarantee
	if err := s.deps.Store.Offers.SaveService(ctx, svc); err != nil {
		return nil, fromRepo(err, i18n.OfferServiceNotFound)
	}
	return s.FindOne(ctx, offerID)
}

// RemoveService deletes one quoted line
func (s *OfferService) RemoveService(ctx context.Context, offerID, serviceID string) (*models.OfferPrice, error) {
	if err := s.deps.Store.Offers.DeleteService(ctx, offerID, serviceID); err != nil {
		return nil, fromRepo(err, i18n.OfferServiceNotFound)
	}
	return s.FindOne(ctx, offerID)
}

// TotalPrice sums the quoted prices of an offer
func (s *OfferService) TotalPrice(ctx context.Context, id string) (decimal.Decimal, error) {
	offer, err := s.FindOne(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, svc := range offer.Services {
		total = total.Add(svc.Price)
	}
	return total.Round(2), nil
}

// ConvertOfferToOrder turns an offer into an order, its invoice and a work order in one transaction
func (s *OfferService) ConvertOfferToOrder(ctx context.Context, actor Actor, offerID string, input ConvertOfferInput) (*ConvertedOffer, error) {
	defer newrelic.FromContext(ctx).StartSegment("offer-convert").End()

	car := input.Details()
	if car.CarModel == "" {
		return nil, badRequest(i18n.OfferCarModelRequired)
	}
	if car.CarSize != "" {
		car.CarSize = models.CarSize(strings.ToLower(strings.TrimSpace(string(car.CarSize))))
		switch car.CarSize {
		case models.CarSizeSmall, models.CarSizeMedium, models.CarSizeLarge:
		default:
			return nil, badRequest(i18n.OfferInvalidCarSize)
		}
	}
	if car.CarPlateNumber != "" {
		if err := validate(CarInput{CarPlateNumber: car.CarPlateNumber}); err != nil {
			return nil, err
		}
	}
	if _, err := normalizeEmployees(input.EmployeeIDs); err != nil {
		return nil, err
	}

	result := &ConvertedOffer{}
	err := s.deps.Store.WithTransaction(ctx, func(tx *repositories.Store) error {
		offer, err := tx.Offers.FindByID(ctx, offerID)
		if err != nil {
			return fromRepo(err, i18n.OfferNotFound)
		}
		if offer.Converted() {
			return conflict(i18n.OfferAlreadyConverted)
		}

		lines := make([]ServiceLineInput, len(offer.Services))
		for i, svc := range offer.Services {
			lines[i] = lineFromOffer(svc)
		}
		if err := checkLines(lines); err != nil {
			return err
		}

		notes := input.Notes
		if notes == "" {
			notes = offer.Notes
		}
		order, invoice, err := s.orders.createInTx(ctx, tx, actor, offer.ClientID, mergeCar(car, offer.CarDetails), lines, notes)
		if err != nil {
			return err
		}
		workOrder, err := s.workOrders.createInTx(ctx, tx, actor, order, input.EmployeeIDs, input.Notes)
		if err != nil {
			return err
		}

		offer.OrderID = &order.ID
		if err := tx.Offers.Save(ctx, offer); err != nil {
			return fromRepo(err, i18n.OfferNotFound)
		}
		result.Order, result.Invoice, result.WorkOrder = order, invoice, workOrder
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.orders.afterCreate(ctx, result.Order, result.Invoice)
	s.deps.Metrics.IncrementCounter(metrics.OffersConverted)
	s.deps.publish(ctx, messaging.OfferConverted, map[string]interface{}{
		"offerId":     offerID,
		"orderId":     result.Order.ID,
		"workOrderId": result.WorkOrder.ID,
	})
	return result, nil
}

// mergeCar fills blanks in the request from the quoted car
func mergeCar(car, quoted models.CarDetails) models.CarDetails {
	if car.CarManufacturer == "" {
		car.CarManufacturer = quoted.CarManufacturer
	}
	if car.CarColor == "" {
		car.CarColor = quoted.CarColor
	}
	if car.CarPlateNumber == "" {
		car.CarPlateNumber = quoted.CarPlateNumber
	}
	if car.CarSize == "" {
		car.CarSize = quoted.CarSize
	}
	return car
}

// applyCarUpdate copies every non-nil field onto car
func applyCarUpdate(car *models.CarDetails, carModel, manufacturer, color, plate *string, size *models.CarSize) {
	if carModel != nil {
		car.CarModel = strings.TrimSpace(*carModel)
	}
	if manufacturer != nil {
		car.CarManufacturer = strings.TrimSpace(*manufacturer)
	}
	if color != nil {
		car.CarColor = strings.TrimSpace(*color)
	}
	if plate != nil {
		car.CarPlateNumber = strings.TrimSpace(*plate)
	}
	if size != nil {
		car.CarSize = *size
	}
}
