package services

import (
	"context"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/cache"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/export"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/messaging"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

var numericKeyword = regexp.MustCompile(`^\d+$`)

// CreateInvoiceInput issues an invoice for an existing order
type CreateInvoiceInput struct {
	ClientID    string           `json:"clientId" validate:"required"`
	OrderID     string           `json:"orderId" validate:"required"`
	InvoiceDate *time.Time       `json:"invoiceDate"`
	Discount    *decimal.Decimal `json:"discount"`
	Notes       string           `json:"notes"`
}

// UpdateInvoiceInput changes the editable parts of an invoice
type UpdateInvoiceInput struct {
	Notes    *string          `json:"notes"`
	Discount *decimal.Decimal `json:"discount"`
	TaxRate  *decimal.Decimal `json:"taxRate"`
}

// InvoiceQuery filters an invoice listing
type InvoiceQuery struct {
	Keyword   string               `form:"keyword"`
	Status    models.InvoiceStatus `form:"status" validate:"omitempty,oneof=open pending approved rejected"`
	ClientID  string               `form:"clientId"`
	StartDate *time.Time           `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time           `form:"endDate" time_format:"2006-01-02"`
	PageQuery
}

// ClientFinancialReport summarizes a client's invoices
type ClientFinancialReport struct {
	ClientID      string          `json:"clientId"`
	InvoiceCount  int64           `json:"invoiceCount"`
	TotalSubtotal decimal.Decimal `json:"totalSubtotal"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AverageTotal  decimal.Decimal `json:"averageTotal"`
}

// InvoiceView is the denormalized invoice read model
type InvoiceView struct {
	ID            string               `json:"id"`
	InvoiceNumber string               `json:"invoiceNumber"`
	InvoiceDate   time.Time            `json:"invoiceDate"`
	Status        models.InvoiceStatus `json:"status"`
	StatusLabel   string               `json:"statusLabel"`
	Notes         string               `json:"notes,omitempty"`
	Totals
	Client   *ClientBrief      `json:"client,omitempty"`
	Order    *OrderBrief       `json:"order,omitempty"`
	Services []ServiceLineView `json:"services"`
}

// ClientBrief is the client summary embedded in other views
type ClientBrief struct {
	ID           string `json:"id"`
	ClientNumber string `json:"clientNumber"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	BranchLabel  string `json:"branchLabel"`
}

// OrderBrief is the order summary embedded in invoice views
type OrderBrief struct {
	ID          string             `json:"id"`
	OrderNumber string             `json:"orderNumber"`
	Status      models.OrderStatus `json:"status"`
	StatusLabel string             `json:"statusLabel"`
	models.CarDetails
	CarSizeLabel string `json:"carSizeLabel,omitempty"`
}

// ServiceLineView is an order line enriched with localized labels
type ServiceLineView struct {
	ID               string             `json:"id"`
	ServiceType      models.ServiceType `json:"serviceType"`
	ServiceTypeLabel string             `json:"serviceTypeLabel"`
	DealDetails      string             `json:"dealDetails,omitempty"`
	ServicePrice     decimal.Decimal    `json:"servicePrice"`
	Details          interface{}        `json:"details,omitempty"`
	Guarantee        *GuaranteeView     `json:"guarantee,omitempty"`
}

// GuaranteeView formats guarantee dates for the request locale
type GuaranteeView struct {
	ID            string                 `json:"id"`
	TypeGuarantee string                 `json:"typeGuarantee,omitempty"`
	StartDate     string                 `json:"startDate"`
	EndDate       string                 `json:"endDate"`
	Status        models.GuaranteeStatus `json:"status"`
	StatusLabel   string                 `json:"statusLabel"`
	Accepted      bool                   `json:"accepted"`
	Terms         string                 `json:"terms,omitempty"`
}

// InvoiceService issues and tracks invoices
type InvoiceService struct {
	deps *Dependencies
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(deps *Dependencies) *InvoiceService {
	return &InvoiceService{deps: deps}
}

// createForOrder prices the order lines and links the new invoice to the order
func (s *InvoiceService) createForOrder(ctx context.Context, tx *repositories.Store, order *models.Order, discount decimal.Decimal, notes string, date time.Time) (*models.Invoice, error) {
	defer newrelic.FromContext(ctx).StartSegment("invoice-create").End()

	number, err := tx.Sequences.NextNumber(ctx, models.SequenceInvoice)
	if err != nil {
		return nil, fromRepo(err, i18n.InvoiceNotFound)
	}

	invoice := &models.Invoice{
		InvoiceNumber: number,
		InvoiceDate:   date,
		ClientID:      order.ClientID,
		OrderID:       order.ID,
		Notes:         notes,
		Status:        models.InvoiceStatusOpen,
	}
	ComputeTotals(models.SumPrices(order.ServiceLines()), s.deps.Settings.TaxRate, discount).Apply(invoice)

	if err := tx.Invoices.Create(ctx, invoice); err != nil {
		return nil, fromRepo(err, i18n.InvoiceNotFound)
	}
	if err := tx.Orders.SetInvoice(ctx, order.ID, invoice.ID); err != nil {
		return nil, fromRepo(err, i18n.OrderNotFound)
	}
	order.InvoiceID = &invoice.ID
	return invoice, nil
}

// afterCreate runs the post-commit side effects of a new invoice
func (s *InvoiceService) afterCreate(ctx context.Context, invoice *models.Invoice) {
	s.deps.Metrics.IncrementCounter(metrics.InvoicesCreated)
	s.deps.invalidate(ctx, cache.ClientReportKey(invoice.ClientID))
	s.deps.publish(ctx, messaging.InvoiceCreated, map[string]interface{}{
		"id":            invoice.ID,
		"invoiceNumber": invoice.InvoiceNumber,
		"orderId":       invoice.OrderID,
		"clientId":      invoice.ClientID,
		"finalAmount":   invoice.FinalAmount,
	})
}

// CreateInvoice issues an invoice for an order of the given client
func (s *InvoiceService) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	var invoice *models.Invoice
	err := s.deps.Store.WithTransaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Clients.FindByID(ctx, input.ClientID); err != nil {
			return fromRepo(err, i18n.ClientNotFound)
		}
		order, err := tx.Orders.FindByID(ctx, input.OrderID)
		if err != nil {
			return fromRepo(err, i18n.OrderNotFound)
		}
		if order.ClientID != input.ClientID {
			return badRequest(i18n.InvoiceOrderMismatch)
		}
		if _, err := tx.Invoices.FindByOrderID(ctx, order.ID); err == nil {
			return conflict(i18n.InvoiceAlreadyExists)
		} else if err = fromRepo(err, i18n.InvoiceNotFound); !IsNotFound(err) {
			return err
		}

		discount := decimal.Zero
		if input.Discount != nil {
			discount = *input.Discount
		}
		date := s.deps.now()
		if input.InvoiceDate != nil {
			date = input.InvoiceDate.UTC()
		}
		invoice, err = s.createForOrder(ctx, tx, order, discount, input.Notes, date)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterCreate(ctx, invoice)
	return invoice, nil
}

// UpdateInvoiceStatus moves an invoice along open -> pending -> approved|rejected
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, id string, status models.InvoiceStatus) (*models.Invoice, error) {
	if _, known := invoiceTransitions[status]; !known {
		return nil, &Error{Kind: KindBadRequest, Key: i18n.ErrValidation, Detail: "status must be one of [open pending approved rejected]"}
	}
	invoice, err := s.deps.Store.Invoices.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.InvoiceNotFound)
	}
	if s.deps.Settings.EnforceInvoiceTransitions && !allowed(invoiceTransitions, invoice.Status, status) {
		return nil, badRequest(i18n.InvoiceInvalidTransition, invoice.Status, status)
	}

	from := invoice.Status
	invoice.Status = status
	if err := s.deps.Store.Invoices.Save(ctx, invoice); err != nil {
		return nil, fromRepo(err, i18n.InvoiceNotFound)
	}

	s.evict(ctx, invoice)
	s.deps.publish(ctx, messaging.InvoiceStatus, map[string]interface{}{
		"id": invoice.ID, "from": from, "to": status,
	})
	return invoice, nil
}

// UpdateInvoice edits notes, discount or tax rate and recomputes the totals
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, input UpdateInvoiceInput) (*models.Invoice, error) {
	invoice, err := s.deps.Store.Invoices.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.InvoiceNotFound)
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}
	if input.Discount != nil {
		if input.Discount.IsNegative() {
			return nil, &Error{Kind: KindBadRequest, Key: i18n.ErrValidation, Detail: "discount must be at least 0"}
		}
		invoice.Discount = *input.Discount
	}
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(hundred) {
			return nil, &Error{Kind: KindBadRequest, Key: i18n.ErrValidation, Detail: "taxRate must be between 0 and 100"}
		}
		invoice.TaxRate = *input.TaxRate
	}
	invoiceTotals(invoice).Apply(invoice)

	if err := s.deps.Store.Invoices.Save(ctx, invoice); err != nil {
		return nil, fromRepo(err, i18n.InvoiceNotFound)
	}
	s.evict(ctx, invoice)
	return invoice, nil
}

// SoftDelete hides an invoice from every read path
func (s *InvoiceService) SoftDelete(ctx context.Context, id string) error {
	invoice, err := s.deps.Store.Invoices.FindByID(ctx, id)
	if err != nil {
		return fromRepo(err, i18n.InvoiceNotFound)
	}
	if err := s.deps.Store.Invoices.Delete(ctx, id); err != nil {
		return fromRepo(err, i18n.InvoiceNotFound)
	}
	s.evict(ctx, invoice)
	return nil
}

// Restore brings back a soft deleted invoice
func (s *InvoiceService) Restore(ctx context.Context, id string) (*models.Invoice, error) {
	deleted, err := s.deps.Store.Invoices.FindDeletedByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.InvoiceNotFound)
	}
	if err := s.deps.Store.Invoices.Restore(ctx, id); err != nil {
		return nil, fromRepo(err, i18n.InvoiceNotFound)
	}
	s.evict(ctx, deleted)
	return s.FindByID(ctx, id)
}

// FindByID returns the stored invoice with its client and order
func (s *InvoiceService) FindByID(ctx context.Context, id string) (*models.Invoice, error) {
	invoice, err := s.deps.Store.Invoices.FindByID(ctx, id)
	return invoice, fromRepo(err, i18n.InvoiceNotFound)
}

// FindAll lists invoices; a numeric keyword matches INV-<n> exactly and the end date is inclusive
func (s *InvoiceService) FindAll(ctx context.Context, query InvoiceQuery) ([]models.Invoice, error) {
	filter, err := s.filter(query)
	if err != nil {
		return nil, err
	}
	invoices, err := s.deps.Store.Invoices.FindAll(ctx, filter)
	return invoices, fromRepo(err, i18n.InvoiceNotFound)
}

func (s *InvoiceService) filter(query InvoiceQuery) (repositories.InvoiceFilter, error) {
	if err := validate(query); err != nil {
		return repositories.InvoiceFilter{}, err
	}
	if query.StartDate != nil && query.EndDate != nil && query.StartDate.After(*query.EndDate) {
		return repositories.InvoiceFilter{}, badRequest(i18n.InvoiceInvalidDateRange)
	}

	filter := repositories.InvoiceFilter{
		Status:    query.Status,
		ClientID:  query.ClientID,
		StartDate: query.StartDate,
		Page:      repositories.Page{Limit: query.Limit, Offset: query.Offset},
	}
	keyword := strings.TrimSpace(query.Keyword)
	if numericKeyword.MatchString(keyword) {
		filter.Number = models.SequenceInvoice + "-" + keyword
	} else {
		filter.Keyword = keyword
	}
	if query.EndDate != nil {
		end := query.EndDate.Truncate(24 * time.Hour).AddDate(0, 0, 1)
		filter.EndDate = &end
	}
	return filter, nil
}

// FindByClient lists the invoices of a client
func (s *InvoiceService) FindByClient(ctx context.Context, clientID string) ([]models.Invoice, error) {
	if _, err := s.deps.Store.Clients.FindByID(ctx, clientID); err != nil {
		return nil, fromRepo(err, i18n.ClientNotFound)
	}
	return s.FindAll(ctx, InvoiceQuery{ClientID: clientID})
}

// FindByOrder returns the stored invoice of an order
func (s *InvoiceService) FindByOrder(ctx context.Context, orderID string) (*models.Invoice, error) {
	invoice, err := s.deps.Store.Invoices.FindByOrderID(ctx, orderID)
	return invoice, fromRepo(err, i18n.InvoiceNotFound)
}

// FindInvoiceByOrderID returns the localized view of an order's invoice
func (s *InvoiceService) FindInvoiceByOrderID(ctx context.Context, orderID, lang string) (*InvoiceView, error) {
	invoice, err := s.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.view(invoice, lang), nil
}

// FindOne returns the localized view of an invoice
func (s *InvoiceService) FindOne(ctx context.Context, id, lang string) (*InvoiceView, error) {
	key := cache.InvoiceViewKey(id, lang)
	var view InvoiceView
	if s.deps.cached(ctx, key, &view) {
		return &view, nil
	}

	invoice, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := s.view(invoice, lang)
	s.deps.remember(ctx, key, out)
	return out, nil
}

// GetClientFinancialReport aggregates the invoices of a client
func (s *InvoiceService) GetClientFinancialReport(ctx context.Context, clientID string) (*ClientFinancialReport, error) {
	if _, err := s.deps.Store.Clients.FindByID(ctx, clientID); err != nil {
		return nil, fromRepo(err, i18n.ClientNotFound)
	}

	key := cache.ClientReportKey(clientID)
	var report ClientFinancialReport
	if s.deps.cached(ctx, key, &report) {
		return &report, nil
	}

	summary, err := s.deps.Store.Invoices.ClientSummary(ctx, clientID)
	if err != nil {
		return nil, fromRepo(err, i18n.InvoiceNotFound)
	}
	report = ClientFinancialReport{
		ClientID:      clientID,
		InvoiceCount:  summary.Count,
		TotalSubtotal: summary.TotalSubtotal.Round(2),
		TotalTax:      summary.TotalTax.Round(2),
		TotalAmount:   summary.TotalAmount.Round(2),
		AverageTotal:  decimal.Zero,
	}
	if summary.Count > 0 {
		report.AverageTotal = summary.TotalAmount.Div(decimal.NewFromInt(summary.Count)).Round(2)
	}
	s.deps.remember(ctx, key, report)
	return &report, nil
}

// ExportInvoices writes the filtered invoices as an XLSX workbook
func (s *InvoiceService) ExportInvoices(ctx context.Context, w io.Writer, query InvoiceQuery, lang string) error {
	defer newrelic.FromContext(ctx).StartSegment("invoice-export").End()

	invoices, err := s.FindAll(ctx, query)
	if err != nil {
		return err
	}
	var labels export.Labeler
	if s.deps.Translator != nil {
		labels = s.deps.Translator
	}
	if err := export.WriteInvoices(w, invoices, labels, lang); err != nil {
		return &Error{Kind: KindInternal, Key: i18n.ErrInternal, Err: err}
	}
	return nil
}

func (s *InvoiceService) evict(ctx context.Context, invoice *models.Invoice) {
	s.deps.invalidate(ctx,
		cache.InvoiceViewKey(invoice.ID, i18n.Arabic),
		cache.InvoiceViewKey(invoice.ID, i18n.English),
		cache.ClientReportKey(invoice.ClientID),
	)
}

// view builds the denormalized read model for lang
func (s *InvoiceService) view(invoice *models.Invoice, lang string) *InvoiceView {
	v := &InvoiceView{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		InvoiceDate:   invoice.InvoiceDate,
		Status:        invoice.Status,
		StatusLabel:   s.deps.label(lang, "invoice_status", string(invoice.Status)),
		Notes:         invoice.Notes,
		Totals:        invoiceTotals(invoice),
		Services:      []ServiceLineView{},
	}
	if c := invoice.Client; c != nil {
		v.Client = s.deps.clientBrief(c, lang)
	}
	if o := invoice.Order; o != nil {
		v.Order = &OrderBrief{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			Status:      o.Status,
			StatusLabel: s.deps.label(lang, "order_status", string(o.Status)),
			CarDetails:  o.CarDetails,
		}
		if o.CarSize != "" {
			v.Order.CarSizeLabel = s.deps.label(lang, "car_size", string(o.CarSize))
		}
		for _, svc := range o.Services {
			v.Services = append(v.Services, s.deps.serviceLineView(svc, lang))
		}
	}
	return v
}

func (d *Dependencies) clientBrief(c *models.Client, lang string) *ClientBrief {
	return &ClientBrief{
		ID:           c.ID,
		ClientNumber: c.ClientNumber,
		FullName:     c.FullName(),
		Phone:        c.Phone,
		Email:        c.Email,
		BranchLabel:  d.label(lang, "client_branch", string(c.Branch)),
	}
}

func (d *Dependencies) serviceLineView(svc models.OrderService, lang string) ServiceLineView {
	line := ServiceLineView{
		ID:               svc.ID,
		ServiceType:      svc.ServiceType,
		ServiceTypeLabel: d.label(lang, "service_type", string(svc.ServiceType)),
		DealDetails:      svc.DealDetails,
		ServicePrice:     svc.Price,
		Details:          svc.Variant(),
	}
	if g := svc.Guarantee; g != nil {
		line.Guarantee = &GuaranteeView{
			ID:            g.ID,
			TypeGuarantee: g.TypeGuarantee,
			StartDate:     formatDate(g.StartDate, lang),
			EndDate:       formatDate(g.EndDate, lang),
			Status:        g.Status,
			StatusLabel:   d.label(lang, "guarantee_status", string(g.Status)),
			Accepted:      g.Accepted,
			Terms:         g.Terms,
		}
	}
	return line
}

// formatDate renders a calendar date the way each locale writes it
func formatDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	if lang == i18n.English {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("02/01/2006")
}

func logSideEffect(err error, msg string) {
	if err != nil {
		log.Warn().Err(err).Msg(msg)
	}
}
