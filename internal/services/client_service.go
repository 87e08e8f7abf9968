package services

import (
	"context"
	"strings"

	"github.com/newrelic/go-agent/v3/newrelic"
	"golang.org/x/sync/errgroup"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/messaging"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

// Match kinds returned by CheckExists
const (
	MatchNone              = "none"
	MatchPhone             = "phone"
	MatchSecondPhone       = "secondPhone"
	MatchName              = "name"
	MatchBothSameClient    = "both_same_client"
	MatchBothDifferentUser = "both_different_clients"
)

// ClientIdentity is the data used to detect an existing client
type ClientIdentity struct {
	Phone       string `json:"phone" form:"phone"`
	SecondPhone string `json:"secondPhone" form:"secondPhone"`
	FirstName   string `json:"firstName" form:"firstName"`
	SecondName  string `json:"secondName" form:"secondName"`
	ThirdName   string `json:"thirdName" form:"thirdName"`
	LastName    string `json:"lastName" form:"lastName"`
}

func (c ClientIdentity) hasFullName() bool {
	return strings.TrimSpace(c.FirstName) != "" && strings.TrimSpace(c.SecondName) != "" &&
		strings.TrimSpace(c.ThirdName) != "" && strings.TrimSpace(c.LastName) != ""
}

// ExistsResult reports which identity fields matched an existing client
type ExistsResult struct {
	Exists    bool     `json:"exists"`
	Match     string   `json:"match"`
	Message   string   `json:"message"`
	ClientIDs []string `json:"clientIds"`
}

// CreateClientInput registers a client, optionally with a first order
type CreateClientInput struct {
	FirstName   string              `json:"firstName" validate:"required"`
	SecondName  string              `json:"secondName" validate:"required"`
	ThirdName   string              `json:"thirdName" validate:"required"`
	LastName    string              `json:"lastName" validate:"required"`
	Email       string              `json:"email" validate:"omitempty,email"`
	Phone       string              `json:"phone" validate:"required,mobile"`
	SecondPhone string              `json:"secondPhone" validate:"omitempty,mobile"`
	ClientType  models.ClientType   `json:"clientType" validate:"omitempty,oneof=individual company marketer"`
	Company     string              `json:"company"`
	Branch      models.ClientBranch `json:"branch" validate:"required,oneof=abhur madinah other"`
	Address     string              `json:"address"`
	Rating      *int                `json:"rating" validate:"omitempty,min=1,max=5"`
	Notes       string              `json:"notes"`
	CarInput
	Services   []ServiceLineInput `json:"services"`
	OrderNotes string             `json:"orderNotes"`
}

// CreateClientResult is the outcome of CreateClient
type CreateClientResult struct {
	RequiresConfirmation bool            `json:"requiresConfirmation"`
	IsExistingClient     bool            `json:"isExistingClient"`
	Message              string          `json:"message,omitempty"`
	Client               *models.Client  `json:"client"`
	Order                *models.Order   `json:"order,omitempty"`
	Invoice              *models.Invoice `json:"invoice,omitempty"`
}

// UpdateClientInput edits client attributes; nil fields are left alone
type UpdateClientInput struct {
	FirstName   *string              `json:"firstName" validate:"omitempty,min=1"`
	SecondName  *string              `json:"secondName" validate:"omitempty,min=1"`
	ThirdName   *string              `json:"thirdName" validate:"omitempty,min=1"`
	LastName    *string              `json:"lastName" validate:"omitempty,min=1"`
	Email       *string              `json:"email" validate:"omitempty,email"`
	Phone       *string              `json:"phone" validate:"omitempty,mobile"`
	SecondPhone *string              `json:"secondPhone" validate:"omitempty,mobile"`
	ClientType  *models.ClientType   `json:"clientType" validate:"omitempty,oneof=individual company marketer"`
	Company     *string              `json:"company"`
	Branch      *models.ClientBranch `json:"branch" validate:"omitempty,oneof=abhur madinah other"`
	Address     *string              `json:"address"`
	Rating      *int                 `json:"rating" validate:"omitempty,min=1,max=5"`
	Notes       *string              `json:"notes"`
}

// ClientQuery filters and pages the client listing
type ClientQuery struct {
	Branch models.ClientBranch `form:"branch" validate:"omitempty,oneof=abhur madinah other"`
	Search string              `form:"search"`
	SortBy string              `form:"sortBy"`
	Sort   string              `form:"sort"`
	PageQuery
}

// ClientWithStats is a listed client with its order statistics
type ClientWithStats struct {
	models.Client
	OrderStats repositories.ClientOrderStats `json:"orderStats"`
}

// ClientPagination is the paging block of the client listing
type ClientPagination struct {
	TotalClients int64 `json:"totalClients"`
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	NextPage     *int  `json:"nextPage"`
	Limit        int   `json:"limit"`
	Offset       int   `json:"offset"`
}

// ClientPage is one page of clients
type ClientPage struct {
	Clients    []ClientWithStats `json:"clients"`
	Pagination ClientPagination  `json:"pagination"`
}

// ClientDetails is a client with its live orders
type ClientDetails struct {
	*models.Client
	Orders     []models.Order                `json:"orders"`
	OrderStats repositories.ClientOrderStats `json:"orderStats"`
}

// ClientService manages the client registry
type ClientService struct {
	deps   *Dependencies
	orders *OrderService
}

// NewClientService creates a new client service
func NewClientService(deps *Dependencies, orders *OrderService) *ClientService {
	return &ClientService{deps: deps, orders: orders}
}

// CheckExists looks up phone, second phone and full name concurrently
func (s *ClientService) CheckExists(ctx context.Context, identity ClientIdentity, lang string) (*ExistsResult, error) {
	defer newrelic.FromContext(ctx).StartSegment("client-check-exists").End()

	var byPhone, bySecondPhone, byName *models.Client
	g, gctx := errgroup.WithContext(ctx)

	lookup := func(dst **models.Client, find func(context.Context) (*models.Client, error)) {
		g.Go(func() error {
			client, err := find(gctx)
			if err != nil {
				if err = fromRepo(err, i18n.ClientNotFound); IsNotFound(err) {
					return nil
				}
				return err
			}
			*dst = client
			return nil
		})
	}

	if phone := strings.TrimSpace(identity.Phone); phone != "" {
		lookup(&byPhone, func(c context.Context) (*models.Client, error) {
			return s.deps.Store.Clients.FindByPhone(c, phone)
		})
	}
	if phone := strings.TrimSpace(identity.SecondPhone); phone != "" {
		lookup(&bySecondPhone, func(c context.Context) (*models.Client, error) {
			return s.deps.Store.Clients.FindByPhone(c, phone)
		})
	}
	if identity.hasFullName() {
		lookup(&byName, func(c context.Context) (*models.Client, error) {
			return s.deps.Store.Clients.FindByFullName(c,
				strings.TrimSpace(identity.FirstName), strings.TrimSpace(identity.SecondName),
				strings.TrimSpace(identity.ThirdName), strings.TrimSpace(identity.LastName))
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := classifyMatch(byPhone, bySecondPhone, byName)
	result.Message = s.deps.translate(lang, matchMessages[result.Match])
	return result, nil
}

var matchMessages = map[string]string{
	MatchNone:              i18n.ClientNotExists,
	MatchPhone:             i18n.ClientExistsPhone,
	MatchSecondPhone:       i18n.ClientExistsSecondPhone,
	MatchName:              i18n.ClientExistsName,
	MatchBothSameClient:    i18n.ClientExistsBothSame,
	MatchBothDifferentUser: i18n.ClientExistsBothDifferent,
}

func classifyMatch(byPhone, bySecondPhone, byName *models.Client) *ExistsResult {
	phoneMatch := byPhone
	match := MatchPhone
	if phoneMatch == nil && bySecondPhone != nil {
		phoneMatch = bySecondPhone
		match = MatchSecondPhone
	}

	switch {
	case phoneMatch != nil && byName != nil:
		if phoneMatch.ID == byName.ID {
			return &ExistsResult{Exists: true, Match: MatchBothSameClient, ClientIDs: []string{phoneMatch.ID}}
		}
		return &ExistsResult{Exists: true, Match: MatchBothDifferentUser, ClientIDs: []string{phoneMatch.ID, byName.ID}}
	case phoneMatch != nil:
		return &ExistsResult{Exists: true, Match: match, ClientIDs: []string{phoneMatch.ID}}
	case byName != nil:
		return &ExistsResult{Exists: true, Match: MatchName, ClientIDs: []string{byName.ID}}
	}
	return &ExistsResult{Match: MatchNone, ClientIDs: []string{}}
}

func (s *ClientService) checkCreate(input CreateClientInput) error {
	if err := validate(input); err != nil {
		return err
	}
	if len(input.Services) > 0 {
		car := input.Details()
		if car.CarModel == "" || car.CarColor == "" || car.CarPlateNumber == "" {
			return badRequest(i18n.ClientCarDetailsRequired)
		}
	}
	return checkLines(input.Services)
}

// CreateClient registers a client, reusing the one holding the phone number when confirmed.
// A complete set of car attributes also creates an order, and an order with services gets an invoice.
func (s *ClientService) CreateClient(ctx context.Context, actor Actor, input CreateClientInput, confirmExisting bool, lang string) (*CreateClientResult, error) {
	if err := s.checkCreate(input); err != nil {
		return nil, err
	}

	existing, err := s.deps.Store.Clients.FindByPhone(ctx, strings.TrimSpace(input.Phone))
	if err != nil {
		if err = fromRepo(err, i18n.ClientNotFound); !IsNotFound(err) {
			return nil, err
		}
		existing = nil
	}
	if existing != nil && !confirmExisting {
		return &CreateClientResult{
			RequiresConfirmation: true,
			IsExistingClient:     true,
			Message:              s.deps.translate(lang, i18n.ClientConfirmExisting),
			Client:               existing,
		}, nil
	}

	result := &CreateClientResult{IsExistingClient: existing != nil}
	err = s.deps.Store.WithTransaction(ctx, func(tx *repositories.Store) error {
		client := existing
		if client == nil {
			number, err := tx.Sequences.NextNumber(ctx, models.SequenceClient)
			if err != nil {
				return fromRepo(err, i18n.ClientNotFound)
			}
			client = newClient(input, number)
			if err := tx.Clients.Create(ctx, client); err != nil {
				return fromRepo(err, i18n.ClientNotFound)
			}
		}
		result.Client = client

		if !input.CarInput.complete() {
			return nil
		}
		order, invoice, err := s.orders.createInTx(ctx, tx, actor, client.ID, input.Details(), input.Services, input.OrderNotes)
		result.Order, result.Invoice = order, invoice
		return err
	})
	if err != nil {
		return nil, err
	}

	if !result.IsExistingClient {
		s.deps.Metrics.IncrementCounter(metrics.ClientsCreated)
		s.index(ctx, result.Client)
		s.deps.publish(ctx, messaging.ClientCreated, clientEvent(result.Client))
	}
	if result.Order != nil {
		s.orders.afterCreate(ctx, result.Order, result.Invoice)
	}
	return result, nil
}

func newClient(input CreateClientInput, number string) *models.Client {
	clientType := input.ClientType
	if clientType == "" {
		clientType = models.ClientTypeIndividual
	}
	return &models.Client{
		ClientNumber: number,
		FirstName:    strings.TrimSpace(input.FirstName),
		SecondName:   strings.TrimSpace(input.SecondName),
		ThirdName:    strings.TrimSpace(input.ThirdName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		SecondPhone:  strings.TrimSpace(input.SecondPhone),
		ClientType:   clientType,
		Company:      input.Company,
		Branch:       input.Branch,
		Address:      input.Address,
		Rating:       input.Rating,
		Notes:        input.Notes,
	}
}

// UpdateClient edits a client, refusing phone numbers or emails held by another client
func (s *ClientService) UpdateClient(ctx context.Context, id string, input UpdateClientInput) (*models.Client, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	client, err := s.deps.Store.Clients.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.ClientNotFound)
	}

	for _, phone := range []*string{input.Phone, input.SecondPhone} {
		if phone == nil || strings.TrimSpace(*phone) == "" {
			continue
		}
		if taken, err := s.takenBy(ctx, s.deps.Store.Clients.FindOtherByPhone, strings.TrimSpace(*phone), id); err != nil {
			return nil, err
		} else if taken {
			return nil, conflict(i18n.ClientPhoneTaken)
		}
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		if taken, err := s.takenBy(ctx, s.deps.Store.Clients.FindOtherByEmail, strings.TrimSpace(*input.Email), id); err != nil {
			return nil, err
		} else if taken {
			return nil, conflict(i18n.ClientEmailTaken)
		}
	}

	applyClientUpdate(client, input)
	if err := s.deps.Store.Clients.Update(ctx, client); err != nil {
		return nil, fromRepo(err, i18n.ClientNotFound)
	}

	s.index(ctx, client)
	s.deps.publish(ctx, messaging.ClientUpdated, clientEvent(client))
	return client, nil
}

func (s *ClientService) takenBy(ctx context.Context, find func(context.Context, string, string) (*models.Client, error), value, excludeID string) (bool, error) {
	_, err := find(ctx, value, excludeID)
	if err == nil {
		return true, nil
	}
	if err = fromRepo(err, i18n.ClientNotFound); IsNotFound(err) {
		return false, nil
	}
	return false, err
}

func applyClientUpdate(client *models.Client, input UpdateClientInput) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&client.FirstName, input.FirstName)
	set(&client.SecondName, input.SecondName)
	set(&client.ThirdName, input.ThirdName)
	set(&client.LastName, input.LastName)
	set(&client.Email, input.Email)
	set(&client.Phone, input.Phone)
	set(&client.SecondPhone, input.SecondPhone)
	set(&client.Company, input.Company)
	set(&client.Address, input.Address)
	set(&client.Notes, input.Notes)
	if input.ClientType != nil {
		client.ClientType = *input.ClientType
	}
	if input.Branch != nil {
		client.Branch = *input.Branch
	}
	if input.Rating != nil {
		client.Rating = input.Rating
	}
}

// DeleteClient soft deletes a client
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	if err := s.deps.Store.Clients.Delete(ctx, id); err != nil {
		return fromRepo(err, i18n.ClientNotFound)
	}
	if s.deps.Index != nil && s.deps.Index.Enabled() {
		if err := s.deps.Index.DeleteClient(ctx, id); err != nil {
			s.deps.Metrics.IncrementCounter(metrics.SearchIndexingFailed)
			logSideEffect(err, "failed to remove client from search index")
		}
	}
	s.deps.publish(ctx, messaging.ClientDeleted, map[string]string{"id": id})
	return nil
}

// GetClient returns a client by id
func (s *ClientService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.deps.Store.Clients.FindByID(ctx, id)
	return client, fromRepo(err, i18n.ClientNotFound)
}

// GetClientWithOrders returns a client, its live orders newest first and order statistics
func (s *ClientService) GetClientWithOrders(ctx context.Context, id string) (*ClientDetails, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := s.deps.Store.Orders.FindAll(ctx, repositories.OrderFilter{ClientID: id})
	if err != nil {
		return nil, fromRepo(err, i18n.OrderNotFound)
	}
	stats, err := s.deps.Store.Clients.OrderStats(ctx, []string{id}, s.deps.now())
	if err != nil {
		return nil, fromRepo(err, i18n.ClientNotFound)
	}
	for i := range orders {
		orders[i].Client = nil
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return &ClientDetails{Client: client, Orders: orders, OrderStats: stats[id]}, nil
}

const defaultClientPageSize = 10

// ListClients filters, sorts and pages clients and attaches order statistics
func (s *ClientService) ListClients(ctx context.Context, query ClientQuery) (*ClientPage, error) {
	if err := validate(query); err != nil {
		return nil, err
	}
	if query.Limit == 0 {
		query.Limit = defaultClientPageSize
	}
	if query.Limit < 1 || query.Limit > 100 {
		return nil, badRequest(i18n.ClientInvalidLimit)
	}
	if query.Offset < 0 {
		return nil, badRequest(i18n.ClientInvalidOffset)
	}

	clients, total, err := s.deps.Store.Clients.List(ctx, repositories.ClientFilter{
		Branch:   query.Branch,
		Search:   strings.TrimSpace(query.Search),
		SortBy:   query.SortBy,
		SortDesc: !strings.EqualFold(query.Sort, "asc"),
		Page:     repositories.Page{Limit: query.Limit, Offset: query.Offset},
	})
	if err != nil {
		return nil, fromRepo(err, i18n.ClientNotFound)
	}

	ids := make([]string, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
	}
	stats, err := s.deps.Store.Clients.OrderStats(ctx, ids, s.deps.now())
	if err != nil {
		return nil, fromRepo(err, i18n.ClientNotFound)
	}

	page := &ClientPage{Clients: make([]ClientWithStats, len(clients))}
	for i, c := range clients {
		page.Clients[i] = ClientWithStats{Client: c, OrderStats: stats[c.ID]}
	}
	p := paginate(total, query.Limit, query.Offset)
	page.Pagination = ClientPagination{
		TotalClients: p.Total,
		CurrentPage:  p.CurrentPage,
		TotalPages:   p.TotalPages,
		NextPage:     p.NextPage,
		Limit:        p.Limit,
		Offset:       p.Offset,
	}
	return page, nil
}

// SearchClients finds clients through the search index, falling back to the database
func (s *ClientService) SearchClients(ctx context.Context, term string, limit int) ([]models.Client, error) {
	term = strings.TrimSpace(term)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if term == "" {
		return []models.Client{}, nil
	}

	if s.deps.Index != nil && s.deps.Index.Enabled() {
		ids, err := s.deps.Index.SearchClients(ctx, term, limit)
		if err == nil {
			return s.inOrder(ctx, ids)
		}
		logSideEffect(err, "client search index unavailable, falling back to database")
	}

	clients, _, err := s.deps.Store.Clients.List(ctx, repositories.ClientFilter{
		Search:   term,
		SortDesc: true,
		Page:     repositories.Page{Limit: limit},
	})
	return clients, fromRepo(err, i18n.ClientNotFound)
}

func (s *ClientService) inOrder(ctx context.Context, ids []string) ([]models.Client, error) {
	found, err := s.deps.Store.Clients.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fromRepo(err, i18n.ClientNotFound)
	}
	byID := make(map[string]models.Client, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	clients := make([]models.Client, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			clients = append(clients, c)
		}
	}
	return clients, nil
}

// ReindexClient refreshes the search document of a client; deleted clients are removed
func (s *ClientService) ReindexClient(ctx context.Context, id string) error {
	if s.deps.Index == nil || !s.deps.Index.Enabled() {
		return nil
	}
	client, err := s.deps.Store.Clients.FindByID(ctx, id)
	if err != nil {
		if err = fromRepo(err, i18n.ClientNotFound); IsNotFound(err) {
			return s.deps.Index.DeleteClient(ctx, id)
		}
		return err
	}
	return s.deps.Index.IndexClient(ctx, client)
}

func (s *ClientService) index(ctx context.Context, client *models.Client) {
	if s.deps.Index == nil || !s.deps.Index.Enabled() {
		return
	}
	if err := s.deps.Index.IndexClient(ctx, client); err != nil {
		s.deps.Metrics.IncrementCounter(metrics.SearchIndexingFailed)
		logSideEffect(err, "failed to index client")
	}
}

func clientEvent(client *models.Client) map[string]interface{} {
	return map[string]interface{}{
		"id":           client.ID,
		"clientNumber": client.ClientNumber,
		"branch":       client.Branch,
	}
}
