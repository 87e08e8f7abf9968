package services

import (
	"context"
	"strings"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

const maxAssignedEmployees = 3

// CreateWorkOrderInput dispatches an existing order
type CreateWorkOrderInput struct {
	OrderID     string   `json:"orderId" validate:"required"`
	EmployeeIDs []string `json:"employeeIds" validate:"max=3"`
	Notes       string   `json:"notes"`
}

// UpdateWorkOrderInput edits a work order
type UpdateWorkOrderInput struct {
	Notes *string `json:"notes"`
}

// AssignEmployeesInput replaces the employees of a work order
type AssignEmployeesInput struct {
	EmployeeIDs []string `json:"employeeIds" validate:"max=3"`
}

// WorkOrderQuery filters a work order listing
type WorkOrderQuery struct {
	Status   models.WorkOrderStatus `form:"status"`
	ClientID string                 `form:"clientId"`
	PageQuery
}

// EmployeeBrief is an assigned employee without credentials
type EmployeeBrief struct {
	ID          string      `json:"id"`
	FullName    string      `json:"fullName"`
	EmployeeID  string      `json:"employeeId"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	Role        models.Role `json:"role"`
}

// WorkOrderView is a work order with its assigned employees resolved
type WorkOrderView struct {
	*models.WorkOrder
	AssignedEmployees []EmployeeBrief `json:"assignedEmployees"`
}

// WorkOrderService dispatches orders to employees
type WorkOrderService struct {
	deps *Dependencies
}

// NewWorkOrderService creates a new work order service
func NewWorkOrderService(deps *Dependencies) *WorkOrderService {
	return &WorkOrderService{deps: deps}
}

// normalizeEmployees trims, drops blanks and duplicates, and caps the list
func normalizeEmployees(ids []string) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) > maxAssignedEmployees {
		return nil, badRequest(i18n.WorkOrderTooManyEmployees)
	}
	return out, nil
}

func (s *WorkOrderService) checkEmployees(ctx context.Context, store *repositories.Store, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	users, err := store.Users.FindByIDs(ctx, ids)
	if err != nil {
		return fromRepo(err, i18n.WorkOrderEmployeeNotFound)
	}
	if len(users) != len(ids) {
		return notFound(i18n.WorkOrderEmployeeNotFound)
	}
	return nil
}

// createInTx writes a work order for order inside tx
func (s *WorkOrderService) createInTx(ctx context.Context, tx *repositories.Store, actor Actor, order *models.Order, employeeIDs []string, notes string) (*models.WorkOrder, error) {
	ids, err := normalizeEmployees(employeeIDs)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmployees(ctx, tx, ids); err != nil {
		return nil, err
	}

	workOrder := &models.WorkOrder{
		OrderID:         order.ID,
		ClientID:        order.ClientID,
		Status:          models.WorkOrderStatusNew,
		Notes:           notes,
		StatusChangedBy: actor.UserID,
	}
	workOrder.SetEmployees(ids)
	if len(ids) > 0 {
		workOrder.Status = models.WorkOrderStatusAssigned
	}
	if err := tx.WorkOrders.Create(ctx, workOrder); err != nil {
		return nil, fromRepo(err, i18n.WorkOrderNotFound)
	}
	return workOrder, nil
}

// Create dispatches an existing order
func (s *WorkOrderService) Create(ctx context.Context, actor Actor, input CreateWorkOrderInput) (*WorkOrderView, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	var id string
	err := s.deps.Store.WithTransaction(ctx, func(tx *repositories.Store) error {
		order, err := tx.Orders.FindByID(ctx, input.OrderID)
		if err != nil {
			return fromRepo(err, i18n.OrderNotFound)
		}
		workOrder, err := s.createInTx(ctx, tx, actor, order, input.EmployeeIDs, input.Notes)
		if err != nil {
			return err
		}
		id = workOrder.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id)
}

// FindAll lists work orders by status and client
func (s *WorkOrderService) FindAll(ctx context.Context, query WorkOrderQuery) ([]WorkOrderView, error) {
	return s.list(ctx, repositories.WorkOrderFilter{
		Status:   query.Status,
		ClientID: query.ClientID,
		Page:     repositories.Page{Limit: query.Limit, Offset: query.Offset},
	})
}

// FindByAssignedEmployee lists the work orders an employee is assigned to
func (s *WorkOrderService) FindByAssignedEmployee(ctx context.Context, employeeID string) ([]WorkOrderView, error) {
	return s.list(ctx, repositories.WorkOrderFilter{EmployeeID: employeeID})
}

func (s *WorkOrderService) list(ctx context.Context, filter repositories.WorkOrderFilter) ([]WorkOrderView, error) {
	workOrders, err := s.deps.Store.WorkOrders.FindAll(ctx, filter)
	if err != nil {
		return nil, fromRepo(err, i18n.WorkOrderNotFound)
	}
	return s.views(ctx, workOrders)
}

// FindOne returns a work order by id
func (s *WorkOrderService) FindOne(ctx context.Context, id string) (*WorkOrderView, error) {
	workOrder, err := s.deps.Store.WorkOrders.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.WorkOrderNotFound)
	}
	views, err := s.views(ctx, []models.WorkOrder{*workOrder})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// views resolves assigned employees with a single user lookup
func (s *WorkOrderService) views(ctx context.Context, workOrders []models.WorkOrder) ([]WorkOrderView, error) {
	var ids []string
	for i := range workOrders {
		ids = append(ids, workOrders[i].EmployeeIDs()...)
	}
	byID := map[string]models.User{}
	if len(ids) > 0 {
		users, err := s.deps.Store.Users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fromRepo(err, i18n.UserNotFound)
		}
		for _, u := range users {
			byID[u.ID] = u
		}
	}

	views := make([]WorkOrderView, len(workOrders))
	for i := range workOrders {
		wo := &workOrders[i]
		view := WorkOrderView{WorkOrder: wo, AssignedEmployees: []EmployeeBrief{}}
		for _, id := range wo.EmployeeIDs() {
			if u, ok := byID[id]; ok {
				view.AssignedEmployees = append(view.AssignedEmployees, EmployeeBrief{
					ID:          u.ID,
					FullName:    u.FullName,
					EmployeeID:  u.EmployeeID,
					PhoneNumber: u.PhoneNumber,
					Role:        u.Role,
				})
			}
		}
		views[i] = view
	}
	return views, nil
}

// Update edits the notes of a work order
func (s *WorkOrderService) Update(ctx context.Context, id string, input UpdateWorkOrderInput) (*WorkOrderView, error) {
	workOrder, err := s.deps.Store.WorkOrders.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.WorkOrderNotFound)
	}
	if input.Notes != nil {
		workOrder.Notes = *input.Notes
	}
	if err := s.deps.Store.WorkOrders.Save(ctx, workOrder); err != nil {
		return nil, fromRepo(err, i18n.WorkOrderNotFound)
	}
	return s.FindOne(ctx, id)
}

// Remove soft deletes a work order
func (s *WorkOrderService) Remove(ctx context.Context, id string) error {
	return fromRepo(s.deps.Store.WorkOrders.Delete(ctx, id), i18n.WorkOrderNotFound)
}

// AssignEmployees replaces the assigned employees and marks the work order assigned.
// Any work order that is not completed or cancelled can be (re)assigned and every
// assignment is recorded in the status history.
func (s *WorkOrderService) AssignEmployees(ctx context.Context, actor Actor, id string, input AssignEmployeesInput) (*WorkOrderView, error) {
	ids, err := normalizeEmployees(input.EmployeeIDs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, badRequest(i18n.WorkOrderEmployeesRequired)
	}

	workOrder, err := s.deps.Store.WorkOrders.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.WorkOrderNotFound)
	}
	if workOrder.IsFinal() {
		return nil, badRequest(i18n.WorkOrderInvalidTransition, workOrder.Status, models.WorkOrderStatusAssigned)
	}
	if err := s.checkEmployees(ctx, s.deps.Store, ids); err != nil {
		return nil, err
	}

	workOrder.SetEmployees(ids)
	workOrder.Status = models.WorkOrderStatusAssigned
	workOrder.StatusChangedBy = actor.UserID
	workOrder.ForceStatusEntry = true
	if err := s.deps.Store.WorkOrders.Save(ctx, workOrder); err != nil {
		return nil, fromRepo(err, i18n.WorkOrderNotFound)
	}
	return s.FindOne(ctx, id)
}

// ChangeStatus moves a work order along new, assigned, in_progress and completed
func (s *WorkOrderService) ChangeStatus(ctx context.Context, actor Actor, id string, status models.WorkOrderStatus) (*WorkOrderView, error) {
	status = models.WorkOrderStatus(strings.ToLower(strings.TrimSpace(string(status))))
	workOrder, err := s.deps.Store.WorkOrders.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.WorkOrderNotFound)
	}
	if !allowed(workOrderTransitions, workOrder.Status, status) {
		return nil, badRequest(i18n.WorkOrderInvalidTransition, workOrder.Status, status)
	}

	workOrder.Status = status
	workOrder.StatusChangedBy = actor.UserID
	if err := s.deps.Store.WorkOrders.Save(ctx, workOrder); err != nil {
		return nil, fromRepo(err, i18n.WorkOrderNotFound)
	}
	return s.FindOne(ctx, id)
}
