package services

import "github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID    string
	Role      models.Role
	BranchIDs []string
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanAccess reports whether the actor may act on a record owned by ownerID
func (a Actor) CanAccess(ownerID string) bool {
	return a.IsAdmin() || (a.UserID != "" && a.UserID == ownerID)
}

var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusNew:         {models.OrderStatusInProgress, models.OrderStatusMaintenance, models.OrderStatusCancelled},
	models.OrderStatusInProgress:  {models.OrderStatusMaintenance, models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusMaintenance: {models.OrderStatusInProgress, models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusCompleted:   {models.OrderStatusDelivered, models.OrderStatusMaintenance},
	models.OrderStatusDelivered:   {models.OrderStatusMaintenance},
	models.OrderStatusCancelled:   nil,
}

var invoiceTransitions = map[models.InvoiceStatus][]models.InvoiceStatus{
	models.InvoiceStatusOpen:     {models.InvoiceStatusPending},
	models.InvoiceStatusPending:  {models.InvoiceStatusApproved, models.InvoiceStatusRejected},
	models.InvoiceStatusApproved: nil,
	models.InvoiceStatusRejected: nil,
}

var workOrderTransitions = map[models.WorkOrderStatus][]models.WorkOrderStatus{
	models.WorkOrderStatusNew:        {models.WorkOrderStatusAssigned, models.WorkOrderStatusCancelled},
	models.WorkOrderStatusAssigned:   {models.WorkOrderStatusInProgress, models.WorkOrderStatusCancelled},
	models.WorkOrderStatusInProgress: {models.WorkOrderStatusCompleted, models.WorkOrderStatusCancelled},
	models.WorkOrderStatusCompleted:  nil,
	models.WorkOrderStatusCancelled:  nil,
}

// allowed reports whether table permits from -> to. Staying put is always allowed.
func allowed[S comparable](table map[S][]S, from, to S) bool {
	if from == to {
		return true
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s models.OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}
