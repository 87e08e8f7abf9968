package models

import "gorm.io/gorm"

// WorkOrderStatus represents the progress of a work order
type WorkOrderStatus string

const (
	WorkOrderStatusNew        WorkOrderStatus = "new"
	WorkOrderStatusAssigned   WorkOrderStatus = "assigned"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusCompleted  WorkOrderStatus = "completed"
	WorkOrderStatusCancelled  WorkOrderStatus = "cancelled"
)

// WorkOrder dispatches an order to up to three employees
type WorkOrder struct {
	Base
	OrderID             string          `json:"orderId" gorm:"type:uuid;not null;index"`
	Order               *Order          `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	ClientID            string          `json:"clientId" gorm:"type:uuid;not null;index"`
	Client              *Client         `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	AssignedToEmployee1 *string         `json:"assignedToEmployee1,omitempty" gorm:"type:uuid;index"`
	AssignedToEmployee2 *string         `json:"assignedToEmployee2,omitempty" gorm:"type:uuid;index"`
	AssignedToEmployee3 *string         `json:"assignedToEmployee3,omitempty" gorm:"type:uuid;index"`
	Status              WorkOrderStatus `json:"status" gorm:"size:20;not null;index"`
	StatusHistory       StatusHistory   `json:"statusHistory"`
	Notes               string          `json:"notes,omitempty"`

	StatusChangedBy string `json:"-" gorm:"-"`
	// ForceStatusEntry appends a history entry on the next save even if the status is unchanged
	ForceStatusEntry bool `json:"-" gorm:"-"`
}

// BeforeSave appends to the status history whenever the status moves or an entry is forced
func (w *WorkOrder) BeforeSave(tx *gorm.DB) error {
	if w.Status == "" {
		w.Status = WorkOrderStatusNew
	}
	w.StatusHistory = appendStatusChange(w.StatusHistory, string(w.Status), w.StatusChangedBy, w.ForceStatusEntry)
	w.ForceStatusEntry = false
	return nil
}

// IsFinal reports whether the work order can no longer change
func (w *WorkOrder) IsFinal() bool {
	return w.Status == WorkOrderStatusCompleted || w.Status == WorkOrderStatusCancelled
}

// EmployeeIDs returns the assigned employee ids in slot order
func (w *WorkOrder) EmployeeIDs() []string {
	ids := make([]string, 0, 3)
	for _, id := range []*string{w.AssignedToEmployee1, w.AssignedToEmployee2, w.AssignedToEmployee3} {
		if id != nil && *id != "" {
			ids = append(ids, *id)
		}
	}
	return ids
}

// SetEmployees fills the three slots from ids, clearing unused ones
func (w *WorkOrder) SetEmployees(ids []string) {
	slots := []**string{&w.AssignedToEmployee1, &w.AssignedToEmployee2, &w.AssignedToEmployee3}
	for i, slot := range slots {
		if i < len(ids) {
			id := ids[i]
			*slot = &id
		} else {
			*slot = nil
		}
	}
}
