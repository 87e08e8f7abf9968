package models

import "time"

// TaskStatus is the progress of a branch task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskPriority orders tasks by urgency
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task is a unit of work scoped to a branch
type Task struct {
	Base
	Title          string       `json:"title" gorm:"size:200;not null"`
	Description    string       `json:"description,omitempty"`
	BranchID       string       `json:"branchId" gorm:"type:uuid;not null;index"`
	Branch         *Branch      `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	Status         TaskStatus   `json:"status" gorm:"size:20;not null;default:pending;index"`
	Priority       TaskPriority `json:"priority" gorm:"size:10;not null;default:medium"`
	StartDate      time.Time    `json:"startDate" gorm:"not null"`
	EndDate        *time.Time   `json:"endDate,omitempty"`
	CompletionDate *time.Time   `json:"completionDate,omitempty"`
}
