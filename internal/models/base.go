package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Base model fields shared by all soft-deletable entities
type Base struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	Deleted   bool           `json:"isDeleted" gorm:"-"`
}

// BeforeCreate assigns a UUID when the caller did not set one
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// AfterFind exposes the soft delete marker to API consumers
func (b *Base) AfterFind(tx *gorm.DB) error {
	b.Deleted = b.DeletedAt.Valid
	return nil
}

// IsDeleted reports whether the row has been soft deleted
func (b Base) IsDeleted() bool {
	return b.DeletedAt.Valid
}

// StatusChange is one entry of an append-only status history
type StatusChange struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
	ChangedBy string    `json:"changedBy,omitempty"`
}

// StatusHistory is stored as a JSON column
type StatusHistory = datatypes.JSONSlice[StatusChange]

// appendStatusChange records status when it differs from the last recorded entry,
// or unconditionally when force is set
func appendStatusChange(history StatusHistory, status, changedBy string, force bool) StatusHistory {
	if status == "" {
		return history
	}
	if n := len(history); !force && n > 0 && history[n-1].Status == status {
		return history
	}
	return append(history, StatusChange{
		Status:    status,
		ChangedAt: time.Now().UTC(),
		ChangedBy: changedBy,
	})
}
