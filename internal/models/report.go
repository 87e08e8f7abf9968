package models

// ReportStatus tracks the handling of an employee report
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusResolved ReportStatus = "resolved"
)

// EmployeeReport is a report filed by an employee for admins
type EmployeeReport struct {
	Base
	EmployeeID string       `json:"employeeId" gorm:"type:uuid;not null;index"`
	Employee   *User        `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Title      string       `json:"title" gorm:"size:200;not null"`
	Content    string       `json:"content" gorm:"not null"`
	Status     ReportStatus `json:"status" gorm:"size:10;not null;default:pending"`
}
