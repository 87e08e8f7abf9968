package models

// Role is a user's access level
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// UserStatus controls whether a user may sign in
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is a staff account
type User struct {
	Base
	FullName     string     `json:"fullName" gorm:"size:200;not null"`
	EmployeeID   string     `json:"employeeId" gorm:"size:50;not null;uniqueIndex"`
	Email        string     `json:"email,omitempty" gorm:"size:255"`
	PasswordHash string     `json:"-" gorm:"not null"`
	PhoneNumber  string     `json:"phoneNumber,omitempty" gorm:"size:20"`
	Role         Role       `json:"role" gorm:"size:20;not null;default:employee"`
	Status       UserStatus `json:"status" gorm:"size:10;not null;default:active"`
	Branches     []Branch   `json:"branches,omitempty" gorm:"many2many:user_branches"`
}

// BranchIDs returns the ids of the user's branches
func (u *User) BranchIDs() []string {
	ids := make([]string, len(u.Branches))
	for i, b := range u.Branches {
		ids[i] = b.ID
	}
	return ids
}
