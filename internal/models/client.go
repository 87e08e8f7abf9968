package models

import "strings"

// ClientType distinguishes individual and corporate clients
type ClientType string

const (
	ClientTypeIndividual ClientType = "individual"
	ClientTypeCompany    ClientType = "company"
	ClientTypeMarketer   ClientType = "marketer"
)

// ClientBranch is the branch a client is registered with
type ClientBranch string

const (
	ClientBranchAbhur   ClientBranch = "abhur"
	ClientBranchMadinah ClientBranch = "madinah"
	ClientBranchOther   ClientBranch = "other"
)

// Client represents a customer of the business
type Client struct {
	Base
	ClientNumber string       `json:"clientNumber" gorm:"size:32;uniqueIndex"`
	FirstName    string       `json:"firstName" gorm:"size:100;not null"`
	SecondName   string       `json:"secondName" gorm:"size:100;not null"`
	ThirdName    string       `json:"thirdName" gorm:"size:100;not null"`
	LastName     string       `json:"lastName" gorm:"size:100;not null"`
	Email        string       `json:"email,omitempty" gorm:"size:255;index"`
	Phone        string       `json:"phone" gorm:"size:20;index"`
	SecondPhone  string       `json:"secondPhone,omitempty" gorm:"size:20;index"`
	ClientType   ClientType   `json:"clientType,omitempty" gorm:"size:20"`
	Company      string       `json:"company,omitempty" gorm:"size:255"`
	Branch       ClientBranch `json:"branch" gorm:"size:20;not null;index"`
	Address      string       `json:"address,omitempty"`
	Rating       *int         `json:"rating,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Orders       []Order      `json:"orders,omitempty" gorm:"foreignKey:ClientID"`
}

// FullName joins the four name parts
func (c *Client) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{c.FirstName, c.SecondName, c.ThirdName, c.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
