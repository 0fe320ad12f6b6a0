package models

import (
	"time"
)

// Category is the top-level classification of an account in the chart.
type Category string

const (
	CategoryAsset     Category = "ASSET"
	CategoryLiability Category = "LIABILITY"
	CategoryEquity    Category = "EQUITY"
	CategoryIncome    Category = "INCOME"
	CategoryExpense   Category = "EXPENSE"
)

// AccountType refines an account beyond its category.
type AccountType string

const (
	AccountTypeGeneral    AccountType = "GENERAL"
	AccountTypeCash       AccountType = "CASH"
	AccountTypeBank       AccountType = "BANK"
	AccountTypeCreditCard AccountType = "CREDIT_CARD"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeInvestment AccountType = "INVESTMENT"
	AccountTypePayable    AccountType = "PAYABLE"
	AccountTypeReceivable AccountType = "RECEIVABLE"
)

// Account is a node in a workspace's chart of accounts.
// Only active, postable accounts may be chosen as a leg of a posting.
type Account struct {
	ID          string      `json:"id" db:"id"`
	WorkspaceID string      `json:"workspaceId" db:"workspace_id"`
	ParentID    *string     `json:"parentId,omitempty" db:"parent_id"`
	Code        *string     `json:"code,omitempty" db:"code"`
	Name        string      `json:"name" db:"name"`
	Category    Category    `json:"category" db:"category"`
	AccountType AccountType `json:"accountType" db:"account_type"`
	IsActive    bool        `json:"isActive" db:"is_active"`
	IsPostable  bool        `json:"isPostable" db:"is_postable"`
	CreatedBy   string      `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}

// Label renders the account the way selection lists show it, "code · name".
func (a Account) Label() string {
	if a.Code != nil && *a.Code != "" {
		return *a.Code + " · " + a.Name
	}
	return a.Name
}

// Selectable reports whether the account can receive entries.
func (a Account) Selectable() bool {
	return a.IsActive && a.IsPostable
}
