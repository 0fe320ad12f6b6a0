package models

import (
	"time"
)

// Side is the direction of an entry.
type Side string

const (
	SideDebit  Side = "DEBIT"
	SideCredit Side = "CREDIT"
)

// SourceManual tags transactions posted by hand from the ledger form.
const SourceManual = "manual"

// Transaction is the header of a balanced posting.
type Transaction struct {
	ID          string    `json:"id" db:"id"`
	TxnDate     string    `json:"date" db:"txn_date"` // YYYY-MM-DD
	Description string    `json:"description" db:"description"`
	Source      string    `json:"source" db:"source"`
	CreatedBy   string    `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	Entries     []Entry   `json:"entries,omitempty"`
}

// Entry is one leg of a transaction. AmountCents is always positive; the
// direction lives in Side.
type Entry struct {
	ID            string    `json:"id,omitempty" db:"id"`
	TransactionID string    `json:"transactionId" db:"transaction_id"`
	AccountID     string    `json:"accountId" db:"account_id"`
	Side          Side      `json:"side" db:"side"`
	AmountCents   int64     `json:"amountCents" db:"amount_cents"` // in cents
	CreatedAt     time.Time `json:"createdAt,omitempty" db:"created_at"`
}
