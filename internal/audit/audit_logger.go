package audit

import (
	"time"

	"github.com/rs/zerolog"
)

type Event struct {
	Timestamp     time.Time `json:"timestamp"`
	EventType     string    `json:"event_type"`
	TransactionID string    `json:"transaction_id,omitempty"`
	AccountID     string    `json:"account_id,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	Amount        int64     `json:"amount,omitempty"`
	Status        string    `json:"status"`
	Details       any       `json:"details,omitempty"`
}

type Logger struct {
	log zerolog.Logger
}

func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "audit").Logger()}
}

// LogPosting records a committed transaction with both legs.
func (a *Logger) LogPosting(transactionID, userID, debitAccount, creditAccount string, amountCents int64) {
	a.emit(Event{
		Timestamp:     time.Now(),
		EventType:     "POSTING",
		TransactionID: transactionID,
		UserID:        userID,
		Amount:        amountCents,
		Status:        "SUCCESS",
		Details: map[string]string{
			"debit_account":  debitAccount,
			"credit_account": creditAccount,
		},
	})
}

func (a *Logger) LogPostingFailure(userID, kind string, amountCents int64, err error) {
	a.emit(Event{
		Timestamp: time.Now(),
		EventType: "POSTING_FAILED",
		UserID:    userID,
		Amount:    amountCents,
		Status:    "FAILED",
		Details:   map[string]string{"kind": kind, "error": err.Error()},
	})
}

// LogAccountChange records a chart-of-accounts mutation (create, update, toggle, delete).
func (a *Logger) LogAccountChange(operation, accountID, userID, details string) {
	a.emit(Event{
		Timestamp: time.Now(),
		EventType: "ACCOUNT_" + operation,
		AccountID: accountID,
		UserID:    userID,
		Status:    "SUCCESS",
		Details:   map[string]string{"details": details},
	})
}

func (a *Logger) emit(event Event) {
	a.log.Info().
		Str("event_type", event.EventType).
		Str("status", event.Status).
		Interface("audit", event).
		Msg("AUDIT")
}
