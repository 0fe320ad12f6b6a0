package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/lib/pq"
)

// ErrorKind classifies every failure the ledger surfaces to callers.
type ErrorKind string

const (
	KindMissingDate           ErrorKind = "MISSING_DATE"
	KindMissingDebitAccount   ErrorKind = "MISSING_DEBIT_ACCOUNT"
	KindMissingCreditAccount  ErrorKind = "MISSING_CREDIT_ACCOUNT"
	KindSameAccount           ErrorKind = "SAME_ACCOUNT"
	KindInvalidAmount         ErrorKind = "INVALID_AMOUNT"
	KindReferentialIntegrity  ErrorKind = "REFERENTIAL_INTEGRITY_VIOLATION"
	KindStoreUnavailable      ErrorKind = "STORE_UNAVAILABLE"
	KindTransientFailure      ErrorKind = "TRANSIENT_FAILURE"
	KindUnauthenticated       ErrorKind = "UNAUTHENTICATED"
	KindDuplicateSubmission   ErrorKind = "DUPLICATE_SUBMISSION"
	KindNotFound              ErrorKind = "NOT_FOUND"
	KindInvalidAccountRequest ErrorKind = "INVALID_ACCOUNT_REQUEST"
)

var userMessages = map[ErrorKind]string{
	KindMissingDate:           "Informe a data do lançamento.",
	KindMissingDebitAccount:   "Selecione a conta de débito.",
	KindMissingCreditAccount:  "Selecione a conta de crédito.",
	KindSameAccount:           "Débito e crédito não podem ser a mesma conta.",
	KindInvalidAmount:         "Valor inválido.",
	KindReferentialIntegrity:  "Conta inexistente, inativa ou não lançável.",
	KindStoreUnavailable:      "Serviço indisponível. Tente novamente.",
	KindTransientFailure:      "Não foi possível salvar. Tente novamente.",
	KindUnauthenticated:       "Sessão expirada. Faça login novamente.",
	KindDuplicateSubmission:   "Este lançamento já está sendo processado.",
	KindNotFound:              "Registro não encontrado.",
	KindInvalidAccountRequest: "Dados da conta inválidos.",
}

// UserMessage returns the short message shown to the end user for kind.
func UserMessage(kind ErrorKind) string {
	if msg, ok := userMessages[kind]; ok {
		return msg
	}
	return userMessages[KindTransientFailure]
}

// LedgerError carries a classified failure. Err is the underlying cause, if any.
type LedgerError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *LedgerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

func newLedgerError(kind ErrorKind, err error) *LedgerError {
	return &LedgerError{Kind: kind, Message: UserMessage(kind), Err: err}
}

// KindOf extracts the classification from err. Unclassified errors are transient.
func KindOf(err error) ErrorKind {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindTransientFailure
}

// IsValidationKind reports whether kind is a local form-validation failure.
func IsValidationKind(kind ErrorKind) bool {
	switch kind {
	case KindMissingDate, KindMissingDebitAccount, KindMissingCreditAccount, KindSameAccount, KindInvalidAmount:
		return true
	}
	return false
}

// ClassifyStoreError maps a store-boundary error onto an ErrorKind using the
// SQLSTATE code, never the message text.
func ClassifyStoreError(err error) *LedgerError {
	if err == nil {
		return nil
	}

	var le *LedgerError
	if errors.As(err, &le) {
		return le
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return newLedgerError(kindForSQLState(string(pqErr.Code)), err)
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return newLedgerError(KindStoreUnavailable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return newLedgerError(KindStoreUnavailable, err)
	}

	return newLedgerError(KindTransientFailure, err)
}

// sqlStateSameAccount is raised by create_manual_transaction when both legs
// reference the same account.
const sqlStateSameAccount = "LD001"

func kindForSQLState(code string) ErrorKind {
	switch code {
	case "23503": // foreign_key_violation
		return KindReferentialIntegrity
	case "23514": // check_violation
		return KindInvalidAmount
	case "22P02": // invalid_text_representation, an account id that is not a uuid
		return KindReferentialIntegrity
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return KindTransientFailure
	case "42501": // insufficient_privilege, row level security denied
		return KindUnauthenticated
	case sqlStateSameAccount:
		return KindSameAccount
	}

	switch {
	case strings.HasPrefix(code, "28"): // invalid_authorization_specification
		return KindUnauthenticated
	case strings.HasPrefix(code, "08"), strings.HasPrefix(code, "53"), strings.HasPrefix(code, "57"):
		return KindStoreUnavailable
	}
	return KindTransientFailure
}
