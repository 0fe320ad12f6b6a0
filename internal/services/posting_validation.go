package services

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// PostingInput is the posting form after amount normalization. AmountCents is
// nil when the typed amount did not normalize.
type PostingInput struct {
	Date            string
	Description     string
	DebitAccountID  string
	CreditAccountID string
	AmountCents     *int64
}

// ValidatePosting checks the form in a fixed order and reports only the first
// rule that fails:
//
//	date, debit account, credit account, distinct accounts, positive amount.
//
// Account activity and postability are not checked here; the selectable list
// is already restricted and the store re-checks on write.
func ValidatePosting(in PostingInput) error {
	if !validDate(in.Date) {
		return newLedgerError(KindMissingDate, nil)
	}
	debit := strings.TrimSpace(in.DebitAccountID)
	if debit == "" {
		return newLedgerError(KindMissingDebitAccount, nil)
	}
	credit := strings.TrimSpace(in.CreditAccountID)
	if credit == "" {
		return newLedgerError(KindMissingCreditAccount, nil)
	}
	if debit == credit {
		return newLedgerError(KindSameAccount, nil)
	}
	if in.AmountCents == nil || *in.AmountCents <= 0 {
		return newLedgerError(KindInvalidAmount, nil)
	}
	return nil
}

// A date that does not parse as YYYY-MM-DD is as unusable as an absent one.
func validDate(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
