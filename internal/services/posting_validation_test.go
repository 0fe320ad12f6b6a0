package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func cents(v int64) *int64 {
	return &v
}

func validInput() PostingInput {
	return PostingInput{
		Date:            "2024-01-15",
		Description:     "Aluguel janeiro",
		DebitAccountID:  "acc-5.1",
		CreditAccountID: "acc-1.1",
		AmountCents:     cents(125000),
	}
}

func TestValidatePosting(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		assert.NoError(t, ValidatePosting(validInput()))
	})

	t.Run("blank description is allowed", func(t *testing.T) {
		in := validInput()
		in.Description = ""
		assert.NoError(t, ValidatePosting(in))
	})

	cases := []struct {
		name   string
		mutate func(*PostingInput)
		want   ErrorKind
	}{
		{"missing date", func(in *PostingInput) { in.Date = "" }, KindMissingDate},
		{"malformed date", func(in *PostingInput) { in.Date = "15/01/2024" }, KindMissingDate},
		{"impossible date", func(in *PostingInput) { in.Date = "2024-02-30" }, KindMissingDate},
		{"missing debit", func(in *PostingInput) { in.DebitAccountID = "" }, KindMissingDebitAccount},
		{"blank debit", func(in *PostingInput) { in.DebitAccountID = "   " }, KindMissingDebitAccount},
		{"missing credit", func(in *PostingInput) { in.CreditAccountID = "" }, KindMissingCreditAccount},
		{"same account", func(in *PostingInput) { in.CreditAccountID = in.DebitAccountID }, KindSameAccount},
		{"same account after trim", func(in *PostingInput) { in.CreditAccountID = " " + in.DebitAccountID }, KindSameAccount},
		{"nil amount", func(in *PostingInput) { in.AmountCents = nil }, KindInvalidAmount},
		{"zero amount", func(in *PostingInput) { in.AmountCents = cents(0) }, KindInvalidAmount},
		{"negative amount", func(in *PostingInput) { in.AmountCents = cents(-1) }, KindInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := ValidatePosting(in)
			assert.Error(t, err)
			assert.Equal(t, tc.want, KindOf(err))
		})
	}
}

func TestValidatePosting_FirstFailureWins(t *testing.T) {
	t.Run("both accounts missing reports debit", func(t *testing.T) {
		in := validInput()
		in.DebitAccountID = ""
		in.CreditAccountID = ""
		assert.Equal(t, KindMissingDebitAccount, KindOf(ValidatePosting(in)))
	})

	t.Run("everything missing reports date", func(t *testing.T) {
		assert.Equal(t, KindMissingDate, KindOf(ValidatePosting(PostingInput{})))
	})

	t.Run("same account and bad amount reports same account", func(t *testing.T) {
		in := validInput()
		in.CreditAccountID = in.DebitAccountID
		in.AmountCents = nil
		assert.Equal(t, KindSameAccount, KindOf(ValidatePosting(in)))
	})

	t.Run("missing credit and bad amount reports credit", func(t *testing.T) {
		in := validInput()
		in.CreditAccountID = ""
		in.AmountCents = cents(0)
		assert.Equal(t, KindMissingCreditAccount, KindOf(ValidatePosting(in)))
	})
}

func TestValidatePosting_SameAccountForAnyID(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("account-%d", i)
		err := ValidatePosting(PostingInput{
			Date:            "2024-01-15",
			DebitAccountID:  id,
			CreditAccountID: id,
			AmountCents:     cents(100),
		})
		assert.Equal(t, KindSameAccount, KindOf(err), id)
	}
}
