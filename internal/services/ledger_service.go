package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/livrocaixa/backend/internal/audit"
	"github.com/livrocaixa/backend/internal/config"
	"github.com/livrocaixa/backend/internal/logger"
	"github.com/livrocaixa/backend/internal/models"
)

// PostingRequest is a validated posting. Both accounts must belong to
// WorkspaceID; UserID is recorded as the author.
type PostingRequest struct {
	Date            string
	Description     string
	DebitAccountID  string
	CreditAccountID string
	AmountCents     int64
	IdempotencyKey  string
	WorkspaceID     string
	UserID          string
}

// PostingForm is the raw posting as typed by the user.
type PostingForm struct {
	Date            string
	Description     string
	DebitAccountID  string
	CreditAccountID string
	Amount          string
	IdempotencyKey  string
	UserID          string
}

type DoubleLedgerService struct {
	db          *sql.DB
	normalizer  *AmountNormalizer
	strategy    string
	placeholder string
	maxDesc     int
	idempotency *IdempotencyGuard
	audit       *audit.Logger
}

func NewDoubleLedgerService(db *sql.DB, rdb *redis.Client, cfg *config.LedgerConfig, auditLog *audit.Logger) *DoubleLedgerService {
	return &DoubleLedgerService{
		db:          db,
		normalizer:  NewAmountNormalizer(cfg.CurrencyMarkers),
		strategy:    cfg.PostingStrategy,
		placeholder: cfg.PlaceholderDescription,
		maxDesc:     cfg.MaxDescriptionLength,
		idempotency: NewIdempotencyGuard(rdb, cfg.IdempotencyTTL),
		audit:       auditLog,
	}
}

// PreparePosting normalizes the typed amount and validates the form. It never
// touches the store, so a rejected form costs nothing but the returned error.
// The caller fills in WorkspaceID before posting.
func (s *DoubleLedgerService) PreparePosting(ctx context.Context, form PostingForm) (PostingRequest, error) {
	in := PostingInput{
		Date:            form.Date,
		Description:     form.Description,
		DebitAccountID:  form.DebitAccountID,
		CreditAccountID: form.CreditAccountID,
	}
	if cents, ok := s.normalizer.Normalize(form.Amount); ok {
		in.AmountCents = &cents
	}

	if err := ValidatePosting(in); err != nil {
		log := logger.FromContext(ctx)
		log.Debug().Str("kind", string(KindOf(err))).Msg("posting rejected by validation")
		return PostingRequest{}, err
	}

	return PostingRequest{
		Date:            strings.TrimSpace(in.Date),
		Description:     in.Description,
		DebitAccountID:  strings.TrimSpace(in.DebitAccountID),
		CreditAccountID: strings.TrimSpace(in.CreditAccountID),
		AmountCents:     *in.AmountCents,
		IdempotencyKey:  form.IdempotencyKey,
		UserID:          form.UserID,
	}, nil
}

// PostTransaction writes one transaction header and its DEBIT and CREDIT legs
// as a single atomic unit and returns the new transaction id.
//
// Nothing is retried. A failed call leaves no partial data, but when the store
// stops answering mid-call the posting may still have committed.
func (s *DoubleLedgerService) PostTransaction(ctx context.Context, req PostingRequest) (string, error) {
	if req.AmountCents <= 0 {
		return "", newLedgerError(KindInvalidAmount, nil)
	}
	if req.WorkspaceID == "" {
		return "", newLedgerError(KindUnauthenticated, nil)
	}
	req.Description = s.describe(req.Description)

	entries := BuildEntries("", req.DebitAccountID, req.CreditAccountID, req.AmountCents)
	if err := CheckBalanced(entries); err != nil {
		return "", newLedgerError(KindInvalidAmount, err)
	}

	existingID, claimed, err := s.idempotency.Claim(ctx, req.UserID, req.IdempotencyKey)
	if err != nil {
		return "", err
	}
	if existingID != "" {
		return existingID, nil
	}

	var txID string
	if s.strategy == config.StrategyTx {
		txID, err = s.postInTx(ctx, req)
	} else {
		txID, err = s.postViaRPC(ctx, req)
	}

	log := logger.FromContext(ctx)
	if err != nil {
		lerr := ClassifyStoreError(err)
		if claimed && outcomeKnown(err) {
			s.idempotency.Release(ctx, req.UserID, req.IdempotencyKey)
		}
		log.Error().Err(err).Str("kind", string(lerr.Kind)).Str("strategy", s.strategy).Msg("posting failed")
		s.audit.LogPostingFailure(req.UserID, string(lerr.Kind), req.AmountCents, err)
		return "", lerr
	}

	if claimed {
		s.idempotency.Complete(ctx, req.UserID, req.IdempotencyKey, txID)
	}
	log.Info().Str("txId", txID).Int64("amountCents", req.AmountCents).Msg("transaction posted")
	s.audit.LogPosting(txID, req.UserID, req.DebitAccountID, req.CreditAccountID, req.AmountCents)
	return txID, nil
}

// An abandoned call may have committed on the store side, so its claim is kept
// until it expires instead of inviting a duplicate.
func outcomeKnown(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (s *DoubleLedgerService) describe(description string) string {
	d := strings.TrimSpace(description)
	if d == "" {
		return s.placeholder
	}
	if r := []rune(d); s.maxDesc > 0 && len(r) > s.maxDesc {
		d = string(r[:s.maxDesc])
	}
	return d
}

// postViaRPC hands the whole posting to create_manual_transaction. The
// procedure reads the caller's workspace and user from transaction-local
// settings, so both are set in the same store transaction as the call.
func (s *DoubleLedgerService) postViaRPC(ctx context.Context, req PostingRequest) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`SELECT set_config('ledger.workspace_id', $1, true), set_config('ledger.user_id', $2, true)`,
		req.WorkspaceID, req.UserID); err != nil {
		return "", err
	}

	var txID string
	err = tx.QueryRowContext(ctx,
		`SELECT create_manual_transaction($1, $2, $3, $4, $5)`,
		req.Date, req.Description, req.DebitAccountID, req.CreditAccountID, req.AmountCents,
	).Scan(&txID)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return txID, nil
}

func (s *DoubleLedgerService) postInTx(ctx context.Context, req PostingRequest) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if err := s.lockPostableAccounts(ctx, tx, req.WorkspaceID, req.DebitAccountID, req.CreditAccountID); err != nil {
		return "", err
	}

	var txID string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO transactions (workspace_id, txn_date, description, source, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		req.WorkspaceID, req.Date, req.Description, models.SourceManual, req.UserID).Scan(&txID)
	if err != nil {
		return "", err
	}

	entries := BuildEntries(txID, req.DebitAccountID, req.CreditAccountID, req.AmountCents)
	if err := s.createEntries(ctx, tx, entries); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return txID, nil
}

// lockPostableAccounts holds both accounts for the rest of the transaction so
// they cannot be deactivated underneath the posting. An account of another
// workspace is not found.
func (s *DoubleLedgerService) lockPostableAccounts(ctx context.Context, tx *sql.Tx, workspaceID, debitAccountID, creditAccountID string) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT id FROM accounts
		WHERE id IN ($1, $2) AND workspace_id = $3 AND is_active AND is_postable
		FOR SHARE`, debitAccountID, creditAccountID, workspaceID)
	if err != nil {
		return err
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		found++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if found != 2 {
		return newLedgerError(KindReferentialIntegrity, fmt.Errorf("expected 2 postable accounts, found %d", found))
	}
	return nil
}

func (s *DoubleLedgerService) createEntries(ctx context.Context, tx *sql.Tx, entries []models.Entry) error {
	if err := CheckBalanced(entries); err != nil {
		return err
	}

	placeholders := make([]string, 0, len(entries))
	args := make([]any, 0, len(entries)*4)
	for i, e := range entries {
		n := i * 4
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
		args = append(args, e.TransactionID, e.AccountID, string(e.Side), e.AmountCents)
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO entries (transaction_id, account_id, side, amount_cents) VALUES `+strings.Join(placeholders, ", "),
		args...)
	return err
}

// GetTransaction loads a posted transaction of workspaceID with its entries.
func (s *DoubleLedgerService) GetTransaction(ctx context.Context, workspaceID, id string) (*models.Transaction, error) {
	var t models.Transaction
	var createdBy sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, to_char(txn_date, 'YYYY-MM-DD'), description, source, created_by, created_at
		FROM transactions
		WHERE id = $1 AND workspace_id = $2`, id, workspaceID).Scan(&t.ID, &t.TxnDate, &t.Description, &t.Source, &createdBy, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, newLedgerError(KindNotFound, err)
	}
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	t.CreatedBy = createdBy.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, transaction_id, account_id, side, amount_cents, created_at
		FROM entries
		WHERE transaction_id = $1
		ORDER BY side DESC`, id)
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Entry
		var side string
		if err := rows.Scan(&e.ID, &e.TransactionID, &e.AccountID, &side, &e.AmountCents, &e.CreatedAt); err != nil {
			return nil, ClassifyStoreError(err)
		}
		e.Side = models.Side(side)
		t.Entries = append(t.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, ClassifyStoreError(err)
	}
	return &t, nil
}

// BuildEntries returns the two legs of a manual posting, debit first.
func BuildEntries(transactionID, debitAccountID, creditAccountID string, amountCents int64) []models.Entry {
	return []models.Entry{
		{TransactionID: transactionID, AccountID: debitAccountID, Side: models.SideDebit, AmountCents: amountCents},
		{TransactionID: transactionID, AccountID: creditAccountID, Side: models.SideCredit, AmountCents: amountCents},
	}
}

// CheckBalanced verifies that debits equal credits and every amount is positive.
func CheckBalanced(entries []models.Entry) error {
	var debits, credits int64
	for _, e := range entries {
		if e.AmountCents <= 0 {
			return fmt.Errorf("entry on account %s has non-positive amount %d", e.AccountID, e.AmountCents)
		}
		switch e.Side {
		case models.SideDebit:
			debits += e.AmountCents
		case models.SideCredit:
			credits += e.AmountCents
		default:
			return fmt.Errorf("unknown side %q", e.Side)
		}
	}
	if debits == 0 || debits != credits {
		return fmt.Errorf("unbalanced entries: debits=%d credits=%d", debits, credits)
	}
	return nil
}
