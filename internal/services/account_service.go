package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/livrocaixa/backend/internal/audit"
	"github.com/livrocaixa/backend/internal/logger"
	"github.com/livrocaixa/backend/internal/models"
)

// AddMode places a new account relative to a target account.
type AddMode string

const (
	AddChild   AddMode = "child"
	AddSibling AddMode = "sibling"
)

// Shown when an account that already has entries is deleted.
const deleteReferencedMessage = "Esta conta já foi usada em lançamentos. Não pode excluir, desative a conta."

const accountColumns = `id, workspace_id, parent_id, code, name, category, account_type, is_active, is_postable, created_by, created_at`

type CreateAccountRequest struct {
	WorkspaceID string
	CreatedBy   string
	TargetID    string // empty creates a root account
	Mode        AddMode
	Code        string
	Name        string
	Category    models.Category
	AccountType models.AccountType
	Postable    bool
}

type AccountService struct {
	db    *sql.DB
	audit *audit.Logger
}

func NewAccountService(db *sql.DB, auditLog *audit.Logger) *AccountService {
	return &AccountService{db: db, audit: auditLog}
}

// EnsureWorkspace returns the user's workspace id, seeding the default chart
// the first time the user shows up.
func (s *AccountService) EnsureWorkspace(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", newLedgerError(KindUnauthenticated, nil)
	}
	var workspaceID string
	if err := s.db.QueryRowContext(ctx, `SELECT seed_default_chart($1)`, userID).Scan(&workspaceID); err != nil {
		return "", ClassifyStoreError(err)
	}
	return workspaceID, nil
}

// ListAccounts returns the whole chart ordered by code then name.
func (s *AccountService) ListAccounts(ctx context.Context, workspaceID string) ([]models.Account, error) {
	return s.queryAccounts(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE workspace_id = $1
		ORDER BY code ASC, name ASC`, workspaceID)
}

// ListPostableAccounts returns the accounts a posting may use: active and
// postable, ordered by code then name.
func (s *AccountService) ListPostableAccounts(ctx context.Context, workspaceID string) ([]models.Account, error) {
	return s.queryAccounts(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE workspace_id = $1 AND is_active AND is_postable
		ORDER BY code ASC, name ASC`, workspaceID)
}

func (s *AccountService) queryAccounts(ctx context.Context, query string, args ...any) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, ClassifyStoreError(err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, ClassifyStoreError(err)
	}
	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var a models.Account
	var parentID, code, createdBy sql.NullString
	var category, accountType string
	err := row.Scan(&a.ID, &a.WorkspaceID, &parentID, &code, &a.Name, &category, &accountType,
		&a.IsActive, &a.IsPostable, &createdBy, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		a.ParentID = &parentID.String
	}
	if code.Valid {
		a.Code = &code.String
	}
	a.Category = models.Category(category)
	a.AccountType = models.AccountType(accountType)
	a.CreatedBy = createdBy.String
	return &a, nil
}

// CreateAccount adds an account as a child of the target, as its sibling
// (same parent), or at the root when no target is given.
func (s *AccountService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*models.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &LedgerError{Kind: KindInvalidAccountRequest, Message: "Informe o nome da conta."}
	}
	if req.AccountType == "" {
		req.AccountType = models.AccountTypeGeneral
	}

	var parentID sql.NullString
	if req.TargetID != "" {
		var targetParent sql.NullString
		err := s.db.QueryRowContext(ctx,
			`SELECT parent_id FROM accounts WHERE id = $1 AND workspace_id = $2`,
			req.TargetID, req.WorkspaceID).Scan(&targetParent)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &LedgerError{Kind: KindNotFound, Message: "Conta alvo não encontrada.", Err: err}
		}
		if err != nil {
			return nil, ClassifyStoreError(err)
		}

		switch req.Mode {
		case AddSibling:
			parentID = targetParent
		default:
			parentID = sql.NullString{String: req.TargetID, Valid: true}
		}
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (workspace_id, parent_id, code, name, category, account_type, is_active, is_postable, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, true, $7, $8)
		RETURNING `+accountColumns,
		req.WorkspaceID, parentID, nullableString(req.Code), name,
		string(req.Category), string(req.AccountType), req.Postable, req.CreatedBy)
	account, err := scanAccount(row)
	if err != nil {
		return nil, ClassifyStoreError(err)
	}

	s.audit.LogAccountChange("CREATE", account.ID, req.CreatedBy, account.Label())
	return account, nil
}

// UpdateAccount renames and recodes an account. A blank code clears it.
func (s *AccountService) UpdateAccount(ctx context.Context, workspaceID, accountID, userID, name, code string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &LedgerError{Kind: KindInvalidAccountRequest, Message: "Nome não pode ficar vazio."}
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET name = $1, code = $2
		WHERE id = $3 AND workspace_id = $4`,
		name, nullableString(code), accountID, workspaceID)
	if err := requireOneRow(result, err); err != nil {
		return err
	}

	s.audit.LogAccountChange("UPDATE", accountID, userID, name)
	return nil
}

// SetActive toggles whether the account is offered for new postings. Past
// entries are not affected.
func (s *AccountService) SetActive(ctx context.Context, workspaceID, accountID, userID string, active bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET is_active = $1 WHERE id = $2 AND workspace_id = $3`,
		active, accountID, workspaceID)
	if err := requireOneRow(result, err); err != nil {
		return err
	}

	s.audit.LogAccountChange("TOGGLE", accountID, userID, fmt.Sprintf("is_active=%t", active))
	return nil
}

// DeleteAccount removes an account. The store refuses when entries or child
// accounts still reference it.
func (s *AccountService) DeleteAccount(ctx context.Context, workspaceID, accountID, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM accounts WHERE id = $1 AND workspace_id = $2`,
		accountID, workspaceID)
	if err := requireOneRow(result, err); err != nil {
		if KindOf(err) == KindReferentialIntegrity {
			log := logger.FromContext(ctx)
			log.Info().Str("accountId", accountID).Msg("delete refused, account is referenced")
			return &LedgerError{Kind: KindReferentialIntegrity, Message: deleteReferencedMessage, Err: errors.Unwrap(err)}
		}
		return err
	}

	s.audit.LogAccountChange("DELETE", accountID, userID, "deleted")
	return nil
}

func requireOneRow(result sql.Result, err error) error {
	if err != nil {
		return ClassifyStoreError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return ClassifyStoreError(err)
	}
	if n == 0 {
		return newLedgerError(KindNotFound, nil)
	}
	return nil
}

func nullableString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
