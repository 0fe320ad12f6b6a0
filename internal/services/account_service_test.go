package services

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/livrocaixa/backend/internal/audit"
	"github.com/livrocaixa/backend/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountRowColumns = []string{"id", "workspace_id", "parent_id", "code", "name", "category", "account_type", "is_active", "is_postable", "created_by", "created_at"}

func newTestAccounts(t *testing.T) (*AccountService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAccountService(db, audit.NewLogger(zerolog.Nop())), mock
}

func TestAccountService_EnsureWorkspace(t *testing.T) {
	t.Run("seeds on first use", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT seed_default_chart($1)")).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"seed_default_chart"}).AddRow("ws-1"))

		ws, err := service.EnsureWorkspace(context.Background(), "user-1")
		assert.NoError(t, err)
		assert.Equal(t, "ws-1", ws)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no session", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		_, err := service.EnsureWorkspace(context.Background(), "")
		assert.Equal(t, KindUnauthenticated, KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountService_ListPostableAccounts(t *testing.T) {
	service, mock := newTestAccounts(t)
	now := time.Now()

	mock.ExpectQuery(`WHERE workspace_id = \$1 AND is_active AND is_postable ORDER BY code ASC, name ASC`).
		WithArgs("ws-1").
		WillReturnRows(sqlmock.NewRows(accountRowColumns).
			AddRow("a-1", "ws-1", "p-1", "1.1", "Caixa", "ASSET", "CASH", true, true, nil, now).
			AddRow("a-2", "ws-1", "p-5", nil, "Moradia", "EXPENSE", "GENERAL", true, true, "user-1", now))

	accounts, err := service.ListPostableAccounts(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "1.1 · Caixa", accounts[0].Label())
	assert.Equal(t, models.AccountTypeCash, accounts[0].AccountType)
	assert.Nil(t, accounts[1].Code)
	assert.Equal(t, "Moradia", accounts[1].Label())
	assert.Equal(t, "user-1", accounts[1].CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountService_ListAccounts(t *testing.T) {
	t.Run("empty chart is an empty slice", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		mock.ExpectQuery(`WHERE workspace_id = \$1 ORDER BY code ASC, name ASC`).
			WithArgs("ws-1").
			WillReturnRows(sqlmock.NewRows(accountRowColumns))

		accounts, err := service.ListAccounts(context.Background(), "ws-1")
		assert.NoError(t, err)
		assert.NotNil(t, accounts)
		assert.Empty(t, accounts)
	})

	t.Run("store down", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		mock.ExpectQuery("FROM accounts").WillReturnError(&pq.Error{Code: "53300"})

		_, err := service.ListAccounts(context.Background(), "ws-1")
		assert.Equal(t, KindStoreUnavailable, KindOf(err))
	})
}

func TestAccountService_CreateAccount(t *testing.T) {
	insert := regexp.QuoteMeta("INSERT INTO accounts")
	lookup := regexp.QuoteMeta("SELECT parent_id FROM accounts WHERE id = $1 AND workspace_id = $2")
	now := time.Now()

	base := CreateAccountRequest{
		WorkspaceID: "ws-1",
		CreatedBy:   "user-1",
		TargetID:    "a-1",
		Code:        "1.3",
		Name:        " Poupança ",
		Category:    models.CategoryAsset,
		AccountType: models.AccountTypeSavings,
		Postable:    true,
	}

	t.Run("sibling shares the target's parent", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		mock.ExpectQuery(lookup).WithArgs("a-1", "ws-1").
			WillReturnRows(sqlmock.NewRows([]string{"parent_id"}).AddRow("p-1"))
		mock.ExpectQuery(insert).
			WithArgs("ws-1", sql.NullString{String: "p-1", Valid: true}, sql.NullString{String: "1.3", Valid: true},
				"Poupança", "ASSET", "SAVINGS", true, "user-1").
			WillReturnRows(sqlmock.NewRows(accountRowColumns).
				AddRow("a-9", "ws-1", "p-1", "1.3", "Poupança", "ASSET", "SAVINGS", true, true, "user-1", now))

		req := base
		req.Mode = AddSibling
		account, err := service.CreateAccount(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "p-1", *account.ParentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("child hangs under the target", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		mock.ExpectQuery(lookup).WithArgs("a-1", "ws-1").
			WillReturnRows(sqlmock.NewRows([]string{"parent_id"}).AddRow("p-1"))
		mock.ExpectQuery(insert).
			WithArgs("ws-1", sql.NullString{String: "a-1", Valid: true}, sqlmock.AnyArg(),
				"Poupança", "ASSET", "SAVINGS", true, "user-1").
			WillReturnRows(sqlmock.NewRows(accountRowColumns).
				AddRow("a-9", "ws-1", "a-1", "1.3", "Poupança", "ASSET", "SAVINGS", true, true, "user-1", now))

		req := base
		req.Mode = AddChild
		account, err := service.CreateAccount(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "a-1", *account.ParentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sibling of a root account is a root account", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		mock.ExpectQuery(lookup).
			WillReturnRows(sqlmock.NewRows([]string{"parent_id"}).AddRow(nil))
		mock.ExpectQuery(insert).
			WithArgs("ws-1", sql.NullString{}, sqlmock.AnyArg(), "Poupança", "ASSET", "SAVINGS", true, "user-1").
			WillReturnRows(sqlmock.NewRows(accountRowColumns).
				AddRow("a-9", "ws-1", nil, "1.3", "Poupança", "ASSET", "SAVINGS", true, true, "user-1", now))

		req := base
		req.Mode = AddSibling
		account, err := service.CreateAccount(context.Background(), req)
		require.NoError(t, err)
		assert.Nil(t, account.ParentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blank name", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		req := base
		req.Name = "  "
		_, err := service.CreateAccount(context.Background(), req)
		assert.Equal(t, KindInvalidAccountRequest, KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("target outside the workspace", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		mock.ExpectQuery(lookup).WillReturnError(sql.ErrNoRows)

		_, err := service.CreateAccount(context.Background(), base)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountService_UpdateAccount(t *testing.T) {
	update := regexp.QuoteMeta("UPDATE accounts SET name = $1, code = $2")

	t.Run("rename and clear code", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		mock.ExpectExec(update).
			WithArgs("Caixa físico", sql.NullString{}, "a-1", "ws-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := service.UpdateAccount(context.Background(), "ws-1", "a-1", "user-1", "Caixa físico", " ")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blank name", func(t *testing.T) {
		service, _ := newTestAccounts(t)

		err := service.UpdateAccount(context.Background(), "ws-1", "a-1", "user-1", "", "1.1")
		assert.Equal(t, KindInvalidAccountRequest, KindOf(err))
	})

	t.Run("unknown account", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))

		err := service.UpdateAccount(context.Background(), "ws-1", "missing", "user-1", "Caixa", "1.1")
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestAccountService_SetActive(t *testing.T) {
	service, mock := newTestAccounts(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET is_active = $1")).
		WithArgs(false, "a-1", "ws-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, service.SetActive(context.Background(), "ws-1", "a-1", "user-1", false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountService_DeleteAccount(t *testing.T) {
	del := regexp.QuoteMeta("DELETE FROM accounts WHERE id = $1 AND workspace_id = $2")

	t.Run("unused account", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		mock.ExpectExec(del).WithArgs("a-1", "ws-1").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, service.DeleteAccount(context.Background(), "ws-1", "a-1", "user-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("account with entries suggests deactivation", func(t *testing.T) {
		service, mock := newTestAccounts(t)

		fk := &pq.Error{Code: "23503", Constraint: "entries_account_id_fkey"}
		mock.ExpectExec(del).WillReturnError(fk)

		err := service.DeleteAccount(context.Background(), "ws-1", "a-1", "user-1")
		var lerr *LedgerError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, KindReferentialIntegrity, lerr.Kind)
		assert.Equal(t, deleteReferencedMessage, lerr.Message)
		assert.ErrorIs(t, err, fk)
	})
}
