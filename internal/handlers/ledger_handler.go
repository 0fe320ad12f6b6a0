package handlers

import (
	"net/http"

	"github.com/livrocaixa/backend/internal/middleware"
	"github.com/livrocaixa/backend/internal/services"
)

type LedgerHandler struct {
	service   *services.DoubleLedgerService
	accounts  *services.AccountService
	validator *services.ValidationHelper
}

// NewLedgerHandler needs the account service to resolve the caller's
// workspace; postings and reads are confined to it.
func NewLedgerHandler(service *services.DoubleLedgerService, accounts *services.AccountService) *LedgerHandler {
	return &LedgerHandler{
		service:   service,
		accounts:  accounts,
		validator: services.NewValidationHelper(),
	}
}

// PostTransactionRequest is the manual posting form.
type PostTransactionRequest struct {
	Date            string `json:"date" example:"2024-01-15"`
	Description     string `json:"description" validate:"max=500" example:"Aluguel janeiro"`
	DebitAccountID  string `json:"debitAccountId"`
	CreditAccountID string `json:"creditAccountId"`
	Amount          string `json:"amount" validate:"max=32" example:"1.250,00"`
	IdempotencyKey  string `json:"idempotencyKey,omitempty" validate:"omitempty,uuid"`
}

type PostTransactionResponse struct {
	ID          string `json:"id"`
	AmountCents int64  `json:"amountCents"`
	Amount      string `json:"amount"`
}

// PostTransaction creates a balanced manual transaction
// @Summary Post a manual transaction
// @Description Normalizes the amount, validates the form and atomically writes the header with its DEBIT and CREDIT entries
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PostTransactionRequest true "Posting form"
// @Success 201 {object} PostTransactionResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Failure 503 {object} services.ErrorResponse
// @Router /ledger/transactions [post]
func (h *LedgerHandler) PostTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		services.SendLedgerError(w, &services.LedgerError{Kind: services.KindUnauthenticated, Message: "Unauthorized"})
		return
	}

	var req PostTransactionRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	posting, err := h.service.PreparePosting(r.Context(), services.PostingForm{
		Date:            req.Date,
		Description:     req.Description,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Amount:          req.Amount,
		IdempotencyKey:  req.IdempotencyKey,
		UserID:          userID,
	})
	if err != nil {
		services.SendLedgerError(w, err)
		return
	}

	posting.WorkspaceID, err = h.accounts.EnsureWorkspace(r.Context(), userID)
	if err != nil {
		services.SendLedgerError(w, err)
		return
	}

	txID, err := h.service.PostTransaction(r.Context(), posting)
	if err != nil {
		services.SendLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, PostTransactionResponse{
		ID:          txID,
		AmountCents: posting.AmountCents,
		Amount:      services.FormatCents(posting.AmountCents),
	})
}

// GetTransaction returns a posted transaction with its entries
// @Summary Get transaction by ID
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param txId path string true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} services.ErrorResponse
// @Router /ledger/transactions/{txId} [get]
func (h *LedgerHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	txID, ok := pathID(w, r, "txId")
	if !ok {
		return
	}

	workspaceID, err := h.accounts.EnsureWorkspace(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		services.SendLedgerError(w, err)
		return
	}

	tx, err := h.service.GetTransaction(r.Context(), workspaceID, txID)
	if err != nil {
		services.SendLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}
