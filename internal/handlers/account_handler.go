package handlers

import (
	"net/http"

	"github.com/livrocaixa/backend/internal/middleware"
	"github.com/livrocaixa/backend/internal/models"
	"github.com/livrocaixa/backend/internal/services"
)

type AccountHandler struct {
	service   *services.AccountService
	validator *services.ValidationHelper
}

func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

type CreateAccountRequest struct {
	TargetID    string `json:"targetId,omitempty" validate:"omitempty,uuid"`
	Mode        string `json:"mode,omitempty" validate:"omitempty,oneof=child sibling"`
	Code        string `json:"code,omitempty" validate:"max=32"`
	Name        string `json:"name" validate:"required,max=120"`
	Category    string `json:"category" validate:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	AccountType string `json:"accountType,omitempty" validate:"omitempty,oneof=GENERAL CASH BANK CREDIT_CARD SAVINGS INVESTMENT PAYABLE RECEIVABLE"`
	Postable    *bool  `json:"postable,omitempty"`
}

type UpdateAccountRequest struct {
	Name string `json:"name" validate:"max=120"`
	Code string `json:"code" validate:"max=32"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// workspace resolves the caller's workspace, writing the error response when
// it cannot.
func (h *AccountHandler) workspace(w http.ResponseWriter, r *http.Request) (workspaceID, userID string, ok bool) {
	userID = middleware.UserIDFromContext(r.Context())
	workspaceID, err := h.service.EnsureWorkspace(r.Context(), userID)
	if err != nil {
		services.SendLedgerError(w, err)
		return "", "", false
	}
	return workspaceID, userID, true
}

// ListAccounts returns the full chart of accounts
// @Summary List accounts
// @Description Seeds the default chart on first use, then lists every account ordered by code and name
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{accounts=[]models.Account,count=int}
// @Failure 401 {object} services.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	workspaceID, _, ok := h.workspace(w, r)
	if !ok {
		return
	}

	accounts, err := h.service.ListAccounts(r.Context(), workspaceID)
	if err != nil {
		services.SendLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accounts": accounts, "count": len(accounts)})
}

// ListPostableAccounts returns accounts selectable as posting legs
// @Summary List postable accounts
// @Description Active and postable accounts ordered by code and name
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{accounts=[]models.Account,count=int}
// @Router /accounts/postable [get]
func (h *AccountHandler) ListPostableAccounts(w http.ResponseWriter, r *http.Request) {
	workspaceID, _, ok := h.workspace(w, r)
	if !ok {
		return
	}

	accounts, err := h.service.ListPostableAccounts(r.Context(), workspaceID)
	if err != nil {
		services.SendLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accounts": accounts, "count": len(accounts)})
}

// CreateAccount adds an account to the chart
// @Summary Create account
// @Description Creates a root account, or a child or sibling of targetId
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAccountRequest true "Account data"
// @Success 201 {object} models.Account
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	workspaceID, userID, ok := h.workspace(w, r)
	if !ok {
		return
	}

	postable := true
	if req.Postable != nil {
		postable = *req.Postable
	}
	mode := services.AddChild
	if req.Mode == string(services.AddSibling) {
		mode = services.AddSibling
	}

	account, err := h.service.CreateAccount(r.Context(), services.CreateAccountRequest{
		WorkspaceID: workspaceID,
		CreatedBy:   userID,
		TargetID:    req.TargetID,
		Mode:        mode,
		Code:        req.Code,
		Name:        req.Name,
		Category:    models.Category(req.Category),
		AccountType: models.AccountType(req.AccountType),
		Postable:    postable,
	})
	if err != nil {
		services.SendLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// UpdateAccount renames or recodes an account
// @Summary Update account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param accountId path string true "Account ID"
// @Param request body UpdateAccountRequest true "New name and code"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/{accountId} [put]
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(w, r, "accountId")
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	workspaceID, userID, ok := h.workspace(w, r)
	if !ok {
		return
	}

	if err := h.service.UpdateAccount(r.Context(), workspaceID, accountID, userID, req.Name, req.Code); err != nil {
		services.SendLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// SetActive activates or deactivates an account
// @Summary Toggle account activity
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param accountId path string true "Account ID"
// @Param request body SetActiveRequest true "Desired state"
// @Success 200 {object} object{success=bool}
// @Router /accounts/{accountId}/active [put]
func (h *AccountHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(w, r, "accountId")
	if !ok {
		return
	}

	var req SetActiveRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	workspaceID, userID, ok := h.workspace(w, r)
	if !ok {
		return
	}

	if err := h.service.SetActive(r.Context(), workspaceID, accountID, userID, *req.Active); err != nil {
		services.SendLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DeleteAccount removes an account that no entry references
// @Summary Delete account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param accountId path string true "Account ID"
// @Success 200 {object} object{success=bool}
// @Failure 409 {object} services.ErrorResponse "Account already used in entries"
// @Router /accounts/{accountId} [delete]
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(w, r, "accountId")
	if !ok {
		return
	}

	workspaceID, userID, ok := h.workspace(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteAccount(r.Context(), workspaceID, accountID, userID); err != nil {
		services.SendLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
