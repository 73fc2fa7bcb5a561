package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/beantrail/pkg/errhttp"
	"github.com/ghuser/beantrail/pkg/httpx"
	pkgvalidator "github.com/ghuser/beantrail/pkg/validator"
	appsvcs "github.com/ghuser/beantrail/services/supplychain/application/services"
)

// DepositRequest is the request body for POST /accounts/{id}/deposit.
type DepositRequest struct {
	Amount uint64 `json:"amount" validate:"required,gt=0"`
} // @name DepositRequest

// AccountResponse reports an account's balance.
type AccountResponse struct {
	ID      uuid.UUID `json:"id"`
	Balance uint64    `json:"balance"`
} // @name AccountResponse

// DepositHandler handles POST /accounts/{id}/deposit requests.
type DepositHandler struct {
	svc *appsvcs.Services
}

// NewDepositHandler returns a DepositHandler backed by the given services.
func NewDepositHandler(svc *appsvcs.Services) *DepositHandler {
	return &DepositHandler{svc: svc}
}

// Execute credits funds to an account so the identity can buy through escrow.
//
//	@Summary	Deposit funds
//	@Tags		accounts
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Account identity"
//	@Param		request	body		DepositRequest	true	"Amount to credit"
//	@Success	200		{object}	AccountResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/accounts/{id}/deposit [post]
func (h *DepositHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := accountParam(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[DepositRequest](w, r)
	if !ok {
		return
	}

	balance, err := h.svc.Accounts.Deposit(r.Context(), id, req.Amount)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, AccountResponse{ID: id, Balance: balance})
}

// GetAccountHandler handles GET /accounts/{id} requests.
type GetAccountHandler struct {
	svc *appsvcs.Services
}

// NewGetAccountHandler returns a GetAccountHandler backed by the given services.
func NewGetAccountHandler(svc *appsvcs.Services) *GetAccountHandler {
	return &GetAccountHandler{svc: svc}
}

// Execute returns the account balance; unknown identities hold zero.
//
//	@Summary	Read account balance
//	@Tags		accounts
//	@Produce	json
//	@Param		id	path		string	true	"Account identity"
//	@Success	200	{object}	AccountResponse
//	@Router		/accounts/{id} [get]
func (h *GetAccountHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := accountParam(w, r)
	if !ok {
		return
	}

	balance, err := h.svc.Accounts.Balance(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, AccountResponse{ID: id, Balance: balance})
}

func accountParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid account id")
		return uuid.Nil, false
	}
	return id, true
}
