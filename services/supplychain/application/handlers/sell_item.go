package handlers

import (
	"net/http"

	"github.com/ghuser/beantrail/pkg/actor"
	"github.com/ghuser/beantrail/pkg/errhttp"
	"github.com/ghuser/beantrail/pkg/httpx"
	pkgvalidator "github.com/ghuser/beantrail/pkg/validator"
	appsvcs "github.com/ghuser/beantrail/services/supplychain/application/services"
)

// SellItemRequest is the request body for POST /items/{upc}/sell.
type SellItemRequest struct {
	Price uint64 `json:"price" validate:"required,gt=0"`
} // @name SellItemRequest

// SellItemHandler handles POST /items/{upc}/sell requests.
type SellItemHandler struct {
	svc *appsvcs.Services
}

// NewSellItemHandler returns a SellItemHandler backed by the given services.
func NewSellItemHandler(svc *appsvcs.Services) *SellItemHandler {
	return &SellItemHandler{svc: svc}
}

// Execute puts the item up for sale at the given price.
//
//	@Summary	Put item up for sale
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		upc		path		integer			true	"Unique product code"
//	@Param		request	body		SellItemRequest	true	"Asking price"
//	@Success	200		{object}	ItemResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/items/{upc}/sell [post]
func (h *SellItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "caller identity required"})
		return
	}

	upc, ok := upcParam(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[SellItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Chain.Sell(r.Context(), upc, actorID, req.Price)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, itemResponse(item))
}
