package handlers

import (
	"net/http"

	"github.com/ghuser/beantrail/pkg/actor"
	"github.com/ghuser/beantrail/pkg/errhttp"
	"github.com/ghuser/beantrail/pkg/httpx"
	pkgvalidator "github.com/ghuser/beantrail/pkg/validator"
	appsvcs "github.com/ghuser/beantrail/services/supplychain/application/services"
)

// BuyItemRequest is the request body for POST /items/{upc}/buy. Amount is the
// payment offered; anything above the recorded price comes back as refund.
type BuyItemRequest struct {
	Amount uint64 `json:"amount" validate:"required,gt=0"`
} // @name BuyItemRequest

// BuyItemResponse extends the item view with the settlement refund.
type BuyItemResponse struct {
	Item   ItemResponse `json:"item"`
	Refund uint64       `json:"refund"`
} // @name BuyItemResponse

// BuyItemHandler handles POST /items/{upc}/buy requests.
type BuyItemHandler struct {
	svc *appsvcs.Services
}

// NewBuyItemHandler returns a BuyItemHandler backed by the given services.
func NewBuyItemHandler(svc *appsvcs.Services) *BuyItemHandler {
	return &BuyItemHandler{svc: svc}
}

// Execute buys the item: settles payment, then transfers custody.
//
//	@Summary	Buy item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		upc		path		integer			true	"Unique product code"
//	@Param		request	body		BuyItemRequest	true	"Payment offer"
//	@Success	200		{object}	BuyItemResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	402		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/items/{upc}/buy [post]
func (h *BuyItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "caller identity required"})
		return
	}

	upc, ok := upcParam(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[BuyItemRequest](w, r)
	if !ok {
		return
	}

	item, refund, err := h.svc.Chain.Buy(r.Context(), upc, actorID, req.Amount)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, BuyItemResponse{
		Item:   itemResponse(item),
		Refund: refund,
	})
}
