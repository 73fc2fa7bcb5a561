package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/beantrail/pkg/actor"
	"github.com/ghuser/beantrail/pkg/errhttp"
	"github.com/ghuser/beantrail/pkg/httpx"
	appsvcs "github.com/ghuser/beantrail/services/supplychain/application/services"
	"github.com/ghuser/beantrail/services/supplychain/domain/models"
)

// transitionFunc is one argument-free lifecycle step keyed by upc and actor.
type transitionFunc func(ctx context.Context, upc uint64, actor uuid.UUID) (*models.Item, error)

// TransitionItemHandler serves the transitions that take no body: process,
// pack, ship, receive, and purchase. The caller identity and the UPC path
// parameter are the only inputs.
type TransitionItemHandler struct {
	op transitionFunc
}

// NewProcessItemHandler handles POST /items/{upc}/process.
func NewProcessItemHandler(svc *appsvcs.Services) *TransitionItemHandler {
	return &TransitionItemHandler{op: svc.Chain.Process}
}

// NewPackItemHandler handles POST /items/{upc}/pack.
func NewPackItemHandler(svc *appsvcs.Services) *TransitionItemHandler {
	return &TransitionItemHandler{op: svc.Chain.Pack}
}

// NewShipItemHandler handles POST /items/{upc}/ship.
func NewShipItemHandler(svc *appsvcs.Services) *TransitionItemHandler {
	return &TransitionItemHandler{op: svc.Chain.Ship}
}

// NewReceiveItemHandler handles POST /items/{upc}/receive.
func NewReceiveItemHandler(svc *appsvcs.Services) *TransitionItemHandler {
	return &TransitionItemHandler{op: svc.Chain.Receive}
}

// NewPurchaseItemHandler handles POST /items/{upc}/purchase.
func NewPurchaseItemHandler(svc *appsvcs.Services) *TransitionItemHandler {
	return &TransitionItemHandler{op: svc.Chain.Purchase}
}

// Execute advances the item one lifecycle step.
//
//	@Summary	Advance item lifecycle
//	@Tags		items
//	@Produce	json
//	@Param		upc	path		integer	true	"Unique product code"
//	@Success	200	{object}	ItemResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	403	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
func (h *TransitionItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "caller identity required"})
		return
	}

	upc, ok := upcParam(w, r)
	if !ok {
		return
	}

	item, err := h.op(r.Context(), upc, actorID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, itemResponse(item))
}
