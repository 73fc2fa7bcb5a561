package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/beantrail/pkg/errhttp"
	"github.com/ghuser/beantrail/pkg/httpx"
	appsvcs "github.com/ghuser/beantrail/services/supplychain/application/services"
)

// ProvenanceResponse is the provenance half of the two-part read contract.
type ProvenanceResponse struct {
	SKU           uint64    `json:"sku"`
	UPC           uint64    `json:"upc"`
	OwnerID       uuid.UUID `json:"owner_id"`
	FarmerID      uuid.UUID `json:"farmer_id"`
	FarmName      string    `json:"farm_name"`
	FarmInfo      string    `json:"farm_info"`
	FarmLatitude  string    `json:"farm_latitude"`
	FarmLongitude string    `json:"farm_longitude"`
} // @name ProvenanceResponse

// CommercialResponse is the commercial half of the two-part read contract.
// Identity fields not yet set by a transition serialize as the nil UUID.
type CommercialResponse struct {
	ProductID     uint64    `json:"product_id"`
	ProductNotes  string    `json:"product_notes"`
	Price         uint64    `json:"price"`
	State         uint8     `json:"state"`
	StateName     string    `json:"state_name"`
	DistributorID uuid.UUID `json:"distributor_id"`
	RetailerID    uuid.UUID `json:"retailer_id"`
	ConsumerID    uuid.UUID `json:"consumer_id"`
} // @name CommercialResponse

// GetProvenanceHandler handles GET /items/{upc}/provenance.
type GetProvenanceHandler struct {
	svc *appsvcs.Services
}

// NewGetProvenanceHandler returns a GetProvenanceHandler backed by the given services.
func NewGetProvenanceHandler(svc *appsvcs.Services) *GetProvenanceHandler {
	return &GetProvenanceHandler{svc: svc}
}

// Execute returns the item's provenance view. Reads carry no role restriction.
//
//	@Summary	Fetch item provenance
//	@Tags		items
//	@Produce	json
//	@Param		upc	path		integer	true	"Unique product code"
//	@Success	200	{object}	ProvenanceResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{upc}/provenance [get]
func (h *GetProvenanceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	upc, ok := upcParam(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Fetch.Provenance(r.Context(), upc)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ProvenanceResponse{
		SKU:           view.SKU,
		UPC:           view.UPC,
		OwnerID:       view.OwnerID,
		FarmerID:      view.FarmerID,
		FarmName:      view.FarmName,
		FarmInfo:      view.FarmInfo,
		FarmLatitude:  view.FarmLatitude,
		FarmLongitude: view.FarmLongitude,
	})
}

// GetCommercialHandler handles GET /items/{upc}/commercial.
type GetCommercialHandler struct {
	svc *appsvcs.Services
}

// NewGetCommercialHandler returns a GetCommercialHandler backed by the given services.
func NewGetCommercialHandler(svc *appsvcs.Services) *GetCommercialHandler {
	return &GetCommercialHandler{svc: svc}
}

// Execute returns the item's commercial/logistics view.
//
//	@Summary	Fetch item commercial record
//	@Tags		items
//	@Produce	json
//	@Param		upc	path		integer	true	"Unique product code"
//	@Success	200	{object}	CommercialResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{upc}/commercial [get]
func (h *GetCommercialHandler) Execute(w http.ResponseWriter, r *http.Request) {
	upc, ok := upcParam(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Fetch.Commercial(r.Context(), upc)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, CommercialResponse{
		ProductID:     view.ProductID,
		ProductNotes:  view.ProductNotes,
		Price:         view.Price,
		State:         uint8(view.State),
		StateName:     view.State.String(),
		DistributorID: view.DistributorID,
		RetailerID:    view.RetailerID,
		ConsumerID:    view.ConsumerID,
	})
}
