package handlers

import (
	"net/http"

	"github.com/ghuser/beantrail/pkg/actor"
	"github.com/ghuser/beantrail/pkg/errhttp"
	"github.com/ghuser/beantrail/pkg/httpx"
	pkgvalidator "github.com/ghuser/beantrail/pkg/validator"
	appsvcs "github.com/ghuser/beantrail/services/supplychain/application/services"
	"github.com/ghuser/beantrail/services/supplychain/domain/models"
)

// HarvestItemRequest is the request body for POST /items. The calling
// identity becomes the item's farmer and first owner.
type HarvestItemRequest struct {
	UPC           uint64 `json:"upc"            validate:"required"`
	FarmName      string `json:"farm_name"      validate:"required,max=255"`
	FarmInfo      string `json:"farm_info"      validate:"max=1024"`
	FarmLatitude  string `json:"farm_latitude"  validate:"required,latitude"`
	FarmLongitude string `json:"farm_longitude" validate:"required,longitude"`
	ProductNotes  string `json:"product_notes"  validate:"max=1024"`
} // @name HarvestItemRequest

// HarvestItemHandler handles POST /items requests.
type HarvestItemHandler struct {
	svc *appsvcs.Services
}

// NewHarvestItemHandler returns a HarvestItemHandler backed by the given services.
func NewHarvestItemHandler(svc *appsvcs.Services) *HarvestItemHandler {
	return &HarvestItemHandler{svc: svc}
}

// Execute creates an item in state Harvested.
//
//	@Summary	Harvest item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		request	body		HarvestItemRequest	true	"Provenance facts"
//	@Success	201		{object}	ItemResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/items [post]
func (h *HarvestItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	farmerID, err := actor.FromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "caller identity required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[HarvestItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Chain.Harvest(r.Context(), models.HarvestParams{
		UPC:           req.UPC,
		FarmerID:      farmerID,
		FarmName:      req.FarmName,
		FarmInfo:      req.FarmInfo,
		FarmLatitude:  req.FarmLatitude,
		FarmLongitude: req.FarmLongitude,
		ProductNotes:  req.ProductNotes,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, itemResponse(item))
}
