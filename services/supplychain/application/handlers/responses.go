package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/beantrail/pkg/httpx"
	"github.com/ghuser/beantrail/services/supplychain/domain/models"
)

// ItemResponse is returned by every successful write operation.
type ItemResponse struct {
	SKU           uint64    `json:"sku"`
	UPC           uint64    `json:"upc"`
	ProductID     uint64    `json:"product_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	FarmerID      uuid.UUID `json:"farmer_id"`
	Price         uint64    `json:"price"`
	State         string    `json:"state"`
	DistributorID uuid.UUID `json:"distributor_id"`
	RetailerID    uuid.UUID `json:"retailer_id"`
	ConsumerID    uuid.UUID `json:"consumer_id"`
}

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func itemResponse(it *models.Item) ItemResponse {
	return ItemResponse{
		SKU:           it.SKU,
		UPC:           it.UPC,
		ProductID:     it.ProductID,
		OwnerID:       it.OwnerID,
		FarmerID:      it.FarmerID,
		Price:         it.Price,
		State:         it.State.String(),
		DistributorID: it.DistributorID,
		RetailerID:    it.RetailerID,
		ConsumerID:    it.ConsumerID,
	}
}

// upcParam parses the {upc} path parameter. Writes a 400 and returns false on
// malformed input.
func upcParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := chi.URLParam(r, "upc")
	upc, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid upc")
		return 0, false
	}
	return upc, true
}
