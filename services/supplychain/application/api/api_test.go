package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/beantrail/pkg/actor"
	"github.com/ghuser/beantrail/pkg/app"
	"github.com/ghuser/beantrail/pkg/config"
	"github.com/ghuser/beantrail/pkg/logger"
)

// The router is built once: without a database or Redis the services fall
// back to the in-memory stores, so the whole custody chain can run in-process.
func newTestRouter() chi.Router {
	log := logger.New(&config.Config{LogLevel: "error"})
	r := chi.NewRouter()
	SupplychainRoutes(r, &app.Application{Logger: log})
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path string, actorID uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if actorID != uuid.Nil {
		req.Header.Set(actor.Header, actorID.String())
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerRole(t *testing.T, r chi.Router, role string, id uuid.UUID) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/roles/"+role+"/members", uuid.Nil,
		map[string]any{"member_id": id})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestSupplychainAPI_FullChain(t *testing.T) {
	r := newTestRouter()

	farmer := uuid.New()
	distributor := uuid.New()
	retailer := uuid.New()
	consumer := uuid.New()

	registerRole(t, r, "farmer", farmer)
	registerRole(t, r, "distributor", distributor)
	registerRole(t, r, "retailer", retailer)
	registerRole(t, r, "consumer", consumer)

	// Membership check answers true for the registered farmer.
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/roles/farmer/members/%s", farmer), uuid.Nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decode(t, w)["member"])

	// Writes without a caller identity are rejected before any handler runs.
	w = doJSON(t, r, http.MethodPost, "/items", uuid.Nil, map[string]any{"upc": 1})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Harvest.
	w = doJSON(t, r, http.MethodPost, "/items", farmer, map[string]any{
		"upc":            900,
		"farm_name":      "Finca La Esperanza",
		"farm_info":      "Huila, Colombia",
		"farm_latitude":  "2.5359",
		"farm_longitude": "-75.5277",
		"product_notes":  "washed arabica",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	require.EqualValues(t, 1, created["sku"])
	require.EqualValues(t, 901, created["product_id"])
	require.Equal(t, "Harvested", created["state"])

	// Duplicate UPC conflicts.
	w = doJSON(t, r, http.MethodPost, "/items", farmer, map[string]any{
		"upc":            900,
		"farm_name":      "Finca La Esperanza",
		"farm_latitude":  "2.5359",
		"farm_longitude": "-75.5277",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Process, pack, sell.
	w = doJSON(t, r, http.MethodPost, "/items/900/process", farmer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, "/items/900/pack", farmer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, "/items/900/sell", farmer, map[string]any{"price": 50})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "ForSale", decode(t, w)["state"])

	// Repeating a finished transition conflicts: the state moved on.
	w = doJSON(t, r, http.MethodPost, "/items/900/process", farmer, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	// Buying without funds fails with 402 and leaves the item for sale.
	w = doJSON(t, r, http.MethodPost, "/items/900/buy", distributor, map[string]any{"amount": 70})
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	// Fund the distributor, then buy with an overpayment.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/accounts/%s/deposit", distributor), uuid.Nil,
		map[string]any{"amount": 100})
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 100, decode(t, w)["balance"])

	w = doJSON(t, r, http.MethodPost, "/items/900/buy", distributor, map[string]any{"amount": 70})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	bought := decode(t, w)
	require.EqualValues(t, 20, bought["refund"])
	require.Equal(t, "Sold", bought["item"].(map[string]any)["state"])

	// The farmer received exactly the price.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/accounts/%s", farmer), uuid.Nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 50, decode(t, w)["balance"])

	// Ship, receive, purchase.
	w = doJSON(t, r, http.MethodPost, "/items/900/ship", distributor, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, "/items/900/receive", retailer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, "/items/900/purchase", consumer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "Purchased", decode(t, w)["state"])

	// Reads are open and split in two.
	w = doJSON(t, r, http.MethodGet, "/items/900/provenance", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	prov := decode(t, w)
	require.Equal(t, "Finca La Esperanza", prov["farm_name"])
	require.Equal(t, farmer.String(), prov["farmer_id"])
	require.Equal(t, consumer.String(), prov["owner_id"])

	w = doJSON(t, r, http.MethodGet, "/items/900/commercial", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	com := decode(t, w)
	require.Equal(t, "Purchased", com["state_name"])
	require.EqualValues(t, 50, com["price"])
	require.Equal(t, distributor.String(), com["distributor_id"])
}

func TestSupplychainAPI_Errors(t *testing.T) {
	r := newTestRouter()
	farmer := uuid.New()
	registerRole(t, r, "farmer", farmer)

	t.Run("unknown upc reads 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/items/404/provenance", uuid.Nil, nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed upc is a 400", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/items/not-a-upc/provenance", uuid.Nil, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown role is a 422", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/roles/broker/members", uuid.Nil,
			map[string]any{"member_id": uuid.New()})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("validation failures are 422", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/items", farmer, map[string]any{
			"upc":            1,
			"farm_name":      "Finca",
			"farm_latitude":  "not-a-latitude",
			"farm_longitude": "-75.5277",
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("transition on missing item is a 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/items/404/process", farmer, nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("role guard rejects unregistered caller", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/items", farmer, map[string]any{
			"upc":            55,
			"farm_name":      "Finca",
			"farm_latitude":  "2.5359",
			"farm_longitude": "-75.5277",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		stranger := uuid.New()
		w = doJSON(t, r, http.MethodPost, "/items/55/process", stranger, nil)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
