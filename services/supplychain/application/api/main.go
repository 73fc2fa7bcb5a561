package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/beantrail/pkg/actor"
	"github.com/ghuser/beantrail/pkg/app"
	"github.com/ghuser/beantrail/services/supplychain/application/handlers"
	appsvcs "github.com/ghuser/beantrail/services/supplychain/application/services"
)

// SupplychainRoutes registers the custody-chain endpoints on the provided chi
// router. Reads and role registration are open; every write that advances an
// item requires a caller identity via the X-Actor-Id header.
func SupplychainRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Route("/items", func(r chi.Router) {
		r.Get("/{upc}/provenance", handlers.NewGetProvenanceHandler(svcs).Execute)
		r.Get("/{upc}/commercial", handlers.NewGetCommercialHandler(svcs).Execute)

		r.Group(func(r chi.Router) {
			r.Use(actor.Require(a.Logger))

			r.Post("/", handlers.NewHarvestItemHandler(svcs).Execute)
			r.Post("/{upc}/process", handlers.NewProcessItemHandler(svcs).Execute)
			r.Post("/{upc}/pack", handlers.NewPackItemHandler(svcs).Execute)
			r.Post("/{upc}/sell", handlers.NewSellItemHandler(svcs).Execute)
			r.Post("/{upc}/buy", handlers.NewBuyItemHandler(svcs).Execute)
			r.Post("/{upc}/ship", handlers.NewShipItemHandler(svcs).Execute)
			r.Post("/{upc}/receive", handlers.NewReceiveItemHandler(svcs).Execute)
			r.Post("/{upc}/purchase", handlers.NewPurchaseItemHandler(svcs).Execute)
		})
	})

	r.Route("/roles", func(r chi.Router) {
		r.Post("/{role}/members", handlers.NewAddRoleMemberHandler(svcs).Execute)
		r.Get("/{role}/members/{id}", handlers.NewGetRoleMemberHandler(svcs).Execute)
	})

	r.Route("/accounts", func(r chi.Router) {
		r.Post("/{id}/deposit", handlers.NewDepositHandler(svcs).Execute)
		r.Get("/{id}", handlers.NewGetAccountHandler(svcs).Execute)
	})
}
