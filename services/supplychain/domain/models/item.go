package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
)

// EmptyIdentity is the defined sentinel for identity fields that have not been
// set yet (distributor, retailer, consumer before their transition occurs).
var EmptyIdentity = uuid.Nil

// Item is the core aggregate: one record per UPC, tracked from harvest to the
// terminal purchase. Provenance fields are immutable after creation; the
// commercial fields advance only through the transition methods below.
type Item struct {
	SKU       uint64 // assigned sequentially by the ledger at creation
	UPC       uint64 // caller-supplied unique key
	ProductID uint64 // SKU + UPC, informational

	// Provenance — immutable once harvested.
	FarmerID      uuid.UUID
	FarmName      string
	FarmInfo      string
	FarmLatitude  string
	FarmLongitude string
	ProductNotes  string

	// Commercial / logistics.
	OwnerID       uuid.UUID
	Price         uint64 // set once at ForSale, immutable thereafter
	State         ItemState
	DistributorID uuid.UUID
	RetailerID    uuid.UUID
	ConsumerID    uuid.UUID

	CreatedAt time.Time
}

// HarvestParams carries the caller-supplied provenance facts for a new Item.
type HarvestParams struct {
	UPC           uint64
	FarmerID      uuid.UUID
	FarmName      string
	FarmInfo      string
	FarmLatitude  string
	FarmLongitude string
	ProductNotes  string
}

// NewItem constructs a freshly harvested Item. The farmer becomes the owner and
// the state starts at Harvested. SKU and ProductID are assigned by the ledger
// when the record is created.
func NewItem(p HarvestParams) (*Item, error) {
	if p.FarmerID == EmptyIdentity {
		return nil, fmt.Errorf("farmer identity must be set")
	}
	return &Item{
		UPC:           p.UPC,
		FarmerID:      p.FarmerID,
		FarmName:      p.FarmName,
		FarmInfo:      p.FarmInfo,
		FarmLatitude:  p.FarmLatitude,
		FarmLongitude: p.FarmLongitude,
		ProductNotes:  p.ProductNotes,
		OwnerID:       p.FarmerID,
		State:         StateHarvested,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// RequireState guards a transition on its exact predecessor state. A succeeded
// transition re-run for the same UPC fails here, since the state has advanced.
func (it *Item) RequireState(s ItemState) error {
	if it.State != s {
		return fmt.Errorf("%w: have %s, need %s", supplydomain.ErrInvalidState, it.State, s)
	}
	return nil
}

// requireOwner guards owner-restricted transitions on the caller identity
// supplied with the call.
func (it *Item) requireOwner(actor uuid.UUID) error {
	if it.OwnerID != actor {
		return fmt.Errorf("%w: caller is not the recorded owner", supplydomain.ErrUnauthorized)
	}
	return nil
}

// Process advances Harvested → Processed. Only the owning farmer may process.
func (it *Item) Process(actor uuid.UUID) error {
	if err := it.requireOwner(actor); err != nil {
		return err
	}
	if err := it.RequireState(StateHarvested); err != nil {
		return err
	}
	it.State = StateProcessed
	return nil
}

// Pack advances Processed → Packed. Only the owning farmer may pack.
func (it *Item) Pack(actor uuid.UUID) error {
	if err := it.requireOwner(actor); err != nil {
		return err
	}
	if err := it.RequireState(StateProcessed); err != nil {
		return err
	}
	it.State = StatePacked
	return nil
}

// Sell advances Packed → ForSale and records the asking price. The price is
// immutable from this point on.
func (it *Item) Sell(actor uuid.UUID, price uint64) error {
	if err := it.requireOwner(actor); err != nil {
		return err
	}
	if err := it.RequireState(StatePacked); err != nil {
		return err
	}
	if price == 0 {
		return fmt.Errorf("%w: price must be positive", supplydomain.ErrInvalidPrice)
	}
	it.Price = price
	it.State = StateForSale
	return nil
}

// Buy advances ForSale → Sold and hands custody to the paying distributor.
// Payment settlement must have completed before this is called; Buy itself
// only records the outcome.
func (it *Item) Buy(distributor uuid.UUID) error {
	if err := it.RequireState(StateForSale); err != nil {
		return err
	}
	it.OwnerID = distributor
	it.DistributorID = distributor
	it.State = StateSold
	return nil
}

// Ship advances Sold → Shipped. Only the owning distributor may ship.
func (it *Item) Ship(actor uuid.UUID) error {
	if err := it.requireOwner(actor); err != nil {
		return err
	}
	if err := it.RequireState(StateSold); err != nil {
		return err
	}
	it.State = StateShipped
	return nil
}

// Receive advances Shipped → Received and hands custody to the retailer.
func (it *Item) Receive(retailer uuid.UUID) error {
	if err := it.RequireState(StateShipped); err != nil {
		return err
	}
	it.OwnerID = retailer
	it.RetailerID = retailer
	it.State = StateReceived
	return nil
}

// Purchase advances Received → Purchased, the terminal state, and hands
// custody to the consumer.
func (it *Item) Purchase(consumer uuid.UUID) error {
	if err := it.RequireState(StateReceived); err != nil {
		return err
	}
	it.OwnerID = consumer
	it.ConsumerID = consumer
	it.State = StatePurchased
	return nil
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// mutate ledger state outside a transition.
func (it *Item) Clone() *Item {
	cp := *it
	return &cp
}
