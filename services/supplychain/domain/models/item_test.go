package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
)

func harvested(t *testing.T, farmer uuid.UUID) *Item {
	t.Helper()
	it, err := NewItem(HarvestParams{
		UPC:           101,
		FarmerID:      farmer,
		FarmName:      "Finca La Esperanza",
		FarmInfo:      "Huila, Colombia",
		FarmLatitude:  "2.5359",
		FarmLongitude: "-75.5277",
		ProductNotes:  "washed arabica",
	})
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	return it
}

func TestNewItem(t *testing.T) {
	farmer := uuid.New()
	it := harvested(t, farmer)

	if it.State != StateHarvested {
		t.Errorf("state = %s, want Harvested", it.State)
	}
	if it.OwnerID != farmer {
		t.Error("farmer should own a freshly harvested item")
	}
	if it.DistributorID != EmptyIdentity || it.RetailerID != EmptyIdentity || it.ConsumerID != EmptyIdentity {
		t.Error("downstream identities must start empty")
	}
	if it.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestNewItem_RequiresFarmer(t *testing.T) {
	if _, err := NewItem(HarvestParams{UPC: 101}); err == nil {
		t.Fatal("expected error for empty farmer identity")
	}
}

func TestItem_FullLifecycle(t *testing.T) {
	farmer := uuid.New()
	distributor := uuid.New()
	retailer := uuid.New()
	consumer := uuid.New()

	it := harvested(t, farmer)

	steps := []struct {
		name string
		call func() error
		want ItemState
	}{
		{"process", func() error { return it.Process(farmer) }, StateProcessed},
		{"pack", func() error { return it.Pack(farmer) }, StatePacked},
		{"sell", func() error { return it.Sell(farmer, 42) }, StateForSale},
		{"buy", func() error { return it.Buy(distributor) }, StateSold},
		{"ship", func() error { return it.Ship(distributor) }, StateShipped},
		{"receive", func() error { return it.Receive(retailer) }, StateReceived},
		{"purchase", func() error { return it.Purchase(consumer) }, StatePurchased},
	}
	for _, step := range steps {
		if err := step.call(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if it.State != step.want {
			t.Fatalf("%s: state = %s, want %s", step.name, it.State, step.want)
		}
	}

	if !it.State.Terminal() {
		t.Error("Purchased must be terminal")
	}
	if it.OwnerID != consumer {
		t.Error("consumer should own the purchased item")
	}
	if it.DistributorID != distributor || it.RetailerID != retailer || it.ConsumerID != consumer {
		t.Error("custody identities not recorded through the chain")
	}
	if it.Price != 42 {
		t.Errorf("price = %d, want 42", it.Price)
	}
	if it.FarmerID != farmer {
		t.Error("provenance farmer must be immutable")
	}
}

func TestItem_OwnerGuard(t *testing.T) {
	farmer := uuid.New()
	stranger := uuid.New()
	it := harvested(t, farmer)

	if err := it.Process(stranger); !errors.Is(err, supplydomain.ErrUnauthorized) {
		t.Fatalf("Process by non-owner: err = %v, want ErrUnauthorized", err)
	}
	if it.State != StateHarvested {
		t.Error("failed guard must not advance state")
	}
}

func TestItem_StateGuard(t *testing.T) {
	farmer := uuid.New()
	it := harvested(t, farmer)

	// Pack requires Processed; Harvested fails the exact-predecessor check.
	if err := it.Pack(farmer); !errors.Is(err, supplydomain.ErrInvalidState) {
		t.Fatalf("Pack from Harvested: err = %v, want ErrInvalidState", err)
	}

	// A repeated transition fails the same way: the state has advanced.
	if err := it.Process(farmer); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if err := it.Process(farmer); !errors.Is(err, supplydomain.ErrInvalidState) {
		t.Fatalf("repeated Process: err = %v, want ErrInvalidState", err)
	}
}

func TestItem_SellRejectsZeroPrice(t *testing.T) {
	farmer := uuid.New()
	it := harvested(t, farmer)
	if err := it.Process(farmer); err != nil {
		t.Fatal(err)
	}
	if err := it.Pack(farmer); err != nil {
		t.Fatal(err)
	}

	if err := it.Sell(farmer, 0); !errors.Is(err, supplydomain.ErrInvalidPrice) {
		t.Fatalf("Sell with zero price: err = %v, want ErrInvalidPrice", err)
	}
	if it.State != StatePacked {
		t.Error("failed sell must not advance state")
	}
}

func TestItem_Clone(t *testing.T) {
	farmer := uuid.New()
	it := harvested(t, farmer)

	cp := it.Clone()
	cp.State = StatePurchased
	cp.OwnerID = uuid.New()

	if it.State != StateHarvested || it.OwnerID != farmer {
		t.Error("mutating a clone must not touch the original")
	}
}
