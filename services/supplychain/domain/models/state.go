package models

import "fmt"

// ItemState is the ordinal lifecycle state of an Item. States only ever
// advance, one step at a time, from Harvested to the terminal Purchased.
type ItemState uint8

const (
	StateHarvested ItemState = iota
	StateProcessed
	StatePacked
	StateForSale
	StateSold
	StateShipped
	StateReceived
	StatePurchased
)

// Terminal reports whether no further transitions are defined from s.
func (s ItemState) Terminal() bool {
	return s == StatePurchased
}

// Valid reports whether s is one of the eight defined lifecycle states.
func (s ItemState) Valid() bool {
	return s <= StatePurchased
}

func (s ItemState) String() string {
	switch s {
	case StateHarvested:
		return "Harvested"
	case StateProcessed:
		return "Processed"
	case StatePacked:
		return "Packed"
	case StateForSale:
		return "ForSale"
	case StateSold:
		return "Sold"
	case StateShipped:
		return "Shipped"
	case StateReceived:
		return "Received"
	case StatePurchased:
		return "Purchased"
	default:
		return fmt.Sprintf("ItemState(%d)", uint8(s))
	}
}
