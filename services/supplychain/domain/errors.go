package domain

import "errors"

// Sentinel errors for the supplychain domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the referenced UPC has no item record.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateUPC indicates creation was attempted for an existing UPC.
	ErrDuplicateUPC = errors.New("item already exists for upc")

	// ErrUnauthorized indicates the caller lacks the role required for the
	// attempted transition, or is not the recorded owner where ownership is required.
	ErrUnauthorized = errors.New("caller not authorized for transition")

	// ErrInvalidState indicates the item is not in the state the attempted
	// transition requires.
	ErrInvalidState = errors.New("item not in required state")

	// ErrInsufficientFunds indicates the payment offered at buy is less than
	// the recorded price, or the payer cannot cover the amount sent.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidPrice indicates a sale was attempted with a zero price.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrUnknownRole indicates a role name outside the four defined memberships.
	ErrUnknownRole = errors.New("unknown role")
)
