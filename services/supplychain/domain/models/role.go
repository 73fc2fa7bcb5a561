package models

import "fmt"

// Role names one of the four custody-chain memberships. An identity may hold
// more than one role; membership is additive only.
type Role string

const (
	RoleFarmer      Role = "farmer"
	RoleDistributor Role = "distributor"
	RoleRetailer    Role = "retailer"
	RoleConsumer    Role = "consumer"
)

// Roles lists all defined roles in custody-chain order.
func Roles() []Role {
	return []Role{RoleFarmer, RoleDistributor, RoleRetailer, RoleConsumer}
}

// ParseRole converts s into a Role or returns an error for unknown names.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleFarmer, RoleDistributor, RoleRetailer, RoleConsumer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	return string(r)
}
