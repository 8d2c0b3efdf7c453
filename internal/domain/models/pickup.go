package models

import (
	"fmt"
	"strings"
)

// PickupMode selects how an order would be fulfilled. The value is used
// verbatim by the upstream API, both as the ServiceIsOpen key and in the
// store-locator query, so the canonical spellings below must not change.
type PickupMode string

const (
	PickupDelivery PickupMode = "Delivery"
	PickupCarryout PickupMode = "Carryout"
)

// ParsePickupMode maps user input of any case to a known pickup mode.
func ParsePickupMode(s string) (PickupMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "delivery":
		return PickupDelivery, nil
	case "carryout":
		return PickupCarryout, nil
	default:
		return "", fmt.Errorf("unknown pickup mode %q (expected Delivery|Carryout)", s)
	}
}

func (m PickupMode) String() string {
	return string(m)
}
