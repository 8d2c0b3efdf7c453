package models

import "fmt"

// Address describes a North American street address. It is expected to be
// fully populated before any lookup is made with it.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode int    `json:"postal_code"`
}

// LineOne is the first of the two opaque fragments the store locator
// expects (its `s` query parameter).
func (a Address) LineOne() string {
	return a.Street
}

// LineTwo is the second locator fragment (its `c` query parameter).
func (a Address) LineTwo() string {
	return fmt.Sprintf("%s %s %d", a.City, a.Region, a.PostalCode)
}
