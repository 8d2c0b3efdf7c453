package models

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// CodeSet is an unordered set of upstream codes. It marshals as a sorted
// array so saved results stay diffable run to run.
type CodeSet map[string]struct{}

func NewCodeSet(codes ...string) CodeSet {
	s := make(CodeSet, len(codes))
	for _, c := range codes {
		s.Add(c)
	}
	return s
}

func (s CodeSet) Add(code string) {
	s[code] = struct{}{}
}

func (s CodeSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

func (s CodeSet) Len() int {
	return len(s)
}

// Union adds every code of other into s.
func (s CodeSet) Union(other CodeSet) {
	for c := range other {
		s[c] = struct{}{}
	}
}

func (s CodeSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

func (s CodeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *CodeSet) UnmarshalJSON(b []byte) error {
	var codes []string
	if err := json.Unmarshal(b, &codes); err != nil {
		return err
	}
	*s = NewCodeSet(codes...)
	return nil
}

// MenuCategory is one top-level node of a store's food-categorization
// tree, flattened: Products holds every product code reachable under it.
// The codes reference MenuProduct.Code by value only, so categories and
// products can be rebuilt independently of each other.
type MenuCategory struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Products    CodeSet `json:"products"`
}

// MenuProduct is an orderable product (a pizza, a side, a drink).
type MenuProduct struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Variants    CodeSet `json:"variants"`
}

// MenuLineItem is one purchasable variant of a product, the thing an
// order line actually names. Price is never negative once constructed.
type MenuLineItem struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	ProductCode string          `json:"product_code"`
	Price       decimal.Decimal `json:"price"`
}

// MenuCoupon is a promotional code. Name carries a trailing dollar amount
// when the upstream record priced it without spelling the price out.
type MenuCoupon struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Menu is the normalized catalog for one store.
type Menu struct {
	Categories []MenuCategory `json:"categories"`
	Products   []MenuProduct  `json:"products"`
	LineItems  []MenuLineItem `json:"line_items"`
	Coupons    []MenuCoupon   `json:"coupons"`
}

// Empty reports whether no section of the catalog was populated.
func (m Menu) Empty() bool {
	return len(m.Categories) == 0 &&
		len(m.Products) == 0 &&
		len(m.LineItems) == 0 &&
		len(m.Coupons) == 0
}
