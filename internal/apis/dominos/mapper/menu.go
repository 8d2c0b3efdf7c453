package mapper

import (
	"fmt"
	"maps"
	"regexp"
	"slices"

	"github.com/sytallax/pizzaparser/internal/domain/models"
)

var (
	categoryKeys = []string{"Categories", "Code", "Name", "Description", "Products"}
	productKeys  = []string{"Code", "Name", "ProductType", "Description", "Variants"}
	lineItemKeys = []string{"Code", "Name", "Price", "SizeCode", "ProductCode"}
	couponKeys   = []string{"Code", "Name", "Price"}
)

// couponPriceRe matches a dollar price already present in a coupon name,
// e.g. "2 Medium Pizzas $5.99 Each".
var couponPriceRe = regexp.MustCompile(`\$\d{1,2}\.\d{2}`)

// Categories flattens the category tree into one record per top-level
// node. A node's own product list wins; subcategories are only consulted
// when the node lists no products of its own.
func Categories(raw []any) ([]models.MenuCategory, error) {
	out := make([]models.MenuCategory, 0, len(raw))
	for i, node := range raw {
		m, ok := asObject(node)
		if !ok {
			return nil, fmt.Errorf("category %d is not an object", i)
		}
		if err := requireKeys(m, categoryKeys); err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
		code, err := stringField(m, "Code")
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
		name, err := stringField(m, "Name")
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", code, err)
		}
		products, err := categoryProducts(m)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", code, err)
		}
		out = append(out, models.MenuCategory{
			Code:        code,
			Name:        name,
			Description: optString(m, "Description"),
			Products:    products,
		})
	}
	return out, nil
}

// categoryProducts collects the product codes reachable from one node.
// The node has already passed requireKeys.
func categoryProducts(m map[string]any) (models.CodeSet, error) {
	direct, err := stringList(m, "Products")
	if err != nil {
		return nil, err
	}
	if len(direct) > 0 {
		return models.NewCodeSet(direct...), nil
	}

	children, ok := m["Categories"].([]any)
	if !ok {
		return nil, fmt.Errorf("Categories is not a list")
	}
	set := models.NewCodeSet()
	for i, child := range children {
		cm, ok := asObject(child)
		if !ok {
			return nil, fmt.Errorf("subcategory %d is not an object", i)
		}
		if err := requireKeys(cm, categoryKeys); err != nil {
			return nil, fmt.Errorf("subcategory %d: %w", i, err)
		}
		sub, err := categoryProducts(cm)
		if err != nil {
			return nil, fmt.Errorf("subcategory %d: %w", i, err)
		}
		set.Union(sub)
	}
	return set, nil
}

// Products validates the flat product table. Iteration is in sorted key
// order so a bad payload always fails on the same record.
func Products(raw map[string]any) ([]models.MenuProduct, error) {
	out := make([]models.MenuProduct, 0, len(raw))
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		m, ok := asObject(raw[key])
		if !ok {
			return nil, fmt.Errorf("product %q is not an object", key)
		}
		if err := requireKeys(m, productKeys); err != nil {
			return nil, fmt.Errorf("product %q: %w", key, err)
		}
		code, err := stringField(m, "Code")
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", key, err)
		}
		name, err := stringField(m, "Name")
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", key, err)
		}
		variants, err := stringList(m, "Variants")
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", key, err)
		}
		out = append(out, models.MenuProduct{
			Code:        code,
			Name:        name,
			Description: optString(m, "Description"),
			Variants:    models.NewCodeSet(variants...),
		})
	}
	return out, nil
}

// LineItems validates the variant table, the only place the menu carries
// orderable prices. Prices must parse and must not be negative.
func LineItems(raw map[string]any) ([]models.MenuLineItem, error) {
	out := make([]models.MenuLineItem, 0, len(raw))
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		m, ok := asObject(raw[key])
		if !ok {
			return nil, fmt.Errorf("variant %q is not an object", key)
		}
		if err := requireKeys(m, lineItemKeys); err != nil {
			return nil, fmt.Errorf("variant %q: %w", key, err)
		}
		code, err := stringField(m, "Code")
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", key, err)
		}
		name, err := stringField(m, "Name")
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", key, err)
		}
		productCode, err := stringField(m, "ProductCode")
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", key, err)
		}
		price, err := decimalField(m, "Price")
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", key, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("variant %q: negative price %s", key, price)
		}
		out = append(out, models.MenuLineItem{
			Code:        code,
			Name:        name,
			ProductCode: productCode,
			Price:       price,
		})
	}
	return out, nil
}

// Coupons validates the coupon table. The price is cosmetic here: when
// the name does not already quote one, a parseable price is appended so
// the coupon reads like the storefront shows it.
func Coupons(raw map[string]any) ([]models.MenuCoupon, error) {
	out := make([]models.MenuCoupon, 0, len(raw))
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		m, ok := asObject(raw[key])
		if !ok {
			return nil, fmt.Errorf("coupon %q is not an object", key)
		}
		if err := requireKeys(m, couponKeys); err != nil {
			return nil, fmt.Errorf("coupon %q: %w", key, err)
		}
		code, err := stringField(m, "Code")
		if err != nil {
			return nil, fmt.Errorf("coupon %q: %w", key, err)
		}
		name, err := stringField(m, "Name")
		if err != nil {
			return nil, fmt.Errorf("coupon %q: %w", key, err)
		}
		out = append(out, models.MenuCoupon{
			Code: code,
			Name: couponDisplayName(name, m["Price"]),
		})
	}
	return out, nil
}

// couponDisplayName appends the coupon price to the name unless the name
// already quotes one. An unparseable price drops the suffix, not the
// coupon.
func couponDisplayName(name string, price any) string {
	if couponPriceRe.MatchString(name) {
		return name
	}
	d, err := asDecimal(price)
	if err != nil {
		return name
	}
	return name + " $" + d.StringFixed(2)
}
