// Package mapper validates raw API records one at a time and turns them
// into domain models. Every pass in this package shares one policy: the
// first malformed record aborts the whole pass, because a payload that has
// already produced one broken record cannot be trusted to produce good
// ones after it.
package mapper

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sytallax/pizzaparser/internal/domain/models"
)

// Store validates one raw locator entry against the requested pickup mode.
func Store(raw any, pickup models.PickupMode) (models.Store, error) {
	m, ok := asObject(raw)
	if !ok {
		return models.Store{}, fmt.Errorf("store entry is not an object")
	}

	addr, ok := asObject(m["Address"])
	if !ok {
		return models.Store{}, fmt.Errorf("store entry has no address")
	}

	street := optString(addr, "Street")
	city := optString(addr, "City")
	region := optString(addr, "Region")
	postal := optString(addr, "PostalCode")
	if street == "" && city == "" && region == "" && postal == "" {
		return models.Store{}, fmt.Errorf("store entry has an empty address")
	}

	postalCode, err := asInt(addr["PostalCode"])
	if err != nil {
		return models.Store{}, fmt.Errorf("postal code: %w", err)
	}
	id, err := asInt(m["StoreID"])
	if err != nil {
		return models.Store{}, fmt.Errorf("store id: %w", err)
	}

	return models.Store{
		ID: id,
		Address: models.Address{
			Street:     street,
			City:       city,
			Region:     region,
			PostalCode: postalCode,
		},
		IsAvailable: isAvailable(m, pickup),
	}, nil
}

// isAvailable mirrors the upstream contract: the store must be online AND
// the requested service open right now. Absent flags count as closed.
func isAvailable(m map[string]any, pickup models.PickupMode) bool {
	online, _ := m["IsOnlineNow"].(bool)
	if !online {
		return false
	}
	services, _ := m["ServiceIsOpen"].(map[string]any)
	open, _ := services[pickup.String()].(bool)
	return open
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// optString renders string-ish values and leaves everything else empty.
// Postal codes in particular show up both quoted and bare.
func optString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// asInt converts the API's int-like values: quoted digits, bare numbers,
// or json.Number depending on the endpoint and the record.
func asInt(v any) (int, error) {
	switch t := v.(type) {
	case json.Number:
		n, err := strconv.Atoi(t.String())
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", t.String())
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", t)
		}
		return n, nil
	case int:
		return t, nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("%v is not an integer", t)
		}
		return int(t), nil
	default:
		return 0, fmt.Errorf("%v is not an integer", v)
	}
}

func asDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case json.Number:
		return decimal.NewFromString(t.String())
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Decimal{}, fmt.Errorf("empty price")
		}
		return decimal.NewFromString(s)
	case float64:
		return decimal.NewFromFloat(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%v is not a number", v)
	}
}

func requireKeys(m map[string]any, keys []string) error {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return fmt.Errorf("missing key %s", k)
		}
	}
	return nil
}

func stringField(m map[string]any, key string) (string, error) {
	switch v := m[key].(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%s is not a string", key)
	}
}

func decimalField(m map[string]any, key string) (decimal.Decimal, error) {
	d, err := asDecimal(m[key])
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func stringList(m map[string]any, key string) ([]string, error) {
	arr, ok := m[key].([]any)
	if !ok {
		return nil, fmt.Errorf("%s is not a list", key)
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s contains a non-string entry", key)
		}
		out = append(out, s)
	}
	return out, nil
}
