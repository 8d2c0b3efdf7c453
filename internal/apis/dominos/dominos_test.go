package dominos

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sytallax/pizzaparser/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAddr() models.Address {
	return models.Address{Street: "123 Main St", City: "New York", Region: "NY", PostalCode: 10001}
}

func newService(t *testing.T, handler http.HandlerFunc) DominosService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.Client(), srv.URL, testLogger())
}

const twoStoresDoc = `{"Stores": [
	{"StoreID": "4336", "IsOnlineNow": true, "ServiceIsOpen": {"Carryout": false},
	 "Address": {"Street": "1 First Ave", "City": "New York", "Region": "NY", "PostalCode": "10001"}},
	{"StoreID": "4337", "IsOnlineNow": true, "ServiceIsOpen": {"Carryout": true},
	 "Address": {"Street": "2 Second Ave", "City": "New York", "Region": "NY", "PostalCode": "10002"}}
]}`

func serveJSON(doc string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, doc)
	}
}

func TestFindStoresKeepsUpstreamOrder(t *testing.T) {
	svc := newService(t, serveJSON(twoStoresDoc))

	got := slices.Collect(svc.FindStores(context.Background(), testAddr(), models.PickupCarryout))
	require.Len(t, got, 2)

	assert.Equal(t, 4336, got[0].ID)
	assert.False(t, got[0].IsAvailable)
	assert.Equal(t, 4337, got[1].ID)
	assert.True(t, got[1].IsAvailable)
}

// The locator call must not happen before iteration starts, and every
// new iteration fetches fresh data.
func TestFindStoresIsLazy(t *testing.T) {
	var calls atomic.Int64
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		serveJSON(twoStoresDoc)(w, r)
	})

	seq := svc.FindStores(context.Background(), testAddr(), models.PickupCarryout)
	assert.EqualValues(t, 0, calls.Load())

	for range seq {
		break
	}
	assert.EqualValues(t, 1, calls.Load())

	_ = slices.Collect(seq)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFindStoresStopsAtMalformedEntry(t *testing.T) {
	doc := `{"Stores": [
		{"StoreID": "1", "Address": {"Street": "1 First Ave", "City": "Town", "Region": "NY", "PostalCode": "10001"}},
		{"Address": {"Street": "2 Second Ave", "City": "Town", "Region": "NY", "PostalCode": "10002"}},
		{"StoreID": "3", "Address": {"Street": "3 Third Ave", "City": "Town", "Region": "NY", "PostalCode": "10003"}}
	]}`
	svc := newService(t, serveJSON(doc))

	got := slices.Collect(svc.FindStores(context.Background(), testAddr(), models.PickupCarryout))

	// Everything before the bad entry survives, everything after is dropped.
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestFindStoresDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"no stores", serveJSON(`{"Stores": []}`)},
		{"missing stores key", serveJSON(`{}`)},
		{"not json", serveJSON(`<html>maintenance</html>`)},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"Message": "boom"}`, http.StatusInternalServerError)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, tt.handler)
			got := slices.Collect(svc.FindStores(context.Background(), testAddr(), models.PickupCarryout))
			assert.Empty(t, got)
		})
	}
}

func TestClosestAvailableStore(t *testing.T) {
	svc := newService(t, serveJSON(twoStoresDoc))

	store, ok := svc.ClosestAvailableStore(context.Background(), testAddr(), models.PickupCarryout)
	require.True(t, ok)
	assert.Equal(t, 4337, store.ID)
}

func TestClosestAvailableStoreNoneOpen(t *testing.T) {
	doc := `{"Stores": [
		{"StoreID": "1", "IsOnlineNow": false,
		 "Address": {"Street": "1 First Ave", "City": "Town", "Region": "NY", "PostalCode": "10001"}}
	]}`
	svc := newService(t, serveJSON(doc))

	_, ok := svc.ClosestAvailableStore(context.Background(), testAddr(), models.PickupCarryout)
	assert.False(t, ok)
}

const fullMenuDoc = `{
	"Categorization": {"Food": {"Categories": [
		{"Code": "Pizza", "Name": "Pizza", "Description": "", "Products": [],
		 "Categories": [
			{"Code": "Specialty", "Name": "Specialty", "Description": "", "Products": ["S_PIZZA"], "Categories": []}
		 ]}
	]}},
	"Products": {"S_PIZZA": {"Code": "S_PIZZA", "Name": "Pizza", "ProductType": "Pizza", "Description": "", "Variants": ["10SCREEN"]}},
	"Variants": {"10SCREEN": {"Code": "10SCREEN", "Name": "Small Hand Tossed", "Price": "9.99", "SizeCode": "10", "ProductCode": "S_PIZZA"}},
	"Coupons": {"9193": {"Code": "9193", "Name": "Carryout Deal", "Price": "7.99"}}
}`

func TestMenuForStore(t *testing.T) {
	svc := newService(t, serveJSON(fullMenuDoc))

	menu, ok := svc.MenuForStore(context.Background(), 4336)
	require.True(t, ok)

	require.Len(t, menu.Categories, 1)
	assert.Equal(t, "Pizza", menu.Categories[0].Code)
	assert.Equal(t, []string{"S_PIZZA"}, menu.Categories[0].Products.Sorted())

	require.Len(t, menu.Products, 1)
	assert.Equal(t, "S_PIZZA", menu.Products[0].Code)

	require.Len(t, menu.LineItems, 1)
	assert.True(t, menu.LineItems[0].Price.Equal(decimal.RequireFromString("9.99")))

	require.Len(t, menu.Coupons, 1)
	assert.Equal(t, "Carryout Deal $7.99", menu.Coupons[0].Name)
}

// One corrupt section empties that section only; the other three still
// come back.
func TestMenuForStoreSectionsValidateIndependently(t *testing.T) {
	doc := `{
		"Products": {"S_BAD": {"Code": "S_BAD", "Name": "No variants key", "ProductType": "Pizza", "Description": ""}},
		"Variants": {"10SCREEN": {"Code": "10SCREEN", "Name": "Small", "Price": "9.99", "SizeCode": "10", "ProductCode": "S_BAD"}},
		"Coupons": {"1": {"Code": "1", "Name": "Deal", "Price": "5.00"}}
	}`
	svc := newService(t, serveJSON(doc))

	menu, ok := svc.MenuForStore(context.Background(), 4336)
	require.True(t, ok)

	assert.Empty(t, menu.Products)
	assert.Len(t, menu.LineItems, 1)
	assert.Len(t, menu.Coupons, 1)
}

func TestMenuForStoreAbsent(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"empty document", serveJSON(`{}`)},
		{"empty sections", serveJSON(`{"Products": {}, "Variants": {}, "Coupons": {}}`)},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"Message": "no such store"}`, http.StatusNotFound)
		}},
		{"not json", serveJSON(`<html></html>`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, tt.handler)
			_, ok := svc.MenuForStore(context.Background(), 99999)
			assert.False(t, ok)
		})
	}
}
