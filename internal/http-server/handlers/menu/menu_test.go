package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sytallax/pizzaparser/internal/domain/models"
	"github.com/sytallax/pizzaparser/internal/http-server/respond"
	"github.com/sytallax/pizzaparser/internal/repository"
)

type stubGetter struct {
	menus map[int]models.Menu
}

func (s stubGetter) MenuForStore(ctx context.Context, storeID int) (models.Menu, bool) {
	m, ok := s.menus[storeID]
	return m, ok
}

type stubNearest struct {
	store models.Store
	menu  models.Menu
	err   error
}

func (s stubNearest) MenuNearAddress(ctx context.Context, addr models.Address, pickup models.PickupMode) (models.Store, models.Menu, error) {
	return s.store, s.menu, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleMenu() models.Menu {
	return models.Menu{
		Products: []models.MenuProduct{{Code: "S_PIZZA", Name: "Pizza", Variants: models.NewCodeSet("10SCREEN")}},
		Coupons:  []models.MenuCoupon{{Code: "9193", Name: "Deal $9.99"}},
	}
}

func TestGetMenu(t *testing.T) {
	h := NewGetHandler(Options{
		Log:  testLogger(),
		Menu: stubGetter{menus: map[int]models.Menu{4336: sampleMenu()}},
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/menu?storeID=4336", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res repository.MenuResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Nil(t, res.Store)
	assert.Equal(t, 1, res.Counts.Products)
	assert.Equal(t, 1, res.Counts.Coupons)
}

func TestGetMenuNotFound(t *testing.T) {
	h := NewGetHandler(Options{Log: testLogger(), Menu: stubGetter{}})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/menu?storeID=1", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body respond.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body.Error.Code)
}

func TestGetMenuValidatesStoreID(t *testing.T) {
	h := NewGetHandler(Options{Log: testLogger(), Menu: stubGetter{}})

	for _, query := range []string{"", "storeID=abc", "storeID=0", "storeID=-1"} {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest("GET", "/menu?"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
	}
}

func TestGetMenuNear(t *testing.T) {
	h := NewNearestHandler(Options{
		Log: testLogger(),
		Nearest: stubNearest{
			store: models.Store{ID: 4337, IsAvailable: true, Address: models.Address{Street: "2 Second Ave"}},
			menu:  sampleMenu(),
		},
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/menu-near?street=123+Main+St&city=New+York&region=NY&postal=10001", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res repository.MenuResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Store)
	assert.Equal(t, 4337, res.Store.ID)
	assert.True(t, res.Store.Available)
	assert.Equal(t, 1, res.Counts.Products)
}

func TestGetMenuNearNothingFound(t *testing.T) {
	h := NewNearestHandler(Options{
		Log:     testLogger(),
		Nearest: stubNearest{err: fmt.Errorf("no store available for Carryout near \"123 Main St\"")},
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/menu-near?street=123+Main+St&city=New+York&region=NY&postal=10001", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body respond.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error.Message, "no store available")
}

func TestGetMenuNearValidatesAddress(t *testing.T) {
	h := NewNearestHandler(Options{Log: testLogger(), Nearest: stubNearest{}})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/menu-near?city=New+York", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
