package endpoints

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sytallax/pizzaparser/internal/domain/models"
)

func TestStoreLocatorRequest(t *testing.T) {
	var gotPath, gotS, gotC, gotType, gotUA string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotS = r.URL.Query().Get("s")
		gotC = r.URL.Query().Get("c")
		gotType = r.URL.Query().Get("type")
		gotUA = r.Header.Get("User-Agent")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"Stores": [{"StoreID": "1"}]}`)
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL+"/", func(req *http.Request) {
		req.Header.Set("User-Agent", "test-agent")
	})

	doc, err := c.StoreLocator(context.Background(), "123 Main St", "New York NY 10001", models.PickupCarryout)
	require.NoError(t, err)

	assert.Equal(t, "/power/store-locator", gotPath)
	assert.Equal(t, "123 Main St", gotS)
	assert.Equal(t, "New York NY 10001", gotC)
	assert.Equal(t, "Carryout", gotType)
	assert.Equal(t, "test-agent", gotUA)

	stores, ok := doc["Stores"].([]any)
	require.True(t, ok)
	assert.Len(t, stores, 1)
}

func TestStoreMenuRequest(t *testing.T) {
	var gotPath, gotLang, gotStructured string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLang = r.URL.Query().Get("lang")
		gotStructured = r.URL.Query().Get("structured")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"Products": {}}`)
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, nil)

	_, err := c.StoreMenu(context.Background(), 4336)
	require.NoError(t, err)

	assert.Equal(t, "/power/store/4336/menu", gotPath)
	assert.Equal(t, "en", gotLang)
	assert.Equal(t, "true", gotStructured)
}

func TestNonOKBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"Code": "NotFound", "Message": "store not found"}`)
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, nil)

	_, err := c.StoreMenu(context.Background(), 99999)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "store not found", apiErr.Message)
	assert.Contains(t, err.Error(), "status=404")
}

func TestBadJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>maintenance</html>`)
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, nil)

	_, err := c.StoreLocator(context.Background(), "1 Main St", "Town NY 10001", models.PickupDelivery)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad json")
	assert.Contains(t, err.Error(), "maintenance")
}

func TestEmptyBaseURL(t *testing.T) {
	c := New(http.DefaultClient, "", nil)

	_, err := c.StoreMenu(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BaseURL is empty")
}
