// Package dominos is a read-only client for the Dominos ordering API:
// store discovery near an address and store menus normalized into domain
// models. Operations degrade instead of failing; callers get empty
// results and the reason lands in the log.
package dominos

import (
	"context"
	"iter"
	"log/slog"
	"net/http"

	"github.com/sytallax/pizzaparser/internal/apis/dominos/endpoints"
	"github.com/sytallax/pizzaparser/internal/apis/dominos/mapper"
	"github.com/sytallax/pizzaparser/internal/apis/dominos/responses"
	"github.com/sytallax/pizzaparser/internal/client"
	"github.com/sytallax/pizzaparser/internal/domain/models"
)

type Address = models.Address
type PickupMode = models.PickupMode
type Store = models.Store
type Menu = models.Menu

type DominosService interface {
	// FindStores yields the stores serving addr, nearest first. The
	// sequence is lazy: the locator call happens when iteration starts,
	// and ranging a second time issues a fresh call.
	FindStores(ctx context.Context, addr Address, pickup PickupMode) iter.Seq[Store]

	// ClosestAvailableStore returns the nearest store currently open for
	// the given pickup mode, or false when no store qualifies.
	ClosestAvailableStore(ctx context.Context, addr Address, pickup PickupMode) (Store, bool)

	// MenuForStore fetches and normalizes a store's menu. False means the
	// store had no menu to offer, not that parts of it failed validation.
	MenuForStore(ctx context.Context, storeID int) (Menu, bool)
}

type service struct {
	api *endpoints.Client
	log *slog.Logger
}

func New(transport client.Transport, baseURL string, logger *slog.Logger) DominosService {
	if baseURL == "" {
		baseURL = "https://order.dominos.com"
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &service{log: logger}
	s.api = endpoints.New(transport, baseURL, s.applyDefaultHeaders)
	return s
}

func (s *service) applyDefaultHeaders(req *http.Request) {
	req.Header.Set(
		"User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) "+
			"AppleWebKit/537.36 (KHTML, like Gecko) "+
			"Chrome/144.0.0.0 Safari/537.36",
	)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://order.dominos.com/")
}

func (s *service) FindStores(ctx context.Context, addr Address, pickup PickupMode) iter.Seq[Store] {
	return func(yield func(Store) bool) {
		doc, err := s.api.StoreLocator(ctx, addr.LineOne(), addr.LineTwo(), pickup)
		if err != nil {
			s.log.Error("store locator request failed", "error", err)
			return
		}

		locator := responses.ParseLocatorDocument(doc)
		if len(locator.Stores) == 0 {
			s.log.Warn("no stores found near address",
				"line_one", addr.LineOne(),
				"line_two", addr.LineTwo(),
			)
			return
		}

		for i, raw := range locator.Stores {
			store, err := mapper.Store(raw, pickup)
			if err != nil {
				// One bad entry means the rest of the list cannot be
				// trusted either.
				s.log.Warn("malformed store entry, dropping the rest",
					"index", i,
					"error", err,
				)
				return
			}
			if !yield(store) {
				return
			}
		}
	}
}

func (s *service) ClosestAvailableStore(ctx context.Context, addr Address, pickup PickupMode) (Store, bool) {
	for store := range s.FindStores(ctx, addr, pickup) {
		if store.IsAvailable {
			return store, true
		}
	}
	return Store{}, false
}

func (s *service) MenuForStore(ctx context.Context, storeID int) (Menu, bool) {
	doc, err := s.api.StoreMenu(ctx, storeID)
	if err != nil {
		s.log.Error("menu request failed", "store_id", storeID, "error", err)
		return Menu{}, false
	}

	raw := responses.ParseMenuDocument(doc)
	if raw.Empty() {
		s.log.Warn("store returned an empty menu", "store_id", storeID)
		return Menu{}, false
	}

	// The four sections validate independently so one corrupt table does
	// not take the rest of the menu down with it.
	var menu Menu
	if categories, err := mapper.Categories(raw.Categories); err != nil {
		s.log.Warn("dropping menu categories", "store_id", storeID, "error", err)
	} else {
		menu.Categories = categories
	}
	if products, err := mapper.Products(raw.Products); err != nil {
		s.log.Warn("dropping menu products", "store_id", storeID, "error", err)
	} else {
		menu.Products = products
	}
	if items, err := mapper.LineItems(raw.Variants); err != nil {
		s.log.Warn("dropping menu line items", "store_id", storeID, "error", err)
	} else {
		menu.LineItems = items
	}
	if coupons, err := mapper.Coupons(raw.Coupons); err != nil {
		s.log.Warn("dropping menu coupons", "store_id", storeID, "error", err)
	} else {
		menu.Coupons = coupons
	}

	return menu, true
}
