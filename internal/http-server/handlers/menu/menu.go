package menu

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sytallax/pizzaparser/internal/domain/models"
	"github.com/sytallax/pizzaparser/internal/http-server/query"
	"github.com/sytallax/pizzaparser/internal/http-server/respond"
	"github.com/sytallax/pizzaparser/internal/repository"
)

type Getter interface {
	MenuForStore(ctx context.Context, storeID int) (models.Menu, bool)
}

type NearestGetter interface {
	MenuNearAddress(ctx context.Context, addr models.Address, pickup models.PickupMode) (models.Store, models.Menu, error)
}

type Options struct {
	Log           *slog.Logger
	Menu          Getter
	Nearest       NearestGetter
	DefaultPickup models.PickupMode
	Timeout       time.Duration
}

// NewGetHandler serves GET /menu?storeID=.
func NewGetHandler(opts Options) http.HandlerFunc {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.WriteError(w, 405, "method_not_allowed", "GET only")
			return
		}
		if opts.Menu == nil {
			log.Error("menu handler misconfigured: Getter is nil")
			respond.WriteInternalError(w)
			return
		}

		storeID, present, err := query.IntAny(r, "storeID", "storeid")
		if err != nil {
			respond.WriteError(w, 400, "bad_request", err.Error())
			return
		}
		if !present {
			respond.WriteError(w, 400, "bad_request", "storeID is required")
			return
		}
		if storeID <= 0 {
			respond.WriteError(w, 400, "bad_request", "storeID must be > 0")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), opts.Timeout)
		defer cancel()

		m, ok := opts.Menu.MenuForStore(ctx, storeID)
		if !ok {
			respond.WriteNotFound(w, "no menu for store")
			return
		}

		respond.WriteJSON(w, 200, menuResult(nil, m))
	}
}

// NewNearestHandler serves GET /menu-near?street=&city=&region=&postal=&pickup=.
// It resolves the closest open store first and returns its menu.
func NewNearestHandler(opts Options) http.HandlerFunc {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.DefaultPickup == "" {
		opts.DefaultPickup = models.PickupCarryout
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.WriteError(w, 405, "method_not_allowed", "GET only")
			return
		}
		if opts.Nearest == nil {
			log.Error("menu handler misconfigured: NearestGetter is nil")
			respond.WriteInternalError(w)
			return
		}

		addr, ok := addressFromQuery(w, r)
		if !ok {
			return
		}

		pickup := opts.DefaultPickup
		if raw, present := query.StrAny(r, "pickup", "type"); present {
			p, err := models.ParsePickupMode(raw)
			if err != nil {
				respond.WriteError(w, 400, "bad_request", err.Error())
				return
			}
			pickup = p
		}

		ctx, cancel := context.WithTimeout(r.Context(), opts.Timeout)
		defer cancel()

		store, m, err := opts.Nearest.MenuNearAddress(ctx, addr, pickup)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				log.Error("MenuNearAddress timed out", "err", err)
				respond.WriteInternalError(w)
				return
			}
			respond.WriteNotFound(w, err.Error())
			return
		}

		meta := repository.StoreMetaFrom(store)
		respond.WriteJSON(w, 200, menuResult(&meta, m))
	}
}

func menuResult(store *repository.StoreMeta, m models.Menu) repository.MenuResult {
	return repository.MenuResult{
		FetchedAt:  time.Now().UTC().Format(time.RFC3339),
		Store:      store,
		Categories: m.Categories,
		Products:   m.Products,
		LineItems:  m.LineItems,
		Coupons:    m.Coupons,
		Counts:     repository.CountsFor(m),
	}
}

func addressFromQuery(w http.ResponseWriter, r *http.Request) (models.Address, bool) {
	var addr models.Address
	var present bool

	if addr.Street, present = query.Str(r, "street"); !present {
		respond.WriteError(w, 400, "bad_request", "street is required")
		return models.Address{}, false
	}
	if addr.City, present = query.Str(r, "city"); !present {
		respond.WriteError(w, 400, "bad_request", "city is required")
		return models.Address{}, false
	}
	if addr.Region, present = query.Str(r, "region"); !present {
		respond.WriteError(w, 400, "bad_request", "region is required")
		return models.Address{}, false
	}

	postal, present, err := query.IntAny(r, "postal", "postal_code", "zip")
	if err != nil {
		respond.WriteError(w, 400, "bad_request", err.Error())
		return models.Address{}, false
	}
	if !present {
		respond.WriteError(w, 400, "bad_request", "postal is required")
		return models.Address{}, false
	}
	addr.PostalCode = postal

	return addr, true
}
