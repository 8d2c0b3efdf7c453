package stores

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sytallax/pizzaparser/internal/domain/models"
	"github.com/sytallax/pizzaparser/internal/http-server/query"
	"github.com/sytallax/pizzaparser/internal/http-server/respond"
	"github.com/sytallax/pizzaparser/internal/repository"
)

type Lister interface {
	StoresNearAddress(ctx context.Context, addr models.Address, pickup models.PickupMode) ([]models.Store, error)
}

type Options struct {
	Log           *slog.Logger
	Stores        Lister
	DefaultPickup models.PickupMode
	Timeout       time.Duration
}

// NewGetHandler serves GET /stores?street=&city=&region=&postal=&pickup=.
func NewGetHandler(opts Options) http.HandlerFunc {
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
		if opts.Stores == nil {
			log.Error("stores handler misconfigured: Lister is nil")
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

		list, err := opts.Stores.StoresNearAddress(ctx, addr, pickup)
		if err != nil {
			log.Error("StoresNearAddress failed", "err", err, "street", addr.Street)
			respond.WriteInternalError(w)
			return
		}

		metas := make([]repository.StoreMeta, 0, len(list))
		for _, s := range list {
			metas = append(metas, repository.StoreMetaFrom(s))
		}

		res := repository.StoresResult{
			FetchedAt: time.Now().UTC().Format(time.RFC3339),
			Pickup:    pickup.String(),
			Stores:    metas,
			Count:     len(metas),
		}

		respond.WriteJSON(w, 200, res)
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
