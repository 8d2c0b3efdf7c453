package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sytallax/pizzaparser/internal/apis/dominos"
	"github.com/sytallax/pizzaparser/internal/domain/models"
)

// NearestMenuService answers the one question the CLI and the API both
// ask: given an address, which store would take the order and what is on
// its menu. It is the error-returning edge over the degrading client.
type NearestMenuService struct {
	dominos dominos.DominosService
	log     *slog.Logger
}

func NewNearestMenuService(svc dominos.DominosService, logger *slog.Logger) *NearestMenuService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NearestMenuService{dominos: svc, log: logger}
}

// MenuNearAddress resolves the closest available store for the address
// and fetches its menu. Unlike the client underneath, it reports "nothing
// found" as an error, because callers here asked for a concrete result.
func (s *NearestMenuService) MenuNearAddress(ctx context.Context, addr models.Address, pickup models.PickupMode) (models.Store, models.Menu, error) {
	if err := ctx.Err(); err != nil {
		return models.Store{}, models.Menu{}, err
	}

	s.log.Info("resolve nearest store",
		"line_one", addr.LineOne(),
		"line_two", addr.LineTwo(),
		"pickup", pickup.String(),
	)

	store, ok := s.dominos.ClosestAvailableStore(ctx, addr, pickup)
	if !ok {
		return models.Store{}, models.Menu{}, fmt.Errorf("no store available for %s near %q", pickup, addr.LineOne())
	}

	menu, ok := s.dominos.MenuForStore(ctx, store.ID)
	if !ok {
		return store, models.Menu{}, fmt.Errorf("menu unavailable for store %d", store.ID)
	}

	s.log.Info("menu fetched",
		"store_id", store.ID,
		"categories", len(menu.Categories),
		"products", len(menu.Products),
		"line_items", len(menu.LineItems),
		"coupons", len(menu.Coupons),
	)

	return store, menu, nil
}

// StoresNearAddress materializes the lazy store sequence for callers that
// want the whole list, such as the HTTP handlers.
func (s *NearestMenuService) StoresNearAddress(ctx context.Context, addr models.Address, pickup models.PickupMode) ([]models.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Store, 0, 16)
	for store := range s.dominos.FindStores(ctx, addr, pickup) {
		out = append(out, store)
	}

	s.log.Info("stores resolved",
		"line_one", addr.LineOne(),
		"pickup", pickup.String(),
		"count", len(out),
	)

	return out, nil
}
