package endpoints

import (
	"context"
	"net/url"

	"github.com/sytallax/pizzaparser/internal/domain/models"
)

const locatorBodyLimit = 512 * 1024

// StoreLocator fetches the raw store-locator document for an address split
// into the two opaque fragments the API expects. The pickup mode rides
// along so the upstream can rank by the requested service.
func (c *Client) StoreLocator(ctx context.Context, lineOne, lineTwo string, pickup models.PickupMode) (map[string]any, error) {
	q := url.Values{}
	q.Set("s", lineOne)
	q.Set("c", lineTwo)
	q.Set("type", pickup.String())

	return c.getJSON(ctx, "/power/store-locator?"+q.Encode(), locatorBodyLimit)
}
