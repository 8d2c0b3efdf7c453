package endpoints

import (
	"context"
	"fmt"
)

// Menu documents run to a few megabytes for busy stores.
const menuBodyLimit = 4 * 1024 * 1024

// StoreMenu fetches the raw structured menu document for one store.
func (c *Client) StoreMenu(ctx context.Context, storeID int) (map[string]any, error) {
	path := fmt.Sprintf("/power/store/%d/menu?lang=en&structured=true", storeID)
	return c.getJSON(ctx, path, menuBodyLimit)
}
