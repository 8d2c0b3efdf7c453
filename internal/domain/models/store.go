package models

// Store is one candidate store emitted by the locator, in upstream order.
// IsAvailable is tied to the pickup mode the lookup was made with: the
// store is online right now and the requested service is open.
type Store struct {
	ID          int     `json:"id"`
	Address     Address `json:"address"`
	IsAvailable bool    `json:"is_available"`
}
