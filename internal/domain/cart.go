package domain

import "time"

// CartLine pairs a product id with a requested quantity. Qty is always
// positive; a line that would drop to zero is removed instead of stored.
type CartLine struct {
	ProductID string    `json:"id"`
	Qty       int       `json:"qty"`
	AddedAt   time.Time `json:"addedAt"`
}
