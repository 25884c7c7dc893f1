// Package pricing decides which price tier applies to a cart line.
package pricing

import "github.com/SerhiiL06/feathered-friends-marketplace/internal/domain"

// WholesaleThreshold is the quantity at which a line switches from the
// retail to the wholesale unit price. The switch is a hard step: once a
// line reaches the threshold the whole line is re-priced, not just the
// units above it.
const WholesaleThreshold = 10

func UnitPrice(price domain.Price, qty int64) float64 {
	if qty < WholesaleThreshold {
		return price.Retail
	}
	return price.Wholesale
}

// LineTotal is total for qty units at the tier-adjusted unit price.
// qty <= 0 yields 0; callers are expected to remove such entries instead.
func LineTotal(price domain.Price, qty int64) float64 {
	if qty <= 0 {
		return 0
	}
	return float64(qty) * UnitPrice(price, qty)
}
