package order

import (
	"fmt"
	"time"
)

const (
	// PrefixKitchen marks orders sent to the kitchen without settlement.
	PrefixKitchen = "PED"
	// PrefixSale marks orders created by an immediate sale.
	PrefixSale = "VEN"
)

// NewNumber builds the human-readable order number: prefix plus the last six
// digits of the epoch-millisecond timestamp, e.g. PED482913. The suffix
// recurs over time; identity lives in the order id, this is a display handle.
func NewNumber(prefix string, now time.Time) string {
	ms := fmt.Sprintf("%d", now.UnixMilli())
	return prefix + ms[len(ms)-6:]
}
