package checkout

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// PriceSource supplies the simulated unit price for an item reference, in
// minor currency units. Injectable so tests can fix prices.
type PriceSource interface {
	UnitPrice(itemID string) int64
}

// hashPriceSource derives a stable pseudo-price from the item id, in the
// 500–10499 range. The exact distribution is not a contract, only that the
// price is positive and stable for a given id.
type hashPriceSource struct{}

func (hashPriceSource) UnitPrice(itemID string) int64 {
	h := fnv.New32a()
	h.Write([]byte(itemID))
	return 500 + int64(h.Sum32()%10000)
}

// newLineItems prices the caller's item references. base_amount is unit price
// times quantity; tax is the flat 10% floor.
func newLineItems(items []Item, prices PriceSource) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		base := prices.UnitPrice(it.ID) * int64(it.Quantity)
		tax := taxOn(base)
		out = append(out, LineItem{
			ID:         "li_" + uuid.NewString(),
			Item:       it,
			BaseAmount: base,
			Subtotal:   base,
			Tax:        tax,
			Total:      base + tax,
		})
	}
	return out
}
