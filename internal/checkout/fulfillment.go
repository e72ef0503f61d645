package checkout

import (
	"time"

	"github.com/google/uuid"
)

// OptionIDPrefix namespaces fulfillment option identifiers.
const OptionIDPrefix = "fo_"

// Fixed shipping costs in minor currency units.
const (
	standardShippingCost = 100
	expressShippingCost  = 500
)

// generateOptions produces the fixed two-option shipping menu. Generated once
// per session at creation; updates never regenerate it, only reselect within
// it. The standard option comes first and is the default selection.
func generateOptions(now time.Time) []FulfillmentOption {
	day := 24 * time.Hour
	return []FulfillmentOption{
		{
			ID:                   OptionIDPrefix + uuid.NewString(),
			Title:                "Standard Shipping",
			Subtitle:             "Arrives in 4-5 business days",
			Carrier:              "USPS",
			EarliestDeliveryTime: now.Add(4 * day),
			LatestDeliveryTime:   now.Add(5 * day),
			Subtotal:             standardShippingCost,
			Tax:                  0,
			Total:                standardShippingCost,
		},
		{
			ID:                   OptionIDPrefix + uuid.NewString(),
			Title:                "Express Shipping",
			Subtitle:             "Arrives in 1-2 business days",
			Carrier:              "FedEx",
			EarliestDeliveryTime: now.Add(1 * day),
			LatestDeliveryTime:   now.Add(2 * day),
			Subtotal:             expressShippingCost,
			Tax:                  0,
			Total:                expressShippingCost,
		},
	}
}
