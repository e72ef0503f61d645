package validation

import (
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/mockcommerce/checkout-sandbox/internal/checkout"
)

// New returns a configured validator with struct-level rules registered for
// the checkout request payloads.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(createCheckoutStructValidation, CreateCheckoutRequest{})
	v.RegisterStructValidation(updateCheckoutStructValidation, UpdateCheckoutRequest{})
	return v
}

// createCheckoutStructValidation checks per-item fields; the domain Item type
// carries no validate tags so the rules live here.
func createCheckoutStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateCheckoutRequest)
	reportItemErrors(sl, req.Items)
}

func updateCheckoutStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(UpdateCheckoutRequest)
	reportItemErrors(sl, req.Items)
}

func reportItemErrors(sl validatorv10.StructLevel, items []checkout.Item) {
	for i, it := range items {
		if it.ID == "" {
			sl.ReportError(it.ID, fmt.Sprintf("items[%d].id", i), "ID", "required", "")
		}
		if it.Quantity < 1 {
			sl.ReportError(it.Quantity, fmt.Sprintf("items[%d].quantity", i), "Quantity", "min", "1")
		}
	}
}
