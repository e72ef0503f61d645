package validation

import (
	"github.com/mockcommerce/checkout-sandbox/internal/checkout"
	"github.com/mockcommerce/checkout-sandbox/internal/delegation"
)

// CreateCheckoutRequest is the payload for POST /checkout_sessions.
type CreateCheckoutRequest struct {
	Items              []checkout.Item   `json:"items" validate:"required,min=1,dive"`
	Buyer              *checkout.Buyer   `json:"buyer,omitempty"`
	FulfillmentAddress *checkout.Address `json:"fulfillment_address,omitempty"`
}

// UpdateCheckoutRequest is the payload for POST /checkout_sessions/:id.
// Omitted fields leave the session unchanged; supplied fields replace the
// prior value wholesale.
type UpdateCheckoutRequest struct {
	Items               []checkout.Item   `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	FulfillmentAddress  *checkout.Address `json:"fulfillment_address,omitempty"`
	FulfillmentOptionID string            `json:"fulfillment_option_id,omitempty"`
}

// CompleteCheckoutRequest is the payload for POST /checkout_sessions/:id/complete.
type CompleteCheckoutRequest struct {
	Buyer       *checkout.Buyer      `json:"buyer,omitempty"`
	PaymentData checkout.PaymentData `json:"payment_data" validate:"required"`
}

// DelegatePaymentRequest is the payload for POST /agentic_commerce/delegate_payment.
// The card-type, allowance-reason, and risk-signal rules live in the issuer so
// their distinct error codes survive; only the JSON shape is checked here.
type DelegatePaymentRequest struct {
	PaymentMethod  delegation.PaymentMethod `json:"payment_method"`
	Allowance      delegation.Allowance     `json:"allowance"`
	BillingAddress *checkout.Address        `json:"billing_address,omitempty"`
	RiskSignals    []delegation.RiskSignal  `json:"risk_signals"`
	Metadata       map[string]string        `json:"metadata,omitempty"`
}
