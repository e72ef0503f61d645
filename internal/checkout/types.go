// Package checkout implements the checkout session lifecycle: the state
// machine over session status, deterministic recomputation of price totals on
// every mutation, and the validation contract for out-of-sequence requests.
package checkout

import (
	"time"

	"github.com/mockcommerce/checkout-sandbox/internal/orders"
)

// Session statuses. ready_for_payment is the only non-terminal state.
const (
	StatusReadyForPayment = "ready_for_payment"
	StatusCompleted       = "completed"
	StatusCanceled        = "canceled"
)

// Totals breakdown types, in display order.
const (
	TotalTypeItemsBaseAmount = "items_base_amount"
	TotalTypeSubtotal        = "subtotal"
	TotalTypeTax             = "tax"
	TotalTypeFulfillment     = "fulfillment"
	TotalTypeTotal           = "total"
)

// Item is the caller-supplied reference to a purchasable item.
type Item struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// LineItem is a priced unit for one item reference. All amounts are integer
// minor currency units.
type LineItem struct {
	ID         string `json:"id"`
	Item       Item   `json:"item"`
	BaseAmount int64  `json:"base_amount"`
	Subtotal   int64  `json:"subtotal"`
	Tax        int64  `json:"tax"`
	Total      int64  `json:"total"`
}

// FulfillmentOption is a shipping method with cost and a delivery window.
type FulfillmentOption struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Subtitle             string    `json:"subtitle,omitempty"`
	Carrier              string    `json:"carrier,omitempty"`
	EarliestDeliveryTime time.Time `json:"earliest_delivery_time"`
	LatestDeliveryTime   time.Time `json:"latest_delivery_time"`
	Subtotal             int64     `json:"subtotal"`
	Tax                  int64     `json:"tax"`
	Total                int64     `json:"total"`
}

// Total is one named component of the price breakdown.
type Total struct {
	Type        string `json:"type"`
	DisplayText string `json:"display_text"`
	Amount      int64  `json:"amount"`
}

// Address is a fulfillment or billing address.
type Address struct {
	Name       string `json:"name,omitempty"`
	LineOne    string `json:"line_one"`
	LineTwo    string `json:"line_two,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Buyer identifies the purchasing customer.
type Buyer struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Message is a human-readable notice attached to a session.
type Message struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Session is the central checkout entity. Line items, the address, and the
// selected option are replaced wholesale on update; totals are always the
// pricing calculator's output for the current state, never patched.
type Session struct {
	ID                  string              `json:"id"`
	Status              string              `json:"status"`
	Currency            string              `json:"currency"`
	LineItems           []LineItem          `json:"line_items"`
	FulfillmentAddress  *Address            `json:"fulfillment_address,omitempty"`
	FulfillmentOptions  []FulfillmentOption `json:"fulfillment_options"`
	FulfillmentOptionID string              `json:"fulfillment_option_id"`
	Totals              []Total             `json:"totals"`
	Messages            []Message           `json:"messages"`
	Buyer               *Buyer              `json:"buyer,omitempty"`
	Order               *orders.Order       `json:"order,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// SelectedOption returns the fulfillment option the session currently points
// at, or nil if the id dangles (which the engine never allows to persist).
func (s *Session) SelectedOption() *FulfillmentOption {
	for i := range s.FulfillmentOptions {
		if s.FulfillmentOptions[i].ID == s.FulfillmentOptionID {
			return &s.FulfillmentOptions[i]
		}
	}
	return nil
}

// terminal reports whether the session can no longer be mutated.
func (s *Session) terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusCanceled
}
