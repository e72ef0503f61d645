package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mockcommerce/checkout-sandbox/internal/apierror"
	"github.com/mockcommerce/checkout-sandbox/internal/orders"
)

// SessionIDPrefix namespaces checkout session identifiers.
const SessionIDPrefix = "checkout_"

// DefaultCurrency is the single currency of the sandbox.
const DefaultCurrency = "usd"

// CreateInput carries the fields accepted at session creation.
type CreateInput struct {
	Items              []Item
	Buyer              *Buyer
	FulfillmentAddress *Address
}

// UpdateInput carries the optional fields of a session update. A nil Items
// slice means "unchanged"; a supplied one wholesale-replaces the line items.
type UpdateInput struct {
	Items               []Item
	FulfillmentAddress  *Address
	FulfillmentOptionID string
}

// PaymentData is the payment credential reference presented at completion.
type PaymentData struct {
	Token          string   `json:"token"`
	Provider       string   `json:"provider,omitempty"`
	BillingAddress *Address `json:"billing_address,omitempty"`
}

// Engine is the session lifecycle state machine. Every mutating operation
// validates first, then applies all changes and recomputes totals before
// writing the snapshot back, so a failed request never leaves a partial
// write. Mutations on the same session id are serialized by a per-session
// lock; distinct sessions proceed in parallel.
type Engine struct {
	sessions *SessionStore
	orders   *orders.Store
	prices   PriceSource
	nowFunc  func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEngine wires the engine to its stores.
func NewEngine(sessions *SessionStore, orderStore *orders.Store) *Engine {
	return &Engine{
		sessions: sessions,
		orders:   orderStore,
		prices:   hashPriceSource{},
		nowFunc:  time.Now,
		locks:    map[string]*sync.Mutex{},
	}
}

func (e *Engine) sessionLock(id string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.locks[id]
	if !ok {
		m = &sync.Mutex{}
		e.locks[id] = m
	}
	return m
}

// Create builds a new session in ready_for_payment: priced line items, the
// fixed fulfillment menu with the standard option preselected, and the full
// totals breakdown.
func (e *Engine) Create(ctx context.Context, in CreateInput) (*Session, error) {
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	now := e.nowFunc().UTC()
	options := generateOptions(now)
	sess := &Session{
		ID:                  SessionIDPrefix + uuid.NewString(),
		Status:              StatusReadyForPayment,
		Currency:            DefaultCurrency,
		LineItems:           newLineItems(in.Items, e.prices),
		FulfillmentAddress:  in.FulfillmentAddress,
		FulfillmentOptions:  options,
		FulfillmentOptionID: options[0].ID,
		Messages:            []Message{},
		Buyer:               in.Buyer,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	sess.Totals = computeTotals(sess.LineItems, sess.SelectedOption())
	if err := e.sessions.Put(ctx, sess); err != nil {
		return nil, apierror.Internal(err)
	}
	return sess, nil
}

// Retrieve returns the current snapshot. Pure read, no mutation.
func (e *Engine) Retrieve(ctx context.Context, id string) (*Session, error) {
	sess, err := e.sessions.Get(ctx, id)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	if sess == nil {
		return nil, apierror.NotFound("no checkout session with id %q", id)
	}
	return sess, nil
}

// Update applies the supplied fields to a ready_for_payment session. All
// validation happens before any field is touched; totals are recomputed
// unconditionally afterwards.
func (e *Engine) Update(ctx context.Context, id string, in UpdateInput) (*Session, error) {
	lock := e.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := e.Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.terminal() {
		return nil, apierror.InvalidStatus("checkout session %s is %s and can no longer be updated", id, sess.Status)
	}
	if in.Items != nil {
		if err := validateItems(in.Items); err != nil {
			return nil, err
		}
	}
	if in.FulfillmentOptionID != "" && !hasOption(sess.FulfillmentOptions, in.FulfillmentOptionID) {
		return nil, apierror.Invalid("fulfillment_option_id", "unknown fulfillment option %q", in.FulfillmentOptionID)
	}

	if in.Items != nil {
		sess.LineItems = newLineItems(in.Items, e.prices)
	}
	if in.FulfillmentAddress != nil {
		sess.FulfillmentAddress = in.FulfillmentAddress
	}
	if in.FulfillmentOptionID != "" {
		sess.FulfillmentOptionID = in.FulfillmentOptionID
	}
	sess.Totals = computeTotals(sess.LineItems, sess.SelectedOption())
	sess.UpdatedAt = e.nowFunc().UTC()

	if err := e.sessions.Put(ctx, sess); err != nil {
		return nil, apierror.Internal(err)
	}
	return sess, nil
}

// Complete transitions a ready_for_payment session to completed, creating
// exactly one order. Irreversible: a second call fails with invalid_status
// and never mints a second order.
func (e *Engine) Complete(ctx context.Context, id string, buyer *Buyer, payment PaymentData) (*Session, error) {
	lock := e.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := e.Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Status != StatusReadyForPayment {
		return nil, apierror.InvalidStatus("checkout session %s is %s and cannot be completed", id, sess.Status)
	}
	if payment.Token == "" {
		return nil, apierror.Invalid("payment_data.token", "payment token is required")
	}

	order, err := e.orders.CreateForSession(ctx, id)
	if err != nil {
		if errors.Is(err, orders.ErrAlreadyExists) {
			return nil, apierror.InvalidStatus("checkout session %s already has an order", id)
		}
		return nil, apierror.Internal(fmt.Errorf("create order: %w", err))
	}

	sess.Status = StatusCompleted
	if buyer != nil {
		sess.Buyer = buyer
	}
	sess.Order = order
	sess.UpdatedAt = e.nowFunc().UTC()

	if err := e.sessions.Put(ctx, sess); err != nil {
		return nil, apierror.Internal(err)
	}
	return sess, nil
}

// Cancel transitions a ready_for_payment session to canceled and writes the
// single cancellation notice. Cancelling a terminal session is rejected with
// the distinct session_not_cancelable code.
func (e *Engine) Cancel(ctx context.Context, id string) (*Session, error) {
	lock := e.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := e.Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.terminal() {
		return nil, apierror.NotCancelable("checkout session %s is already %s", id, sess.Status)
	}

	sess.Status = StatusCanceled
	sess.Messages = []Message{{Type: "info", Content: "Checkout session was canceled."}}
	sess.UpdatedAt = e.nowFunc().UTC()

	if err := e.sessions.Put(ctx, sess); err != nil {
		return nil, apierror.Internal(err)
	}
	return sess, nil
}

// Count reports the number of live sessions, for health reporting.
func (e *Engine) Count(ctx context.Context) (int, error) {
	return e.sessions.Count(ctx)
}

func validateItems(items []Item) *apierror.Error {
	if len(items) == 0 {
		return apierror.Invalid("items", "items must be a non-empty array")
	}
	for i, it := range items {
		if it.ID == "" {
			return apierror.Invalid(fmt.Sprintf("items[%d].id", i), "item id is required")
		}
		if it.Quantity < 1 {
			return apierror.Invalid(fmt.Sprintf("items[%d].quantity", i), "quantity must be at least 1")
		}
	}
	return nil
}

func hasOption(options []FulfillmentOption, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}
