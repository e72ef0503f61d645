// Package delegation mints opaque payment tokens after validating the
// payment-method/allowance/risk bundle. Independent of checkout sessions; a
// session only ever references a token id through its completion payload.
package delegation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mockcommerce/checkout-sandbox/internal/apierror"
	"github.com/mockcommerce/checkout-sandbox/internal/checkout"
	"github.com/mockcommerce/checkout-sandbox/internal/storage"
)

// TokenIDPrefix namespaces delegated payment token identifiers.
const TokenIDPrefix = "vt_"

// PaymentMethod describes the credential being delegated. Only card is
// accepted.
type PaymentMethod struct {
	Type        string `json:"type"`
	Number      string `json:"number,omitempty"`
	ExpMonth    int    `json:"exp_month,omitempty"`
	ExpYear     int    `json:"exp_year,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Allowance scopes what the minted token may be used for. Only one_time is
// accepted.
type Allowance struct {
	Reason            string     `json:"reason"`
	MaxAmount         int64      `json:"max_amount,omitempty"`
	Currency          string     `json:"currency,omitempty"`
	CheckoutSessionID string     `json:"checkout_session_id,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
}

// RiskSignal is one fraud signal accompanying the delegation request.
type RiskSignal struct {
	Type   string `json:"type"`
	Score  int    `json:"score,omitempty"`
	Action string `json:"action,omitempty"`
}

// Token is the record retained server-side. The sensitive payment method,
// allowance, and risk data live only here and are never echoed back.
type Token struct {
	ID             string            `json:"id"`
	Created        time.Time         `json:"created"`
	PaymentMethod  PaymentMethod     `json:"payment_method"`
	Allowance      Allowance         `json:"allowance"`
	BillingAddress *checkout.Address `json:"billing_address,omitempty"`
	RiskSignals    []RiskSignal      `json:"risk_signals"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// DelegateInput is the full delegation request.
type DelegateInput struct {
	PaymentMethod  PaymentMethod
	Allowance      Allowance
	BillingAddress *checkout.Address
	RiskSignals    []RiskSignal
	Metadata       map[string]string
}

// DelegateResult is the minimal-disclosure response: id, timestamp, and the
// caller's own metadata, nothing else.
type DelegateResult struct {
	ID       string            `json:"id"`
	Created  time.Time         `json:"created"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Issuer validates delegation requests and stores minted tokens.
type Issuer struct {
	records storage.RecordStore
	nowFunc func() time.Time
}

// NewIssuer wraps a record store.
func NewIssuer(records storage.RecordStore) *Issuer {
	return &Issuer{records: records, nowFunc: time.Now}
}

// Delegate validates the bundle and mints a token. All validation happens
// before the write; a rejected request stores nothing.
func (i *Issuer) Delegate(ctx context.Context, in DelegateInput) (*DelegateResult, error) {
	if in.PaymentMethod.Type != "card" {
		return nil, apierror.InvalidCard("unsupported payment method type %q, only card is accepted", in.PaymentMethod.Type)
	}
	if in.Allowance.Reason != "one_time" {
		return nil, apierror.InvalidAllowance("unsupported allowance reason %q, only one_time is accepted", in.Allowance.Reason)
	}
	if len(in.RiskSignals) == 0 {
		return nil, apierror.Invalid("risk_signals", "at least one risk signal is required")
	}

	token := &Token{
		ID:             TokenIDPrefix + uuid.NewString(),
		Created:        i.nowFunc().UTC(),
		PaymentMethod:  in.PaymentMethod,
		Allowance:      in.Allowance,
		BillingAddress: in.BillingAddress,
		RiskSignals:    in.RiskSignals,
		Metadata:       in.Metadata,
	}
	data, err := json.Marshal(token)
	if err != nil {
		return nil, apierror.Internal(fmt.Errorf("marshal token: %w", err))
	}
	created, err := i.records.PutIfAbsent(ctx, token.ID, data)
	if err != nil {
		return nil, apierror.Internal(fmt.Errorf("store token: %w", err))
	}
	if !created {
		return nil, apierror.Internal(fmt.Errorf("token id collision: %s", token.ID))
	}
	return &DelegateResult{ID: token.ID, Created: token.Created, Metadata: token.Metadata}, nil
}

// Get fetches a stored token by id. Returns (nil, nil) if not found.
func (i *Issuer) Get(ctx context.Context, id string) (*Token, error) {
	data, err := i.records.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("unmarshal token: %w", err)
	}
	return &token, nil
}

// Count reports the number of minted tokens, for health reporting.
func (i *Issuer) Count(ctx context.Context) (int, error) {
	return i.records.Size(ctx)
}
