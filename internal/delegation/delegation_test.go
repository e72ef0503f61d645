package delegation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mockcommerce/checkout-sandbox/internal/apierror"
	"github.com/mockcommerce/checkout-sandbox/internal/storage"
)

func validInput() DelegateInput {
	return DelegateInput{
		PaymentMethod: PaymentMethod{Type: "card", Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030},
		Allowance:     Allowance{Reason: "one_time", MaxAmount: 5000, Currency: "usd", CheckoutSessionID: "checkout_abc"},
		RiskSignals:   []RiskSignal{{Type: "card_testing", Score: 5, Action: "authorized"}},
		Metadata:      map[string]string{"source": "test"},
	}
}

func TestDelegate_MintsToken(t *testing.T) {
	issuer := NewIssuer(storage.NewMemoryStore())
	issuer.nowFunc = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	result, err := issuer.Delegate(ctx, validInput())
	if err != nil {
		t.Fatalf("Delegate error: %v", err)
	}
	if !strings.HasPrefix(result.ID, TokenIDPrefix) {
		t.Fatalf("token id %q missing %s prefix", result.ID, TokenIDPrefix)
	}
	if result.Created.IsZero() {
		t.Fatalf("created timestamp missing")
	}
	if result.Metadata["source"] != "test" {
		t.Fatalf("metadata not echoed")
	}

	// sensitive data is retained server-side, retrievable only internally
	token, err := issuer.Get(ctx, result.ID)
	if err != nil || token == nil {
		t.Fatalf("stored token not found: %v", err)
	}
	if token.PaymentMethod.Number != "4242424242424242" {
		t.Fatalf("payment method not retained")
	}
	if n, _ := issuer.Count(ctx); n != 1 {
		t.Fatalf("token count = %d, want 1", n)
	}
}

func TestDelegate_RejectsNonCard(t *testing.T) {
	issuer := NewIssuer(storage.NewMemoryStore())
	in := validInput()
	in.PaymentMethod.Type = "paypal"

	_, err := issuer.Delegate(context.Background(), in)
	var ae *apierror.Error
	if !errors.As(err, &ae) || ae.Code != apierror.CodeInvalidCard {
		t.Fatalf("expected invalid_card, got %v", err)
	}
	if n, _ := issuer.Count(context.Background()); n != 0 {
		t.Fatalf("rejected request stored a token")
	}
}

func TestDelegate_RejectsNonOneTimeAllowance(t *testing.T) {
	issuer := NewIssuer(storage.NewMemoryStore())
	in := validInput()
	in.Allowance.Reason = "recurring"

	_, err := issuer.Delegate(context.Background(), in)
	var ae *apierror.Error
	if !errors.As(err, &ae) || ae.Code != apierror.CodeInvalidAllowance {
		t.Fatalf("expected invalid_allowance, got %v", err)
	}
}

func TestDelegate_RequiresRiskSignals(t *testing.T) {
	issuer := NewIssuer(storage.NewMemoryStore())
	in := validInput()
	in.RiskSignals = nil

	_, err := issuer.Delegate(context.Background(), in)
	var ae *apierror.Error
	if !errors.As(err, &ae) || ae.Code != apierror.CodeInvalid || ae.Param != "risk_signals" {
		t.Fatalf("expected invalid with risk_signals param, got %v", err)
	}
	if n, _ := issuer.Count(context.Background()); n != 0 {
		t.Fatalf("rejected request stored a token")
	}
}
