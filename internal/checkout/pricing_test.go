package checkout

import "testing"

func TestTaxOn_FloorsToMinorUnits(t *testing.T) {
	cases := []struct {
		amount int64
		want   int64
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{99, 9},
		{1000, 100},
		{1005, 100},
	}
	for _, c := range cases {
		if got := taxOn(c.amount); got != c.want {
			t.Fatalf("taxOn(%d) = %d, want %d", c.amount, got, c.want)
		}
	}
}

func TestComputeTotals_NoOptionSelected(t *testing.T) {
	items := []LineItem{
		{BaseAmount: 400},
		{BaseAmount: 600},
	}
	totals := computeTotals(items, nil)
	if len(totals) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(totals))
	}
	byType := map[string]int64{}
	for _, tt := range totals {
		byType[tt.Type] = tt.Amount
	}
	if byType[TotalTypeItemsBaseAmount] != 1000 || byType[TotalTypeSubtotal] != 1000 {
		t.Fatalf("items/subtotal wrong: %+v", byType)
	}
	if byType[TotalTypeTax] != 100 {
		t.Fatalf("tax = %d, want 100", byType[TotalTypeTax])
	}
	if byType[TotalTypeFulfillment] != 0 {
		t.Fatalf("fulfillment = %d, want 0", byType[TotalTypeFulfillment])
	}
	if byType[TotalTypeTotal] != 1100 {
		t.Fatalf("total = %d, want 1100", byType[TotalTypeTotal])
	}
}

func TestComputeTotals_EmptyLineItemsStillFullBreakdown(t *testing.T) {
	totals := computeTotals(nil, nil)
	if len(totals) != 5 {
		t.Fatalf("expected all 5 entries for empty input, got %d", len(totals))
	}
	for _, tt := range totals {
		if tt.Amount != 0 {
			t.Fatalf("%s = %d, want 0", tt.Type, tt.Amount)
		}
	}
}
