package checkout

// Flat 10% tax approximation, floored to integer minor units. Single rate for
// the whole sandbox; tax jurisdictions are out of scope.
func taxOn(amount int64) int64 {
	return amount / 10
}

// computeTotals derives the full price breakdown from the line items and the
// selected fulfillment option. The order of the returned slice is a display
// contract: items, subtotal, tax, fulfillment, total — always all five, even
// when an amount is zero.
func computeTotals(lineItems []LineItem, option *FulfillmentOption) []Total {
	var itemsBase int64
	for _, li := range lineItems {
		itemsBase += li.BaseAmount
	}
	subtotal := itemsBase // no discounts modeled
	tax := taxOn(subtotal)
	var fulfillment int64
	if option != nil {
		fulfillment = option.Total
	}
	return []Total{
		{Type: TotalTypeItemsBaseAmount, DisplayText: "Items", Amount: itemsBase},
		{Type: TotalTypeSubtotal, DisplayText: "Subtotal", Amount: subtotal},
		{Type: TotalTypeTax, DisplayText: "Tax", Amount: tax},
		{Type: TotalTypeFulfillment, DisplayText: "Shipping", Amount: fulfillment},
		{Type: TotalTypeTotal, DisplayText: "Total", Amount: subtotal + tax + fulfillment},
	}
}
