// Package billing derives the financial totals of a payment request from
// its line items and withholding tax percentage. The same math backs the
// stored amount on a request and any breakdown shown by print or report
// consumers, so it lives in one place.
package billing

import "p9e.in/sendreq/models"

// Totals is the derived financial breakdown of a set of billing items.
// Withholding tax is deducted from the payable total, not added.
type Totals struct {
	SubTotal   float64 `json:"sub_total"`
	TaxAmount  float64 `json:"tax_amount"`
	GrandTotal float64 `json:"grand_total"`
}

// ComputeTotals sums unitCost x quantity x frequency over all items, then
// applies the withholding tax percentage. An empty item list yields zeros.
// The function is pure: identical inputs always produce identical outputs.
func ComputeTotals(items []models.BillingItem, taxPercent float64) Totals {
	var subTotal float64
	for _, item := range items {
		subTotal += item.UnitCost * item.Quantity * item.Frequency
	}

	taxAmount := subTotal * (taxPercent / 100)

	return Totals{
		SubTotal:   subTotal,
		TaxAmount:  taxAmount,
		GrandTotal: subTotal - taxAmount,
	}
}
