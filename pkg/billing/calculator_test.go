package billing

import (
	"testing"

	"p9e.in/sendreq/models"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name       string
		items      []models.BillingItem
		taxPercent float64
		subTotal   float64
		taxAmount  float64
		grandTotal float64
	}{
		{
			name:       "empty item list yields zeros",
			items:      nil,
			taxPercent: 10,
			subTotal:   0, taxAmount: 0, grandTotal: 0,
		},
		{
			name: "single item no tax",
			items: []models.BillingItem{
				{Description: "Dedicated Server Rental", UnitCost: 450, Quantity: 1, Frequency: 1},
			},
			taxPercent: 0,
			subTotal:   450, taxAmount: 0, grandTotal: 450,
		},
		{
			name: "quantity and frequency multiply with tax deducted",
			items: []models.BillingItem{
				{Description: "A", UnitCost: 100, Quantity: 2, Frequency: 1},
			},
			taxPercent: 10,
			subTotal:   200, taxAmount: 20, grandTotal: 180,
		},
		{
			name: "multiple items sum before tax",
			items: []models.BillingItem{
				{Description: "Tri-fold Brochures", UnitCost: 500, Quantity: 1, Frequency: 1},
				{Description: "Flyers (A5)", UnitCost: 750, Quantity: 1, Frequency: 1},
			},
			taxPercent: 0,
			subTotal:   1250, taxAmount: 0, grandTotal: 1250,
		},
		{
			name: "recurring frequency",
			items: []models.BillingItem{
				{Description: "Hosting", UnitCost: 50, Quantity: 2, Frequency: 12},
			},
			taxPercent: 5,
			subTotal:   1200, taxAmount: 60, grandTotal: 1140,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, tt.taxPercent)
			if got.SubTotal != tt.subTotal {
				t.Errorf("SubTotal = %v, expected %v", got.SubTotal, tt.subTotal)
			}
			if got.TaxAmount != tt.taxAmount {
				t.Errorf("TaxAmount = %v, expected %v", got.TaxAmount, tt.taxAmount)
			}
			if got.GrandTotal != tt.grandTotal {
				t.Errorf("GrandTotal = %v, expected %v", got.GrandTotal, tt.grandTotal)
			}
		})
	}
}

func TestComputeTotalsDeterministic(t *testing.T) {
	items := []models.BillingItem{
		{Description: "A", UnitCost: 33.33, Quantity: 3, Frequency: 7},
		{Description: "B", UnitCost: 0.1, Quantity: 9, Frequency: 2},
	}

	first := ComputeTotals(items, 7.5)
	second := ComputeTotals(items, 7.5)
	if first != second {
		t.Errorf("two identical calls disagree: %+v vs %+v", first, second)
	}
}

func TestComputeTotalsGrandTotalIdentity(t *testing.T) {
	// grandTotal must equal subTotal - taxAmount exactly for any non-negative pct
	items := []models.BillingItem{
		{Description: "A", UnitCost: 123.45, Quantity: 2, Frequency: 3},
		{Description: "B", UnitCost: 67.89, Quantity: 1, Frequency: 12},
	}

	for _, pct := range []float64{0, 1, 5, 7.5, 10, 15, 50, 100} {
		got := ComputeTotals(items, pct)
		if got.GrandTotal != got.SubTotal-got.TaxAmount {
			t.Errorf("pct %v: GrandTotal %v != SubTotal %v - TaxAmount %v",
				pct, got.GrandTotal, got.SubTotal, got.TaxAmount)
		}
	}
}
