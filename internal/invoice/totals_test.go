package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"factuur/internal/domain"
)

const tolerance = 1e-9

func TestCalculateTotals_ReferenceCase(t *testing.T) {
	items := []domain.LineItem{
		{Description: "Consulting", Quantity: 2, UnitPrice: 100.00},
		{Description: "Travel", Quantity: 1, UnitPrice: 50.50},
	}

	totals := CalculateTotals(items, 21)

	assert.InDelta(t, 250.50, totals.Subtotal, tolerance)
	assert.InDelta(t, 52.605, totals.VATAmount, tolerance)
	assert.InDelta(t, 303.105, totals.Total, tolerance)
}

func TestCalculateTotals_EmptyItems(t *testing.T) {
	totals := CalculateTotals(nil, 21)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.VATAmount)
	assert.Zero(t, totals.Total)

	totals = CalculateTotals([]domain.LineItem{}, 9)
	assert.Zero(t, totals.Total)
}

func TestCalculateTotals_Invariants(t *testing.T) {
	tests := []struct {
		name    string
		items   []domain.LineItem
		vatRate float64
	}{
		{"single item", []domain.LineItem{{Quantity: 1, UnitPrice: 99.99}}, 21},
		{"reduced rate", []domain.LineItem{{Quantity: 3, UnitPrice: 12.34}, {Quantity: 7, UnitPrice: 0.01}}, 9},
		{"zero rate", []domain.LineItem{{Quantity: 2, UnitPrice: 10}}, 0},
		{"fractional quantity", []domain.LineItem{{Quantity: 2.5, UnitPrice: 40}}, 21},
		{"many items", []domain.LineItem{
			{Quantity: 1, UnitPrice: 1.11}, {Quantity: 2, UnitPrice: 2.22},
			{Quantity: 3, UnitPrice: 3.33}, {Quantity: 4, UnitPrice: 4.44},
		}, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := CalculateTotals(tt.items, tt.vatRate)

			var subtotal float64
			for _, item := range tt.items {
				subtotal += item.Quantity * item.UnitPrice
			}
			assert.InDelta(t, subtotal, totals.Subtotal, tolerance)
			assert.InDelta(t, totals.Subtotal*tt.vatRate/100, totals.VATAmount, tolerance)
			assert.InDelta(t, totals.Subtotal+totals.VATAmount, totals.Total, tolerance)
		})
	}
}

// Negative values flow through untouched: validation belongs to the form
// layer, and the calculator stays a faithful arithmetic pass-through.
func TestCalculateTotals_NegativeValuesPassThrough(t *testing.T) {
	items := []domain.LineItem{
		{Description: "Credit", Quantity: -1, UnitPrice: 100},
		{Description: "Fee", Quantity: 1, UnitPrice: 50},
	}

	totals := CalculateTotals(items, 21)

	assert.InDelta(t, -50.0, totals.Subtotal, tolerance)
	assert.InDelta(t, -10.5, totals.VATAmount, tolerance)
	assert.InDelta(t, -60.5, totals.Total, tolerance)
}

func TestCalculateTotals_NoRounding(t *testing.T) {
	items := []domain.LineItem{{Quantity: 3, UnitPrice: 0.1}}

	totals := CalculateTotals(items, 21)

	// 0.30000000000000004 stays unrounded; display formatting rounds later.
	assert.InDelta(t, 0.3, totals.Subtotal, tolerance)
	assert.NotEqual(t, "0.30", "") // formatting is covered in currency_test.go
}

func TestLineTotal(t *testing.T) {
	assert.InDelta(t, 201.0, LineTotal(domain.LineItem{Quantity: 2, UnitPrice: 100.50}), tolerance)
	assert.Zero(t, LineTotal(domain.LineItem{}))
}
