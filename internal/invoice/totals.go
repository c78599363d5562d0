package invoice

import "factuur/internal/domain"

// LineTotal returns quantity times unit price for a single item. The
// renderer recomputes row totals through this same function so table rows
// and the totals block can never disagree.
func LineTotal(item domain.LineItem) float64 {
	return item.Quantity * item.UnitPrice
}

// CalculateTotals sums the line items in the order given and applies the
// VAT rate. It is a faithful arithmetic pass-through: no rounding is
// applied here (display formatting rounds at render time, which avoids
// compounding rounding error across recomputation), and negative
// quantities or prices are not rejected. An empty item list yields zeros.
func CalculateTotals(items []domain.LineItem, vatRate float64) domain.DerivedTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += LineTotal(item)
	}
	vatAmount := subtotal * vatRate / 100
	return domain.DerivedTotals{
		Subtotal:  subtotal,
		VATAmount: vatAmount,
		Total:     subtotal + vatAmount,
	}
}
