package domain

// Currency is an ISO 4217 code from the supported closed set.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// SupportedCurrencies lists the currencies the form may submit.
var SupportedCurrencies = []Currency{CurrencyEUR, CurrencyUSD, CurrencyGBP}

// SupportedVATRates lists the jurisdiction-approved VAT percentages
// (Dutch reduced and standard rates).
var SupportedVATRates = []float64{9, 21}

// IsSupportedVATRate reports whether rate is in the closed VAT set.
func IsSupportedVATRate(rate float64) bool {
	for _, r := range SupportedVATRates {
		if r == rate {
			return true
		}
	}
	return false
}

// PaymentTermCode names a payment-term policy. The closed set lives in
// the invoice package; unknown codes are handled by fallback, not error.
type PaymentTermCode string

const (
	PaymentTerm14Days PaymentTermCode = "14_days"
	PaymentTerm30Days PaymentTermCode = "30_days"
	PaymentTermNet15  PaymentTermCode = "net_15"
	PaymentTermNet60  PaymentTermCode = "net_60"
)

// InvoiceStatus is the lifecycle of a stored invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// ValidInvoiceStatuses maps each allowed status for quick membership checks.
var ValidInvoiceStatuses = map[InvoiceStatus]bool{
	InvoiceStatusDraft:   true,
	InvoiceStatusPending: true,
	InvoiceStatusPaid:    true,
	InvoiceStatusOverdue: true,
}

// TemplateID selects one of the visual invoice templates.
type TemplateID string

const (
	TemplateClassic  TemplateID = "classic"
	TemplateModern   TemplateID = "modern"
	TemplateCreative TemplateID = "creative"
)
